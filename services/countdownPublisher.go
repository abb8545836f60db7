package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SalahTracker/models"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// CountdownPublisher forwards countdown ticks to devices outside the HTTP API.
type CountdownPublisher interface {
	PublishCountdown(uid string, countdown models.Countdown) error
}

// MQTTCountdownPublisher publishes each tick on {prefix}/{uid}/countdown.
type MQTTCountdownPublisher struct {
	client mqtt.Client
	prefix string
}

func NewMQTTCountdownPublisher(client mqtt.Client, prefix string) *MQTTCountdownPublisher {
	return &MQTTCountdownPublisher{client: client, prefix: prefix}
}

func (p *MQTTCountdownPublisher) Topic(uid string) string {
	return fmt.Sprintf("%s/%s/countdown", p.prefix, uid)
}

func (p *MQTTCountdownPublisher) PublishCountdown(uid string, countdown models.Countdown) error {
	payload, err := json.Marshal(countdown)
	if err != nil {
		return err
	}

	// ticks are superseded every second, so QoS 0 and a bounded wait
	token := p.client.Publish(p.Topic(uid), 0, false, payload)
	if !token.WaitTimeout(500 * time.Millisecond) {
		return fmt.Errorf("publish countdown for %s timed out", uid)
	}
	if token.Error() != nil {
		return fmt.Errorf("failed to publish countdown for %s: %v", uid, token.Error())
	}
	return nil
}
