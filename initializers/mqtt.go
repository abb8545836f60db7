package initializers

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var MQTT mqtt.Client

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("Connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// ConnectMQTT leaves MQTT nil when no broker is configured.
func ConnectMQTT() {
	if Config.MQTTBrokerURL == "" {
		return
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(Config.MQTTBrokerURL)
	opts.SetClientID(fmt.Sprintf("salah-tracker-%s", uuid.NewString()))
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("broker", Config.MQTTBrokerURL).Msg("Failed to connect to MQTT broker")
		return
	}

	MQTT = client
}

func DisconnectMQTT() {
	if MQTT != nil {
		MQTT.Disconnect(250)
		log.Info().Msg("MQTT client disconnected")
	}
}
