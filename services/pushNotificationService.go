package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/rs/zerolog/log"
)

const notificationIcon = "/icon-192.png"

var ErrPushUnavailable = errors.New("push notifications not configured")

// fcmSender is the part of *messaging.Client used here.
type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushNotificationService struct {
	fcmClient fcmSender
	store     repositories.Store
}

type NotificationPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

var pushService *PushNotificationService

// InitPushNotificationService wires FCM from app. With a nil app the service
// still exists but every send fails with ErrPushUnavailable.
func InitPushNotificationService(app *firebase.App, store repositories.Store) {
	pushService = &PushNotificationService{store: store}

	if app == nil {
		log.Warn().Msg("Firebase app not initialized, push notifications disabled")
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get Firebase messaging client")
		return
	}
	pushService.fcmClient = client
	log.Info().Msg("Push notification service initialized successfully with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

func NewPushNotificationService(sender fcmSender, store repositories.Store) *PushNotificationService {
	return &PushNotificationService{fcmClient: sender, store: store}
}

func (s *PushNotificationService) Enabled() bool {
	return s != nil && s.fcmClient != nil
}

func (s *PushNotificationService) SendNotificationToUser(ctx context.Context, uid string, payload NotificationPayload) error {
	tokens, err := s.store.GetPushTokens(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %s: %w", uid, err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens found for user %s", uid)
	}

	sent := 0
	for _, token := range tokens {
		if err := s.SendToToken(ctx, token, payload); err != nil {
			log.Warn().Err(err).Str("uid", uid).Str("platform", token.Platform).Msg("Failed to send notification to token")
			continue
		}
		sent++
	}
	if sent == 0 {
		return fmt.Errorf("no notification delivered to user %s", uid)
	}
	return nil
}

func (s *PushNotificationService) SendNotificationToUsers(ctx context.Context, uids []string, payload NotificationPayload) error {
	var failed int
	for _, uid := range uids {
		if err := s.SendNotificationToUser(ctx, uid, payload); err != nil {
			failed++
			log.Warn().Err(err).Str("uid", uid).Msg("Failed to send notification to user")
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to send notifications to %d users", failed)
	}
	return nil
}

// SendToToken delivers payload to one device, shaped for its platform.
func (s *PushNotificationService) SendToToken(ctx context.Context, pushToken models.PushToken, payload NotificationPayload) error {
	if !s.Enabled() {
		return ErrPushUnavailable
	}

	message := &messaging.Message{
		Token: pushToken.Push_Token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	switch pushToken.Platform {
	case "ios":
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
					Sound: payload.Sound,
				},
			},
		}
		if payload.Priority == "high" {
			message.APNS.Headers = map[string]string{
				"apns-priority": "10",
			}
		}
	case "android":
		message.Android = &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Sound: payload.Sound,
			},
			Priority: "normal",
		}
		if payload.Priority == "high" {
			message.Android.Priority = "high"
		}
	case "web":
		message.Webpush = &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Icon:  notificationIcon,
			},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Debug().Str("message_id", response).Str("platform", pushToken.Platform).Msg("Sent FCM notification")
	return nil
}
