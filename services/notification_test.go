package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/stretchr/testify/assert"
)

type fakeFCM struct {
	mu       sync.Mutex
	messages []*messaging.Message
	err      error
}

func (f *fakeFCM) Send(ctx context.Context, message *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, message)
	return "projects/test/messages/1", nil
}

func (f *fakeFCM) sent() []*messaging.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*messaging.Message(nil), f.messages...)
}

func TestSendToTokenPlatforms(t *testing.T) {
	tests := []struct {
		platform string
		check    func(t *testing.T, m *messaging.Message)
	}{
		{"ios", func(t *testing.T, m *messaging.Message) {
			assert.NotNil(t, m.APNS)
			assert.Equal(t, "10", m.APNS.Headers["apns-priority"])
		}},
		{"android", func(t *testing.T, m *messaging.Message) {
			assert.NotNil(t, m.Android)
			assert.Equal(t, "high", m.Android.Priority)
		}},
		{"web", func(t *testing.T, m *messaging.Message) {
			assert.NotNil(t, m.Webpush)
			assert.Equal(t, notificationIcon, m.Webpush.Notification.Icon)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			fcm := &fakeFCM{}
			service := NewPushNotificationService(fcm, repositories.NewMemoryStore())

			err := service.SendToToken(context.Background(), models.PushToken{Push_Token: "token-abcdefgh", Platform: tt.platform},
				NotificationPayload{Title: "Asr time", Body: "It's time for Asr", Priority: "high"})

			assert.NoError(t, err)
			sent := fcm.sent()
			assert.Len(t, sent, 1)
			assert.Equal(t, "token-abcdefgh", sent[0].Token)
			assert.Equal(t, "Asr time", sent[0].Notification.Title)
			tt.check(t, sent[0])
		})
	}
}

func TestSendToTokenWithoutFCM(t *testing.T) {
	var service *PushNotificationService

	err := service.SendToToken(context.Background(), models.PushToken{Push_Token: "x"}, NotificationPayload{})

	assert.ErrorIs(t, err, ErrPushUnavailable)
}

func TestSendNotificationToUser(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()
	_ = store.SavePushToken(ctx, models.PushToken{User_ID: "user-1", Push_Token: "token-one-123", Platform: "android"})
	_ = store.SavePushToken(ctx, models.PushToken{User_ID: "user-1", Push_Token: "token-two-456", Platform: "web"})
	fcm := &fakeFCM{}
	service := NewPushNotificationService(fcm, store)

	assert.NoError(t, service.SendNotificationToUser(ctx, "user-1", NotificationPayload{Title: "Hi", Body: "There"}))
	assert.Len(t, fcm.sent(), 2)

	assert.Error(t, service.SendNotificationToUser(ctx, "nobody", NotificationPayload{Title: "Hi"}))

	fcm.err = errors.New("unregistered")
	assert.Error(t, service.SendNotificationToUser(ctx, "user-1", NotificationPayload{Title: "Hi"}))
}

func TestDebouncer(t *testing.T) {
	d := newDebouncer()
	now := at(10, 12, 0, 0)

	assert.True(t, d.shouldSend("k", time.Minute, now))
	assert.False(t, d.shouldSend("k", time.Minute, now.Add(30*time.Second)))
	assert.True(t, d.shouldSend("k", time.Minute, now.Add(2*time.Minute)))
	assert.True(t, d.shouldSend("other", time.Minute, now))
}

func TestReminderRunOnce(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()
	fcm := &fakeFCM{}
	push := NewPushNotificationService(fcm, store)
	schedules := NewScheduleService(&fakeSource{times: sourceTimes()}, NewMemoryScheduleCache(), time.Hour, models.Coordinates{Latitude: 24.7136, Longitude: 46.6753}, riyadh)
	reminders := NewReminderService(store, schedules, push, riyadh)

	_, err := reminders.Subscribe(ctx, "user-1", models.ReminderRequest{
		PushToken: "token-web-123456",
		Platform:  "web",
		Prayers:   []string{"Asr", "Maghrib"},
	})
	assert.NoError(t, err)

	sent, err := reminders.RunOnce(ctx, at(10, 15, 44, 0))
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)

	sent, err = reminders.RunOnce(ctx, at(10, 15, 45, 10))
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)

	// same minute again is debounced
	sent, err = reminders.RunOnce(ctx, at(10, 15, 45, 40))
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)

	// not subscribed to dhuhr
	sent, _ = reminders.RunOnce(ctx, at(11, 12, 15, 0))
	assert.Equal(t, 0, sent)

	messages := fcm.sent()
	assert.Len(t, messages, 1)
	assert.Equal(t, "Asr", messages[0].Data["prayer"])
	assert.Equal(t, models.NotificationTypePrayerReminder, messages[0].Data["type"])

	tokens, _ := store.GetPushTokens(ctx, "user-1")
	assert.Len(t, tokens, 1)
}

func TestReminderRunOnceSkipsStaleSchedule(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()
	fcm := &fakeFCM{}
	source := &fakeSource{times: sourceTimes()}
	schedules := NewScheduleService(source, NewMemoryScheduleCache(), time.Hour, models.Coordinates{Latitude: 24.7136, Longitude: 46.6753}, riyadh)
	reminders := NewReminderService(store, schedules, NewPushNotificationService(fcm, store), riyadh)

	_, err := reminders.Subscribe(ctx, "user-1", models.ReminderRequest{
		PushToken: "token-web-123456",
		Platform:  "web",
		Prayers:   []string{"Asr"},
	})
	assert.NoError(t, err)

	_, err = schedules.ForDate(ctx, at(10, 9, 0, 0), nil)
	assert.NoError(t, err)

	// the next day only the previous day's schedule is available
	source.err = errors.New("aladhan unreachable")
	stale, err := schedules.ForDate(ctx, at(11, 15, 45, 0), nil)
	assert.NoError(t, err)
	assert.True(t, stale.Stale)

	sent, err := reminders.RunOnce(ctx, at(11, 15, 45, 0))

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, fcm.sent())
}

func TestReminderSubscribeRejectsUnknownPrayer(t *testing.T) {
	store := repositories.NewMemoryStore()
	schedules := NewScheduleService(nil, nil, time.Hour, models.Coordinates{}, riyadh)
	reminders := NewReminderService(store, schedules, nil, riyadh)

	_, err := reminders.Subscribe(context.Background(), "user-1", models.ReminderRequest{
		PushToken: "token-web-123456",
		Platform:  "web",
		Prayers:   []string{"Sunrise"},
	})

	assert.ErrorIs(t, err, ErrInvalidPrayer)
}

func TestLevelUpNotifierSendsPushAndDebounces(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()
	_ = store.SavePushToken(ctx, models.PushToken{User_ID: "user-1", Push_Token: "token-ios-123456", Platform: "ios"})
	fcm := &fakeFCM{}
	notifier := NewLevelUpNotifier(store, NewPushNotificationService(fcm, store), nil)

	notifier.NotifyLevelUp(ctx, "user-1", 3)

	sent := fcm.sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, "3", sent[0].Data["level"])
	assert.Equal(t, models.NotificationTypeLevelUp, sent[0].Data["type"])

	assert.True(t, notifier.debounce.shouldSend("LEVEL_UP:user-1:4", levelUpDebounce, time.Now()))
	assert.False(t, notifier.debounce.shouldSend("LEVEL_UP:user-1:4", levelUpDebounce, time.Now()))
}
