package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const reminderWindow = 2 * time.Minute

// ReminderService sends a push when a subscribed prayer begins.
type ReminderService struct {
	store     repositories.Store
	schedules *ScheduleService
	push      *PushNotificationService
	loc       *time.Location
	cron      *cron.Cron
	debounce  *debouncer
}

var reminderService *ReminderService

func InitReminderService(store repositories.Store, schedules *ScheduleService, push *PushNotificationService, loc *time.Location) {
	reminderService = NewReminderService(store, schedules, push, loc)
}

func GetReminderService() *ReminderService {
	return reminderService
}

func NewReminderService(store repositories.Store, schedules *ScheduleService, push *PushNotificationService, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		store:     store,
		schedules: schedules,
		push:      push,
		loc:       loc,
		cron:      cron.New(cron.WithLocation(loc)),
		debounce:  newDebouncer(),
	}
}

// Subscribe stores the reminder subscription of uid and registers its push token.
func (s *ReminderService) Subscribe(ctx context.Context, uid string, req models.ReminderRequest) (models.ReminderSubscription, error) {
	if uid == "" {
		return models.ReminderSubscription{}, nil
	}
	for _, p := range req.Prayers {
		if !models.IsTrackedPrayer(p) {
			return models.ReminderSubscription{}, fmt.Errorf("%w: %s", ErrInvalidPrayer, p)
		}
	}

	var coords *models.Coordinates
	if req.Latitude != nil && req.Longitude != nil {
		coords = &models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	at := s.schedules.Coordinates(coords)

	sub := models.ReminderSubscription{
		UID:       uid,
		PushToken: req.PushToken,
		Platform:  req.Platform,
		Latitude:  at.Latitude,
		Longitude: at.Longitude,
		Prayers:   req.Prayers,
	}
	if err := s.store.SavePushToken(ctx, models.PushToken{User_ID: uid, Push_Token: req.PushToken, Platform: req.Platform}); err != nil {
		return models.ReminderSubscription{}, persistence(err)
	}
	if err := s.store.SaveReminder(ctx, sub); err != nil {
		return models.ReminderSubscription{}, persistence(err)
	}

	log.Info().Str("uid", uid).Strs("prayers", req.Prayers).Msg("Reminder subscription saved")
	return sub, nil
}

// Start runs the reminder check at the top of every minute.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
		defer cancel()
		sent, err := s.RunOnce(ctx, time.Now().In(s.loc))
		if err != nil {
			log.Error().Err(err).Msg("[CRON] Prayer reminder run failed")
			return
		}
		if sent > 0 {
			log.Info().Int("sent", sent).Msg("[CRON] Prayer reminders sent")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("timezone", s.loc.String()).Msg("Reminder scheduler started")
	return nil
}

func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Reminder scheduler stopped")
}

// RunOnce sends reminders for every subscribed prayer whose time is the
// minute of now. Per-subscription failures are logged and skipped.
func (s *ReminderService) RunOnce(ctx context.Context, now time.Time) (int, error) {
	subs, err := s.store.ListReminders(ctx)
	if err != nil {
		return 0, persistence(err)
	}

	now = now.In(s.loc)
	clock := now.Format("15:04")
	sent := 0

	for _, sub := range subs {
		schedule, err := s.schedules.ForDate(ctx, now, &models.Coordinates{Latitude: sub.Latitude, Longitude: sub.Longitude})
		if err != nil {
			log.Warn().Err(err).Str("uid", sub.UID).Msg("No schedule for reminder")
			continue
		}
		// a stale fallback carries another day's times
		if schedule.Stale {
			log.Warn().Str("uid", sub.UID).Str("schedule_date", schedule.Date).Msg("Skipping reminders on stale schedule")
			continue
		}

		for _, p := range schedule.Prayers {
			if p.Time != clock || !subscribed(sub, p.Name) {
				continue
			}
			key := fmt.Sprintf("%s:%s:%s:%s:%s", models.NotificationTypePrayerReminder, sub.UID, sub.PushToken, now.Format(DateLayout), p.Name)
			if !s.debounce.shouldSend(key, reminderWindow, now) {
				continue
			}

			payload := NotificationPayload{
				Title: fmt.Sprintf("%s time", p.Name),
				Body:  fmt.Sprintf("It's time for %s (%s).", p.Name, p.Time),
				Data: map[string]string{
					"type":   models.NotificationTypePrayerReminder,
					"prayer": p.Name,
					"date":   now.Format(DateLayout),
				},
				Sound:    "default",
				Priority: "high",
			}
			token := models.PushToken{User_ID: sub.UID, Push_Token: sub.PushToken, Platform: sub.Platform}
			if err := s.push.SendToToken(ctx, token, payload); err != nil {
				log.Warn().Err(err).Str("uid", sub.UID).Str("prayer", p.Name).Msg("Prayer reminder not delivered")
				continue
			}
			sent++
		}
	}
	return sent, nil
}

func subscribed(sub models.ReminderSubscription, prayer string) bool {
	for _, p := range sub.Prayers {
		if p == prayer {
			return true
		}
	}
	return false
}
