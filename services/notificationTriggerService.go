package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/rs/zerolog/log"
)

// debouncer remembers when a notification key last fired.
type debouncer struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func newDebouncer() *debouncer {
	return &debouncer{last: make(map[string]time.Time)}
}

// shouldSend reports whether key has not fired within window of now, and
// records now when it returns true. Entries older than a day are dropped.
func (d *debouncer) shouldSend(key string, window time.Duration, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, at := range d.last {
		if now.Sub(at) > 24*time.Hour {
			delete(d.last, k)
		}
	}

	if at, ok := d.last[key]; ok && now.Sub(at) < window {
		return false
	}
	d.last[key] = now
	return true
}

const levelUpDebounce = time.Hour

// LevelUpNotifier sends the level-up push and email. Delivery runs in the
// background so marking a prayer never waits on FCM or Resend.
type LevelUpNotifier struct {
	users    repositories.UserStore
	push     *PushNotificationService
	email    *EmailService
	debounce *debouncer
	timeout  time.Duration
}

func NewLevelUpNotifier(users repositories.UserStore, push *PushNotificationService, email *EmailService) *LevelUpNotifier {
	return &LevelUpNotifier{
		users:    users,
		push:     push,
		email:    email,
		debounce: newDebouncer(),
		timeout:  30 * time.Second,
	}
}

// Listener adapts the notifier to TrackerService.OnLevelUp.
func (n *LevelUpNotifier) Listener() LevelUpListener {
	return func(ctx context.Context, uid string, level int) {
		key := fmt.Sprintf("%s:%s:%d", models.NotificationTypeLevelUp, uid, level)
		if !n.debounce.shouldSend(key, levelUpDebounce, time.Now()) {
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
			defer cancel()
			n.NotifyLevelUp(ctx, uid, level)
		}()
	}
}

// NotifyLevelUp sends the congratulation push and email for level.
func (n *LevelUpNotifier) NotifyLevelUp(ctx context.Context, uid string, level int) {
	if n.push.Enabled() {
		payload := NotificationPayload{
			Title: "Level up!",
			Body:  fmt.Sprintf("MashaAllah! You reached level %d.", level),
			Data: map[string]string{
				"type":  models.NotificationTypeLevelUp,
				"level": strconv.Itoa(level),
			},
			Sound:    "default",
			Priority: "high",
		}
		if err := n.push.SendNotificationToUser(ctx, uid, payload); err != nil {
			log.Warn().Err(err).Str("uid", uid).Int("level", level).Msg("Level up push not delivered")
		}
	}

	if n.email == nil || n.users == nil {
		return
	}
	user, err := n.users.GetUserByID(ctx, uid)
	if err != nil {
		log.Debug().Err(err).Str("uid", uid).Msg("No account for level up email")
		return
	}
	if err := n.email.SendLevelUpEmail(user.Email, user.Display_Name, level); err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("Level up email not delivered")
	}
}
