package repositories

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"firebase.google.com/go/v4/db"
	"github.com/SalahTracker/models"
)

// FirebaseStore keeps each user's data under users/{uid} in the Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

func NewFirebaseStore(client *db.Client) *FirebaseStore {
	return &FirebaseStore{client: client}
}

type firebaseAccount struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DisplayName string    `json:"displayName"`
	Admin       bool      `json:"admin"`
	CreatedAt   time.Time `json:"createdAt"`
}

func encodeKey(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func (s *FirebaseStore) user(uid string) *db.Ref {
	return s.client.NewRef("users/" + uid)
}

func (s *FirebaseStore) get(ctx context.Context, ref *db.Ref, op string, v interface{}) error {
	if err := ref.Get(ctx, v); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func (s *FirebaseStore) set(ctx context.Context, ref *db.Ref, op string, v interface{}) error {
	if err := ref.Set(ctx, v); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func (s *FirebaseStore) GetPrayerLogs(ctx context.Context, uid string) (models.PrayerLogs, error) {
	var raw map[string]map[string]string
	if err := s.get(ctx, s.user(uid).Child("logs"), "get logs", &raw); err != nil {
		return nil, err
	}

	logs := make(models.PrayerLogs, len(raw))
	for date, day := range raw {
		log := make(models.DailyLog, len(day))
		for name, status := range day {
			log[name] = models.PrayerStatus(status)
		}
		logs[date] = log
	}
	return logs, nil
}

func (s *FirebaseStore) GetDailyLog(ctx context.Context, uid string, date string) (models.DailyLog, error) {
	var raw map[string]string
	if err := s.get(ctx, s.user(uid).Child("logs/"+date), "get daily log", &raw); err != nil {
		return nil, err
	}

	day := make(models.DailyLog, len(raw))
	for name, status := range raw {
		day[name] = models.PrayerStatus(status)
	}
	return day, nil
}

func (s *FirebaseStore) SetPrayerStatus(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus) error {
	return s.set(ctx, s.user(uid).Child("logs/"+date+"/"+prayer), "set prayer status", string(status))
}

// RecordPrayer reads the counters and then writes the log entry and both
// totals in one multi-path update. Callers serialise writes per user.
func (s *FirebaseStore) RecordPrayer(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus, points int) (int, error) {
	update := map[string]interface{}{
		"logs/" + date + "/" + prayer: string(status),
	}

	var before int
	if points > 0 {
		rewards, err := s.getInt(ctx, uid, "rewards")
		if err != nil {
			return 0, err
		}
		if before, err = s.getInt(ctx, uid, "xp"); err != nil {
			return 0, err
		}
		update["rewards"] = rewards + points
		update["xp"] = before + points
	}

	if err := s.user(uid).Update(ctx, update); err != nil {
		return 0, unavailable("record prayer", err)
	}
	return before, nil
}

func (s *FirebaseStore) getInt(ctx context.Context, uid string, key string) (int, error) {
	var v int
	if err := s.get(ctx, s.user(uid).Child(key), "get "+key, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *FirebaseStore) GetRewardPoints(ctx context.Context, uid string) (int, error) {
	return s.getInt(ctx, uid, "rewards")
}

func (s *FirebaseStore) SetRewardPoints(ctx context.Context, uid string, points int) error {
	return s.set(ctx, s.user(uid).Child("rewards"), "set rewards", points)
}

func (s *FirebaseStore) GetXP(ctx context.Context, uid string) (int, error) {
	return s.getInt(ctx, uid, "xp")
}

func (s *FirebaseStore) SetXP(ctx context.Context, uid string, xp int) error {
	return s.set(ctx, s.user(uid).Child("xp"), "set xp", xp)
}

func (s *FirebaseStore) GetGoodDeeds(ctx context.Context, uid string) ([]models.GoodDeedEntry, error) {
	var entries []models.GoodDeedEntry
	if err := s.get(ctx, s.user(uid).Child("goodDeeds"), "get good deeds", &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.GoodDeedEntry{}
	}
	return entries, nil
}

func (s *FirebaseStore) SetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry) error {
	return s.set(ctx, s.user(uid).Child("goodDeeds"), "set good deeds", entries)
}

func (s *FirebaseStore) GetGoodDeedCycle(ctx context.Context, uid string) (int, error) {
	return s.getInt(ctx, uid, "goodDeedCycle")
}

func (s *FirebaseStore) SetGoodDeedCycle(ctx context.Context, uid string, cycle int) error {
	return s.set(ctx, s.user(uid).Child("goodDeedCycle"), "set good deed cycle", cycle)
}

func (s *FirebaseStore) ResetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry, cycle int) error {
	update := map[string]interface{}{
		"goodDeeds":     entries,
		"goodDeedCycle": cycle,
	}
	if err := s.user(uid).Update(ctx, update); err != nil {
		return unavailable("reset good deeds", err)
	}
	return nil
}

func (s *FirebaseStore) GetQuranProgress(ctx context.Context, uid string, trackKey string) (models.QuranProgress, error) {
	var p models.QuranProgress
	err := s.get(ctx, s.user(uid).Child("quranAudio/"+trackKey), "get quran progress", &p)
	return p, err
}

func (s *FirebaseStore) SetQuranProgress(ctx context.Context, uid string, trackKey string, progress models.QuranProgress) error {
	return s.set(ctx, s.user(uid).Child("quranAudio/"+trackKey), "set quran progress", progress)
}

func (s *FirebaseStore) SavePushToken(ctx context.Context, token models.PushToken) error {
	token.Updated_At = time.Now().UTC()
	return s.set(ctx, s.user(token.User_ID).Child("pushTokens/"+encodeKey(token.Push_Token)), "save push token", token)
}

func (s *FirebaseStore) GetPushTokens(ctx context.Context, uid string) ([]models.PushToken, error) {
	var raw map[string]models.PushToken
	if err := s.get(ctx, s.user(uid).Child("pushTokens"), "get push tokens", &raw); err != nil {
		return nil, err
	}
	tokens := make([]models.PushToken, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (s *FirebaseStore) SaveReminder(ctx context.Context, sub models.ReminderSubscription) error {
	return s.set(ctx, s.client.NewRef("reminders/"+encodeKey(sub.PushToken)), "save reminder", sub)
}

func (s *FirebaseStore) ListReminders(ctx context.Context) ([]models.ReminderSubscription, error) {
	var raw map[string]models.ReminderSubscription
	if err := s.get(ctx, s.client.NewRef("reminders"), "list reminders", &raw); err != nil {
		return nil, err
	}
	subs := make([]models.ReminderSubscription, 0, len(raw))
	for _, sub := range raw {
		subs = append(subs, sub)
	}
	return subs, nil
}

// CreateUser claims the email index in a transaction before writing the account.
func (s *FirebaseStore) CreateUser(ctx context.Context, user models.UserProfile) error {
	emailRef := s.client.NewRef("accountEmails/" + encodeKey(strings.ToLower(user.Email)))
	err := emailRef.Transaction(ctx, func(tn db.TransactionNode) (interface{}, error) {
		var existing string
		if err := tn.Unmarshal(&existing); err != nil {
			return nil, err
		}
		if existing != "" {
			return nil, ErrEmailTaken
		}
		return user.User_ID, nil
	})
	if errors.Is(err, ErrEmailTaken) {
		return ErrEmailTaken
	}
	if err != nil {
		return unavailable("claim email", err)
	}

	account := firebaseAccount{
		UID:         user.User_ID,
		Email:       user.Email,
		Password:    user.Password,
		DisplayName: user.Display_Name,
		Admin:       user.Admin,
		CreatedAt:   time.Now().UTC(),
	}
	return s.set(ctx, s.client.NewRef("accounts/"+user.User_ID), "create user", account)
}

func (s *FirebaseStore) GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	var uid string
	emailRef := s.client.NewRef("accountEmails/" + encodeKey(strings.ToLower(email)))
	if err := s.get(ctx, emailRef, "get user by email", &uid); err != nil {
		return models.UserProfile{}, err
	}
	if uid == "" {
		return models.UserProfile{}, ErrNotFound
	}
	return s.GetUserByID(ctx, uid)
}

func (s *FirebaseStore) GetUserByID(ctx context.Context, uid string) (models.UserProfile, error) {
	var account firebaseAccount
	if err := s.get(ctx, s.client.NewRef("accounts/"+uid), "get user", &account); err != nil {
		return models.UserProfile{}, err
	}
	if account.UID == "" {
		return models.UserProfile{}, ErrNotFound
	}
	return models.UserProfile{
		User_ID:         account.UID,
		Email:           account.Email,
		Password:        account.Password,
		Display_Name:    account.DisplayName,
		Admin:           account.Admin,
		Datetime_Create: account.CreatedAt,
	}, nil
}
