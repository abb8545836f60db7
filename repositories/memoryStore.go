package repositories

import (
	"context"
	"strings"
	"sync"

	"github.com/SalahTracker/models"
)

type userPartition struct {
	logs      models.PrayerLogs
	rewards   int
	xp        int
	deeds     []models.GoodDeedEntry
	deedCycle int
	quran     map[string]models.QuranProgress
	tokens    map[string]models.PushToken
}

// MemoryStore keeps everything in process. Used for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*userPartition
	reminders map[string]models.ReminderSubscription
	accounts  map[string]models.UserProfile

	// FailWith, when set, is returned (wrapped in ErrUnavailable) by every call.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]*userPartition),
		reminders: make(map[string]models.ReminderSubscription),
		accounts:  make(map[string]models.UserProfile),
	}
}

func (s *MemoryStore) partition(uid string) *userPartition {
	p, ok := s.users[uid]
	if !ok {
		p = &userPartition{
			logs:   make(models.PrayerLogs),
			quran:  make(map[string]models.QuranProgress),
			tokens: make(map[string]models.PushToken),
		}
		s.users[uid] = p
	}
	return p
}

func (s *MemoryStore) check(op string) error {
	if s.FailWith != nil {
		return unavailable(op, s.FailWith)
	}
	return nil
}

func (s *MemoryStore) GetPrayerLogs(ctx context.Context, uid string) (models.PrayerLogs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get logs"); err != nil {
		return nil, err
	}

	out := make(models.PrayerLogs)
	if p, ok := s.users[uid]; ok {
		for date, day := range p.logs {
			copied := make(models.DailyLog, len(day))
			for name, status := range day {
				copied[name] = status
			}
			out[date] = copied
		}
	}
	return out, nil
}

func (s *MemoryStore) GetDailyLog(ctx context.Context, uid string, date string) (models.DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get daily log"); err != nil {
		return nil, err
	}

	out := make(models.DailyLog)
	if p, ok := s.users[uid]; ok {
		for name, status := range p.logs[date] {
			out[name] = status
		}
	}
	return out, nil
}

func (s *MemoryStore) SetPrayerStatus(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set prayer status"); err != nil {
		return err
	}

	p := s.partition(uid)
	day, ok := p.logs[date]
	if !ok {
		day = make(models.DailyLog)
		p.logs[date] = day
	}
	day[prayer] = status
	return nil
}

func (s *MemoryStore) RecordPrayer(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("record prayer"); err != nil {
		return 0, err
	}

	p := s.partition(uid)
	day, ok := p.logs[date]
	if !ok {
		day = make(models.DailyLog)
		p.logs[date] = day
	}
	day[prayer] = status

	if points <= 0 {
		return 0, nil
	}
	before := p.xp
	p.rewards += points
	p.xp += points
	return before, nil
}

func (s *MemoryStore) GetRewardPoints(ctx context.Context, uid string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get rewards"); err != nil {
		return 0, err
	}
	if p, ok := s.users[uid]; ok {
		return p.rewards, nil
	}
	return 0, nil
}

func (s *MemoryStore) SetRewardPoints(ctx context.Context, uid string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set rewards"); err != nil {
		return err
	}
	s.partition(uid).rewards = points
	return nil
}

func (s *MemoryStore) GetXP(ctx context.Context, uid string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get xp"); err != nil {
		return 0, err
	}
	if p, ok := s.users[uid]; ok {
		return p.xp, nil
	}
	return 0, nil
}

func (s *MemoryStore) SetXP(ctx context.Context, uid string, xp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set xp"); err != nil {
		return err
	}
	s.partition(uid).xp = xp
	return nil
}

func (s *MemoryStore) GetGoodDeeds(ctx context.Context, uid string) ([]models.GoodDeedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get good deeds"); err != nil {
		return nil, err
	}
	p, ok := s.users[uid]
	if !ok {
		return []models.GoodDeedEntry{}, nil
	}
	return append([]models.GoodDeedEntry{}, p.deeds...), nil
}

func (s *MemoryStore) SetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set good deeds"); err != nil {
		return err
	}
	s.partition(uid).deeds = append([]models.GoodDeedEntry{}, entries...)
	return nil
}

func (s *MemoryStore) GetGoodDeedCycle(ctx context.Context, uid string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get good deed cycle"); err != nil {
		return 0, err
	}
	if p, ok := s.users[uid]; ok {
		return p.deedCycle, nil
	}
	return 0, nil
}

func (s *MemoryStore) SetGoodDeedCycle(ctx context.Context, uid string, cycle int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set good deed cycle"); err != nil {
		return err
	}
	s.partition(uid).deedCycle = cycle
	return nil
}

func (s *MemoryStore) ResetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry, cycle int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("reset good deeds"); err != nil {
		return err
	}
	p := s.partition(uid)
	p.deeds = append([]models.GoodDeedEntry{}, entries...)
	p.deedCycle = cycle
	return nil
}

func (s *MemoryStore) GetQuranProgress(ctx context.Context, uid string, trackKey string) (models.QuranProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get quran progress"); err != nil {
		return models.QuranProgress{}, err
	}
	if p, ok := s.users[uid]; ok {
		return p.quran[trackKey], nil
	}
	return models.QuranProgress{}, nil
}

func (s *MemoryStore) SetQuranProgress(ctx context.Context, uid string, trackKey string, progress models.QuranProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("set quran progress"); err != nil {
		return err
	}
	s.partition(uid).quran[trackKey] = progress
	return nil
}

func (s *MemoryStore) SavePushToken(ctx context.Context, token models.PushToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save push token"); err != nil {
		return err
	}
	s.partition(token.User_ID).tokens[token.Push_Token] = token
	return nil
}

func (s *MemoryStore) GetPushTokens(ctx context.Context, uid string) ([]models.PushToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get push tokens"); err != nil {
		return nil, err
	}
	var tokens []models.PushToken
	if p, ok := s.users[uid]; ok {
		for _, t := range p.tokens {
			tokens = append(tokens, t)
		}
	}
	return tokens, nil
}

func (s *MemoryStore) SaveReminder(ctx context.Context, sub models.ReminderSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save reminder"); err != nil {
		return err
	}
	s.reminders[sub.PushToken] = sub
	return nil
}

func (s *MemoryStore) ListReminders(ctx context.Context) ([]models.ReminderSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("list reminders"); err != nil {
		return nil, err
	}
	subs := make([]models.ReminderSubscription, 0, len(s.reminders))
	for _, sub := range s.reminders {
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("create user"); err != nil {
		return err
	}
	email := strings.ToLower(user.Email)
	for _, existing := range s.accounts {
		if strings.ToLower(existing.Email) == email {
			return ErrEmailTaken
		}
	}
	s.accounts[user.User_ID] = user
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get user by email"); err != nil {
		return models.UserProfile{}, err
	}
	for _, u := range s.accounts {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.UserProfile{}, ErrNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, uid string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get user"); err != nil {
		return models.UserProfile{}, err
	}
	u, ok := s.accounts[uid]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return u, nil
}
