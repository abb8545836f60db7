package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	SessionEventCountdown = "countdown"
	SessionEventStatus    = "status"

	subscriberBuffer = 8
	jobTimeout       = 4 * time.Second
)

type SessionEvent struct {
	Type      string                     `json:"type"`
	Countdown *models.Countdown          `json:"countdown,omitempty"`
	Status    *models.ActivePrayerStatus `json:"status,omitempty"`
}

type SessionConfig struct {
	TickInterval          time.Duration
	StatusRefreshInterval time.Duration
	AudioSaveInterval     time.Duration
	Location              *time.Location
}

// Session is the live state of one signed-in client: its schedule, the
// periodic countdown and status jobs, SSE subscribers and the audio saver.
type Session struct {
	ClientID string
	Identity models.Identity

	scheduleMu sync.RWMutex
	schedule   models.Schedule

	statusMu sync.RWMutex
	status   models.ActivePrayerStatus

	subsMu sync.Mutex
	subs   map[chan SessionEvent]struct{}
	closed bool

	cron    *cron.Cron
	audio   *audioSaver
	manager *SessionManager
}

func (s *Session) Schedule() models.Schedule {
	s.scheduleMu.RLock()
	defer s.scheduleMu.RUnlock()
	return s.schedule
}

func (s *Session) prayers() []models.PrayerTime {
	s.scheduleMu.RLock()
	defer s.scheduleMu.RUnlock()
	return s.schedule.Prayers
}

// Countdown computes the countdown at now against the session schedule.
func (s *Session) Countdown(now time.Time) models.Countdown {
	prayers := s.prayers()
	if len(prayers) == 0 {
		return PlaceholderCountdown()
	}
	return Tick(prayers, now)
}

// Status is the active prayer status from the last refresh.
func (s *Session) Status() models.ActivePrayerStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// Subscribe registers a listener for session events. The returned function
// removes it; the channel is closed when the session stops.
func (s *Session) Subscribe() (<-chan SessionEvent, func()) {
	ch := make(chan SessionEvent, subscriberBuffer)

	s.subsMu.Lock()
	if s.closed {
		close(ch)
		s.subsMu.Unlock()
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

// broadcast drops the event for subscribers that are not keeping up.
func (s *Session) broadcast(ev SessionEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return
	}
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// RecordAudio persists a playback position through the throttled saver.
func (s *Session) RecordAudio(ctx context.Context, trackKey string, position float64, event string) (bool, error) {
	if _, ok := models.FindQuranTrack(trackKey); !ok {
		return false, ErrUnknownTrack
	}
	return s.audio.Record(ctx, trackKey, position, event)
}

func (s *Session) tick() {
	countdown := s.Countdown(s.manager.clock())
	s.broadcast(SessionEvent{Type: SessionEventCountdown, Countdown: &countdown})

	if s.manager.publisher != nil {
		if err := s.manager.publisher.PublishCountdown(s.Identity.UID, countdown); err != nil {
			log.Warn().Err(err).Str("client", s.ClientID).Msg("Countdown publish failed")
		}
	}
}

func (s *Session) refreshStatus() {
	prayers := s.prayers()
	if len(prayers) == 0 || s.manager.tracker == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	status, err := s.manager.tracker.ActiveStatus(ctx, s.Identity.UID, prayers, s.manager.clock())
	if err != nil {
		log.Error().Err(err).Str("client", s.ClientID).Msg("Active prayer status refresh failed")
		return
	}

	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
	s.broadcast(SessionEvent{Type: SessionEventStatus, Status: &status})
}

func (s *Session) start() error {
	tickSpec := fmt.Sprintf("@every %s", s.manager.cfg.TickInterval)
	if _, err := s.cron.AddFunc(tickSpec, s.tick); err != nil {
		return fmt.Errorf("schedule countdown tick: %w", err)
	}
	statusSpec := fmt.Sprintf("@every %s", s.manager.cfg.StatusRefreshInterval)
	if _, err := s.cron.AddFunc(statusSpec, s.refreshStatus); err != nil {
		return fmt.Errorf("schedule status refresh: %w", err)
	}

	s.refreshStatus()
	s.cron.Start()
	return nil
}

func (s *Session) stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(jobTimeout):
		log.Warn().Str("client", s.ClientID).Msg("Session jobs still running after stop")
	}

	s.audio.Stop()

	s.subsMu.Lock()
	s.closed = true
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.subsMu.Unlock()
}

// SessionManager owns every live session, one per user and client id.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg       SessionConfig
	tracker   *TrackerService
	quran     *QuranService
	publisher CountdownPublisher
	clock     func() time.Time
}

var sessionManager *SessionManager

func InitSessionManager(cfg SessionConfig, tracker *TrackerService, quran *QuranService, publisher CountdownPublisher) {
	sessionManager = NewSessionManager(cfg, tracker, quran, publisher)
	log.Info().Dur("tick", cfg.TickInterval).Dur("status_refresh", cfg.StatusRefreshInterval).Msg("Session manager initialized")
}

func GetSessionManager() *SessionManager {
	return sessionManager
}

func NewSessionManager(cfg SessionConfig, tracker *TrackerService, quran *QuranService, publisher CountdownPublisher) *SessionManager {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.StatusRefreshInterval <= 0 {
		cfg.StatusRefreshInterval = 5 * time.Second
	}
	if cfg.AudioSaveInterval <= 0 {
		cfg.AudioSaveInterval = time.Second
	}
	return &SessionManager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		tracker:   tracker,
		quran:     quran,
		publisher: publisher,
		clock:     func() time.Time { return time.Now().In(cfg.Location) },
	}
}

// sessionKey scopes client ids per user so one user can never reach or
// replace another user's session.
func sessionKey(uid string, clientID string) string {
	return uid + "|" + clientID
}

// Start opens a session for clientID under identity. A previous session the
// same user held on that client is stopped first.
func (m *SessionManager) Start(clientID string, identity models.Identity, schedule models.Schedule) (*Session, error) {
	if clientID == "" || identity.UID == "" {
		return nil, ErrInvalidSession
	}
	key := sessionKey(identity.UID, clientID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[key]; ok {
		delete(m.sessions, key)
		prev.stop()
		log.Info().Str("client", clientID).Str("uid", identity.UID).Msg("Replaced session")
	}

	s := &Session{
		ClientID: clientID,
		Identity: identity,
		schedule: schedule,
		subs:     make(map[chan SessionEvent]struct{}),
		cron:     cron.New(cron.WithLocation(m.cfg.Location)),
		manager:  m,
	}
	s.audio = newAudioSaver(m.cfg.AudioSaveInterval, func(ctx context.Context, trackKey string, position float64, event string) error {
		if m.quran == nil {
			return nil
		}
		_, err := m.quran.RecordPlayback(ctx, identity.UID, trackKey, position, event)
		return err
	})

	if err := s.start(); err != nil {
		s.stop()
		return nil, err
	}
	m.sessions[key] = s
	log.Info().Str("client", clientID).Str("uid", identity.UID).Str("date", schedule.Date).Msg("Session started")
	return s, nil
}

// Get returns the session for clientID when it belongs to uid.
func (m *SessionManager) Get(clientID string, uid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionKey(uid, clientID)]
	if !ok {
		return nil, ErrInvalidSession
	}
	return s, nil
}

// Stop ends the session for clientID when it belongs to uid.
func (m *SessionManager) Stop(clientID string, uid string) error {
	key := sessionKey(uid, clientID)

	m.mu.Lock()
	s, ok := m.sessions[key]
	if !ok {
		m.mu.Unlock()
		return ErrInvalidSession
	}
	delete(m.sessions, key)
	m.mu.Unlock()

	s.stop()
	log.Info().Str("client", clientID).Str("uid", uid).Msg("Session stopped")
	return nil
}

// Shutdown stops every session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.stop()
	}
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
