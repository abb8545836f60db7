package services

import (
	"context"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type audioSaveFunc func(ctx context.Context, trackKey string, position float64, event string) error

type pendingSave struct {
	trackKey string
	position float64
	event    string
}

// audioSaver throttles playback saves to one per interval per track. A
// throttled position is kept and flushed by a timer once the interval has
// passed. Pause and end events are saved immediately.
type audioSaver struct {
	mu       sync.Mutex
	interval time.Duration
	limiters map[string]*rate.Limiter
	pending  map[string]pendingSave
	timers   map[string]*time.Timer
	save     audioSaveFunc
	stopped  bool
}

func newAudioSaver(interval time.Duration, save audioSaveFunc) *audioSaver {
	return &audioSaver{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
		pending:  make(map[string]pendingSave),
		timers:   make(map[string]*time.Timer),
		save:     save,
	}
}

func (a *audioSaver) limiter(trackKey string) *rate.Limiter {
	l, ok := a.limiters[trackKey]
	if !ok {
		l = rate.NewLimiter(rate.Every(a.interval), 1)
		a.limiters[trackKey] = l
	}
	return l
}

func (a *audioSaver) cancelPending(trackKey string) {
	if t, ok := a.timers[trackKey]; ok {
		t.Stop()
		delete(a.timers, trackKey)
	}
	delete(a.pending, trackKey)
}

// Record reports whether the position was persisted now. A false result
// with a nil error means the save was deferred to the flush timer.
func (a *audioSaver) Record(ctx context.Context, trackKey string, position float64, event string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return false, ErrInvalidSession
	}

	if event != models.AudioEventPlaying || a.limiter(trackKey).Allow() {
		a.cancelPending(trackKey)
		return true, a.save(ctx, trackKey, position, event)
	}

	a.pending[trackKey] = pendingSave{trackKey: trackKey, position: position, event: event}
	if _, ok := a.timers[trackKey]; !ok {
		a.timers[trackKey] = time.AfterFunc(a.interval, func() { a.flush(trackKey) })
	}
	return false, nil
}

func (a *audioSaver) flush(trackKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.timers, trackKey)
	p, ok := a.pending[trackKey]
	if !ok || a.stopped {
		return
	}
	delete(a.pending, trackKey)
	a.limiter(trackKey).Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.save(ctx, p.trackKey, p.position, p.event); err != nil {
		log.Error().Err(err).Str("track", trackKey).Msg("Failed to flush audio progress")
	}
}

// Stop cancels every pending flush. Later Record calls fail.
func (a *audioSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	for key := range a.timers {
		a.cancelPending(key)
	}
	a.pending = make(map[string]pendingSave)
}
