package services

import (
	"context"
	"math"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/rs/zerolog/log"
)

// Forward moves larger than this are treated as seeks.
const seekThresholdSeconds = 15.0

// QuranXPGain is the number of 10 second boundaries crossed moving forward
// from oldPos to newPos during continuous playback.
func QuranXPGain(oldPos, newPos float64) int {
	if newPos <= oldPos || newPos-oldPos > seekThresholdSeconds {
		return 0
	}
	return int(math.Floor(newPos/models.QuranXPInterval)) - int(math.Floor(oldPos/models.QuranXPInterval))
}

type QuranService struct {
	store   repositories.Store
	tracker *TrackerService
}

var quranService *QuranService

func InitQuranService(store repositories.Store, tracker *TrackerService) {
	quranService = NewQuranService(store, tracker)
}

func GetQuranService() *QuranService {
	return quranService
}

func NewQuranService(store repositories.Store, tracker *TrackerService) *QuranService {
	return &QuranService{store: store, tracker: tracker}
}

func (s *QuranService) Tracks() []models.QuranTrack {
	return models.QuranTracks
}

func (s *QuranService) Progress(ctx context.Context, uid string, trackKey string) (models.QuranProgress, error) {
	if uid == "" {
		return models.QuranProgress{}, nil
	}
	if _, ok := models.FindQuranTrack(trackKey); !ok {
		return models.QuranProgress{}, ErrUnknownTrack
	}
	progress, err := s.store.GetQuranProgress(ctx, uid, trackKey)
	if err != nil {
		return models.QuranProgress{}, persistence(err)
	}
	return progress, nil
}

// RecordPlayback persists the playback position of a track and awards xp
// for the listening time since the last saved position.
func (s *QuranService) RecordPlayback(ctx context.Context, uid string, trackKey string, position float64, event string) (models.QuranProgress, error) {
	if uid == "" {
		return models.QuranProgress{}, nil
	}
	if _, ok := models.FindQuranTrack(trackKey); !ok {
		return models.QuranProgress{}, ErrUnknownTrack
	}
	if position < 0 {
		position = 0
	}

	current, err := s.store.GetQuranProgress(ctx, uid, trackKey)
	if err != nil {
		return models.QuranProgress{}, persistence(err)
	}

	gain := QuranXPGain(current.PositionSeconds, position)
	next := models.QuranProgress{PositionSeconds: position, XP: current.XP + gain}
	if err := s.store.SetQuranProgress(ctx, uid, trackKey, next); err != nil {
		return models.QuranProgress{}, persistence(err)
	}

	if gain > 0 && s.tracker != nil {
		if _, err := s.tracker.AddXP(ctx, uid, gain); err != nil {
			return next, err
		}
	}

	log.Debug().Str("uid", uid).Str("track", trackKey).Str("event", event).Float64("position", position).Int("xp_gain", gain).Msg("Quran playback saved")
	return next, nil
}
