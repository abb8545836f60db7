package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/rs/zerolog/log"
)

const (
	noneUnlockedMessage  = "Earn 100 reward points to unlock your first good deed card."
	cycleCompleteMessage = "You completed every good deed! A fresh deck has been shuffled for you."
)

type GoodDeedService struct {
	store   repositories.Store
	engine  *DeckEngine
	catalog []models.DeedCard

	mu sync.Mutex
}

var goodDeedService *GoodDeedService

func InitGoodDeedService(store repositories.Store) {
	goodDeedService = NewGoodDeedService(store, models.DeedCatalog, rand.NewSource(time.Now().UnixNano()))
	log.Info().Int("catalog", len(models.DeedCatalog)).Msg("Good deed service initialized")
}

func GetGoodDeedService() *GoodDeedService {
	return goodDeedService
}

func NewGoodDeedService(store repositories.Store, catalog []models.DeedCard, src rand.Source) *GoodDeedService {
	return &GoodDeedService{
		store:   store,
		engine:  NewDeckEngine(src, len(catalog)),
		catalog: catalog,
	}
}

// loadDeck reads the deck and cycle, dropping corrupted entries.
func (s *GoodDeedService) loadDeck(ctx context.Context, uid string) (models.GoodDeedDeck, error) {
	entries, err := s.store.GetGoodDeeds(ctx, uid)
	if err != nil {
		return models.GoodDeedDeck{}, persistence(err)
	}
	cycle, err := s.store.GetGoodDeedCycle(ctx, uid)
	if err != nil {
		return models.GoodDeedDeck{}, persistence(err)
	}
	if cycle <= 0 {
		cycle = 1
	}

	clean, problems := SanitizeDeck(entries, len(s.catalog))
	for _, p := range problems {
		log.Warn().Err(p).Str("uid", uid).Msg("Dropping good deed entry")
	}
	return models.GoodDeedDeck{Entries: clean, Cycle: cycle}, nil
}

func (s *GoodDeedService) saveDeck(ctx context.Context, uid string, deck models.GoodDeedDeck) error {
	if err := s.store.SetGoodDeeds(ctx, uid, deck.Entries); err != nil {
		return persistence(err)
	}
	return nil
}

// Current advances the deck against the user's reward points and returns the
// card to display.
func (s *GoodDeedService) Current(ctx context.Context, uid string) (models.GoodDeedView, error) {
	if uid == "" {
		return models.GoodDeedView{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := s.store.GetRewardPoints(ctx, uid)
	if err != nil {
		return models.GoodDeedView{}, persistence(err)
	}
	deck, err := s.loadDeck(ctx, uid)
	if err != nil {
		return models.GoodDeedView{}, err
	}

	deck, change := s.engine.Advance(deck, rewards)
	switch {
	case change.CycleReset:
		// the fresh deck and the new cycle land together or not at all
		if err := s.store.ResetGoodDeeds(ctx, uid, deck.Entries, deck.Cycle); err != nil {
			return models.GoodDeedView{}, persistence(err)
		}
		log.Info().Str("uid", uid).Int("cycle", deck.Cycle).Msg("Good deed cycle reset")
	case change.CardAdded:
		if err := s.saveDeck(ctx, uid, deck); err != nil {
			return models.GoodDeedView{}, err
		}
	}

	view := s.view(deck, UnlockedCount(rewards))
	if change.CycleReset {
		view.Message = cycleCompleteMessage
	}
	return view, nil
}

func (s *GoodDeedService) view(deck models.GoodDeedDeck, unlocked int) models.GoodDeedView {
	view := models.GoodDeedView{
		State:    DeckState(deck.Entries, len(s.catalog), unlocked),
		Cycle:    deck.Cycle,
		Unlocked: unlocked,
		DeckSize: len(deck.Entries),
	}

	if unlocked == 0 {
		view.State = models.DeedsStateNoneUnlocked
		view.Message = noneUnlockedMessage
		return view
	}

	if pos := DisplayPosition(deck.Entries); pos >= 0 {
		view.Card = s.card(deck.Entries[pos])
	}
	return view
}

func (s *GoodDeedService) card(e models.GoodDeedEntry) *models.GoodDeedCard {
	c := s.catalog[e.Index]
	return &models.GoodDeedCard{
		Index:       e.Index,
		Title:       c.Title,
		Description: c.Description,
		Completed:   e.Completed,
		Reflection:  e.Reflection,
	}
}

// CompleteCard marks the entry holding catalog index idx as completed.
func (s *GoodDeedService) CompleteCard(ctx context.Context, uid string, idx int) (models.GoodDeedCard, error) {
	return s.mutate(ctx, uid, idx, func(e *models.GoodDeedEntry) {
		e.Completed = true
	})
}

// SaveReflection stores the free text written for the entry holding idx.
func (s *GoodDeedService) SaveReflection(ctx context.Context, uid string, idx int, text string) (models.GoodDeedCard, error) {
	return s.mutate(ctx, uid, idx, func(e *models.GoodDeedEntry) {
		e.Reflection = text
	})
}

func (s *GoodDeedService) mutate(ctx context.Context, uid string, idx int, fn func(*models.GoodDeedEntry)) (models.GoodDeedCard, error) {
	if uid == "" {
		return models.GoodDeedCard{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.loadDeck(ctx, uid)
	if err != nil {
		return models.GoodDeedCard{}, err
	}
	pos := deck.Find(idx)
	if pos < 0 {
		return models.GoodDeedCard{}, ErrCardNotFound
	}

	fn(&deck.Entries[pos])
	if err := s.saveDeck(ctx, uid, deck); err != nil {
		return models.GoodDeedCard{}, err
	}
	return *s.card(deck.Entries[pos]), nil
}
