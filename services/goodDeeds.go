package services

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/SalahTracker/models"
)

func UnlockedCount(rewardPoints int) int {
	if rewardPoints <= 0 {
		return 0
	}
	return rewardPoints / models.PointsPerDeedCard
}

func allCompleted(entries []models.GoodDeedEntry) bool {
	for _, e := range entries {
		if !e.Completed {
			return false
		}
	}
	return true
}

// DeckState classifies a deck against the catalog size and unlock count.
func DeckState(entries []models.GoodDeedEntry, catalogSize int, unlocked int) string {
	if catalogSize > 0 && len(entries) == catalogSize && allCompleted(entries) {
		return models.DeedsStateCycleComplete
	}
	if unlocked == 0 {
		return models.DeedsStateNoneUnlocked
	}
	return models.DeedsStateInProgress
}

// DisplayPosition is the first incomplete entry, else the last one, else -1.
func DisplayPosition(entries []models.GoodDeedEntry) int {
	for i, e := range entries {
		if !e.Completed {
			return i
		}
	}
	return len(entries) - 1
}

// SanitizeDeck drops entries outside the catalog and repeated indices,
// keeping the first occurrence. Every dropped entry is reported.
func SanitizeDeck(entries []models.GoodDeedEntry, catalogSize int) ([]models.GoodDeedEntry, []error) {
	seen := make(map[int]bool, len(entries))
	clean := make([]models.GoodDeedEntry, 0, len(entries))
	var problems []error

	for pos, e := range entries {
		if e.Index < 0 || e.Index >= catalogSize {
			problems = append(problems, fmt.Errorf("%w: entry %d has index %d outside catalog of %d", ErrInvalidState, pos, e.Index, catalogSize))
			continue
		}
		if seen[e.Index] {
			problems = append(problems, fmt.Errorf("%w: entry %d repeats index %d", ErrInvalidState, pos, e.Index))
			continue
		}
		seen[e.Index] = true
		clean = append(clean, e)
	}
	return clean, problems
}

// DeckEngine owns the random source used for shuffles and card grants.
type DeckEngine struct {
	mu          sync.Mutex
	rng         *rand.Rand
	catalogSize int
}

func NewDeckEngine(src rand.Source, catalogSize int) *DeckEngine {
	return &DeckEngine{rng: rand.New(src), catalogSize: catalogSize}
}

func (e *DeckEngine) CatalogSize() int {
	return e.catalogSize
}

// Permutation is an unbiased Fisher-Yates shuffle of 0..catalogSize-1.
func (e *DeckEngine) Permutation() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	perm := make([]int, e.catalogSize)
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// PickUnused draws uniformly among catalog indices not present in entries.
func (e *DeckEngine) PickUnused(entries []models.GoodDeedEntry) (int, bool) {
	used := make(map[int]bool, len(entries))
	for _, en := range entries {
		used[en.Index] = true
	}

	available := make([]int, 0, e.catalogSize)
	for i := 0; i < e.catalogSize; i++ {
		if !used[i] {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return 0, false
	}

	e.mu.Lock()
	pick := available[e.rng.Intn(len(available))]
	e.mu.Unlock()
	return pick, true
}

type DeckChange struct {
	CycleReset bool
	CardAdded  bool
}

// Advance runs one unlock step: a completed cycle is reshuffled into a fresh
// deck, otherwise one card is granted when fewer are held than unlocked.
func (e *DeckEngine) Advance(deck models.GoodDeedDeck, rewardPoints int) (models.GoodDeedDeck, DeckChange) {
	var change DeckChange
	unlocked := UnlockedCount(rewardPoints)

	if DeckState(deck.Entries, e.catalogSize, unlocked) == models.DeedsStateCycleComplete {
		perm := e.Permutation()
		entries := make([]models.GoodDeedEntry, 0, len(perm))
		for _, idx := range perm {
			entries = append(entries, models.GoodDeedEntry{Index: idx})
		}
		deck = models.GoodDeedDeck{Entries: entries, Cycle: deck.Cycle + 1}
		change.CycleReset = true
	}

	if unlocked == 0 {
		return deck, change
	}

	if len(deck.Entries) < unlocked {
		if idx, ok := e.PickUnused(deck.Entries); ok {
			entries := append(append([]models.GoodDeedEntry{}, deck.Entries...), models.GoodDeedEntry{Index: idx})
			deck = models.GoodDeedDeck{Entries: entries, Cycle: deck.Cycle}
			change.CardAdded = true
		}
	}

	return deck, change
}
