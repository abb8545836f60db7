package models

const (
	DeedsStateNoneUnlocked  = "none_unlocked"
	DeedsStateInProgress    = "in_progress"
	DeedsStateCycleComplete = "cycle_complete"

	PointsPerDeedCard = 100
)

type DeedCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GoodDeedEntry struct {
	Index      int    `json:"index"`
	Completed  bool   `json:"completed"`
	Reflection string `json:"reflection"`
}

type GoodDeedDeck struct {
	Entries []GoodDeedEntry `json:"entries"`
	Cycle   int             `json:"cycle"`
}

// Find returns the position of the entry holding catalog index idx, or -1.
func (d GoodDeedDeck) Find(idx int) int {
	for i, e := range d.Entries {
		if e.Index == idx {
			return i
		}
	}
	return -1
}

type GoodDeedCard struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Reflection  string `json:"reflection"`
}

type GoodDeedView struct {
	State    string        `json:"state"`
	Cycle    int           `json:"cycle"`
	Unlocked int           `json:"unlocked"`
	DeckSize int           `json:"deckSize"`
	Card     *GoodDeedCard `json:"card"`
	Message  string        `json:"message,omitempty"`
}

type GoodDeedEntryRow struct {
	User_ID    string `json:"uid"`
	Position   int    `json:"position"`
	Deed_Index int    `json:"index"`
	Completed  bool   `json:"completed"`
	Reflection string `json:"reflection"`
}

type ReflectionRequest struct {
	Reflection string `json:"reflection" binding:"max=2000"`
}
