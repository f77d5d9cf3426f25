package docserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/swipedeck/internal/card"
)

// Snapshot is the card set currently served.
type Snapshot struct {
	Cards               []card.Card
	LastLoaded          time.Time
	LastError           error
	ConsecutiveFailures int // reloads that failed since the last good one
}

// Stale reports whether the most recent reload failed.
func (s Snapshot) Stale() bool {
	return s.ConsecutiveFailures > 0
}

// Catalog coordinates reloads of the served cards with concurrent queries.
type Catalog struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewCatalog returns a catalog holding cards.
func NewCatalog(cards []card.Card) *Catalog {
	c := &Catalog{}
	c.Update(cards, nil)
	return c
}

// Update replaces the served cards. When err is non-nil the previous cards are
// kept but the error is recorded for /healthz. Cards are kept in ascending id
// order with duplicate ids dropped.
func (c *Catalog) Update(cards []card.Card, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.snapshot.LastError = err
		c.snapshot.ConsecutiveFailures++
		return
	}

	c.snapshot.Cards = card.NewSequence(cards).Cards()
	c.snapshot.LastError = nil
	c.snapshot.LastLoaded = time.Now()
	c.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snapshot
	snap.Cards = cloneCards(c.snapshot.Cards)
	if c.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", c.snapshot.LastError)
	}
	return snap
}

func cloneCards(cards []card.Card) []card.Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]card.Card, len(cards))
	copy(dup, cards)
	return dup
}
