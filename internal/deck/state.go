package deck

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/swipedeck/internal/card"
)

// DefaultDepth is the number of cards rendered in the stack at once.
const DefaultDepth = 4

// Persister stores the read index between runs.
type Persister interface {
	// LoadIndex returns the saved index; ok is false when nothing was saved.
	LoadIndex(ctx context.Context) (index int, ok bool, err error)
	SaveIndex(ctx context.Context, index int) error
}

// State owns the read index into a card sequence.
type State struct {
	depth     int
	seq       card.Sequence
	index     int
	persister Persister
	logger    *slog.Logger
}

// New returns an empty State. A nil persister keeps the index in memory only.
func New(depth int, persister Persister, logger *slog.Logger) *State {
	if depth < 1 {
		depth = DefaultDepth
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &State{depth: depth, persister: persister, logger: logger}
}

// Restore reads the persisted index. It is called once at startup, before Load.
// Read failures leave the index at 0.
func (s *State) Restore(ctx context.Context) {
	if s.persister == nil {
		return
	}
	idx, ok, err := s.persister.LoadIndex(ctx)
	if err != nil {
		s.logger.Warn("restore index failed", "error", err)
		return
	}
	if ok {
		s.index = idx
	}
}

// Load installs a sequence and clamps the index into range.
func (s *State) Load(seq card.Sequence) {
	s.seq = seq
	if s.index < 0 || s.index >= seq.Len() {
		if s.index != 0 {
			s.logger.Info("saved index out of range, resetting", "index", s.index, "cards", seq.Len())
		}
		s.index = 0
	}
}

// Window returns the next min(depth, len) cards starting at the current index,
// wrapping around the end of the sequence. It is nil for an empty deck.
func (s *State) Window() []card.Card {
	n := s.seq.Len()
	if n == 0 {
		return nil
	}
	size := min(s.depth, n)
	out := make([]card.Card, size)
	for j := range size {
		out[j] = s.seq.At((s.index + j) % n)
	}
	return out
}

// Advance moves to the next card, looping past the end, and persists the new
// index. It reports false and does nothing on an empty deck.
func (s *State) Advance(ctx context.Context) bool {
	n := s.seq.Len()
	if n == 0 {
		return false
	}
	s.index = (s.index + 1) % n
	if s.persister != nil {
		if err := s.persister.SaveIndex(ctx, s.index); err != nil {
			s.logger.Warn("persist index failed", "index", s.index, "error", err)
		}
	}
	return true
}

// Index returns the current read position.
func (s *State) Index() int { return s.index }

// Len returns the number of loaded cards.
func (s *State) Len() int { return s.seq.Len() }

// Empty reports whether the deck has no cards to show.
func (s *State) Empty() bool { return s.seq.Empty() }

// Depth returns the configured look-ahead depth.
func (s *State) Depth() int { return s.depth }

// Counter formats the 1-based position, e.g. "2 / 5".
func (s *State) Counter() string {
	if s.Empty() {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.index+1, s.seq.Len())
}
