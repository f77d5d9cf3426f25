package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/swipedeck/internal/card"
)

type memPersister struct {
	index   int
	ok      bool
	loadErr error
	saveErr error
	saves   []int
}

func (m *memPersister) LoadIndex(context.Context) (int, bool, error) {
	return m.index, m.ok, m.loadErr
}

func (m *memPersister) SaveIndex(_ context.Context, index int) error {
	m.saves = append(m.saves, index)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.index, m.ok = index, true
	return nil
}

func seqOf(n int) card.Sequence {
	cards := make([]card.Card, n)
	for i := range cards {
		cards[i] = card.Card{ID: i + 1}
	}
	return card.NewSequence(cards)
}

func TestAdvance_IsCircular(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s := New(4, nil, nil)
		s.Load(seqOf(n))
		s.Advance(context.Background())
		start := s.Index()
		for range n {
			if !s.Advance(context.Background()) {
				t.Fatalf("Advance returned false on %d cards", n)
			}
		}
		if s.Index() != start {
			t.Fatalf("after %d advances index = %d, want %d", n, s.Index(), start)
		}
	}
}

func TestWindow_WrapsAndSizes(t *testing.T) {
	cases := []struct {
		name  string
		depth int
		n     int
		adv   int
	}{
		{"full", 4, 10, 0},
		{"wraps", 4, 5, 3},
		{"short_deck", 4, 2, 1},
		{"single", 4, 1, 0},
		{"depth_one", 1, 3, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq := seqOf(tc.n)
			s := New(tc.depth, nil, nil)
			s.Load(seq)
			for range tc.adv {
				s.Advance(context.Background())
			}
			win := s.Window()
			if len(win) != min(tc.depth, tc.n) {
				t.Fatalf("len(Window) = %d, want %d", len(win), min(tc.depth, tc.n))
			}
			for j, c := range win {
				want := seq.At((s.Index() + j) % tc.n)
				if c.ID != want.ID {
					t.Fatalf("Window[%d].ID = %d, want %d", j, c.ID, want.ID)
				}
			}
		})
	}
}

func TestWindow_RecomputedAfterAdvance(t *testing.T) {
	s := New(3, nil, nil)
	s.Load(seqOf(4))
	before := s.Window()
	s.Advance(context.Background())
	after := s.Window()
	if after[0].ID != before[1].ID {
		t.Fatalf("Window[0] after advance = %d, want %d", after[0].ID, before[1].ID)
	}
}

func TestLoad_ClampsOutOfRangeRestoredIndex(t *testing.T) {
	p := &memPersister{index: 7, ok: true}
	s := New(4, p, nil)
	s.Restore(context.Background())
	s.Load(seqOf(3))
	if s.Index() != 0 {
		t.Fatalf("Index = %d, want 0", s.Index())
	}
}

func TestLoad_KeepsInRangeRestoredIndex(t *testing.T) {
	p := &memPersister{index: 2, ok: true}
	s := New(4, p, nil)
	s.Restore(context.Background())
	s.Load(seqOf(3))
	if s.Index() != 2 {
		t.Fatalf("Index = %d, want 2", s.Index())
	}
	if s.Counter() != "3 / 3" {
		t.Fatalf("Counter = %q, want %q", s.Counter(), "3 / 3")
	}
}

func TestRestore_ErrorLeavesZero(t *testing.T) {
	p := &memPersister{index: 2, ok: true, loadErr: errors.New("disk")}
	s := New(4, p, nil)
	s.Restore(context.Background())
	s.Load(seqOf(3))
	if s.Index() != 0 {
		t.Fatalf("Index = %d, want 0", s.Index())
	}
}

func TestAdvance_PersistsEveryStep(t *testing.T) {
	p := &memPersister{}
	s := New(4, p, nil)
	s.Load(seqOf(3))
	for range 4 {
		s.Advance(context.Background())
	}
	want := []int{1, 2, 0, 1}
	if len(p.saves) != len(want) {
		t.Fatalf("saves = %v, want %v", p.saves, want)
	}
	for i := range want {
		if p.saves[i] != want[i] {
			t.Fatalf("saves = %v, want %v", p.saves, want)
		}
	}
}

func TestAdvance_SaveErrorIsNotFatal(t *testing.T) {
	p := &memPersister{saveErr: errors.New("read-only")}
	s := New(4, p, nil)
	s.Load(seqOf(2))
	if !s.Advance(context.Background()) {
		t.Fatalf("Advance returned false, want true")
	}
	if s.Index() != 1 {
		t.Fatalf("Index = %d, want 1", s.Index())
	}
}

func TestEmptyDeck(t *testing.T) {
	p := &memPersister{index: 3, ok: true}
	s := New(4, p, nil)
	s.Restore(context.Background())
	s.Load(card.NewSequence(nil))

	if !s.Empty() {
		t.Fatalf("Empty() = false, want true")
	}
	if w := s.Window(); w != nil {
		t.Fatalf("Window() = %v, want nil", w)
	}
	if s.Advance(context.Background()) {
		t.Fatalf("Advance returned true on empty deck")
	}
	if len(p.saves) != 0 {
		t.Fatalf("empty advance persisted %v", p.saves)
	}
	if s.Counter() != "0 / 0" {
		t.Fatalf("Counter = %q, want 0 / 0", s.Counter())
	}
}

func TestNew_DefaultsDepth(t *testing.T) {
	if got := New(0, nil, nil).Depth(); got != DefaultDepth {
		t.Fatalf("Depth = %d, want %d", got, DefaultDepth)
	}
}
