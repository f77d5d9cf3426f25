package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/deck"
	"github.com/five82/swipedeck/internal/effects"
	"github.com/five82/swipedeck/internal/feedback"
	"github.com/five82/swipedeck/internal/gesture"
	"github.com/five82/swipedeck/internal/prefs"
)

type staticCards []card.Card

func (s staticCards) Fetch(context.Context) card.Sequence { return card.NewSequence(s) }

type recordingHaptics struct {
	patterns []string
}

func (r *recordingHaptics) Vibrate(p feedback.Pattern) { r.patterns = append(r.patterns, p.String()) }

type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)} }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft)
}

func motion(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionMotion, tea.MouseButtonLeft)
}

func release(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionRelease, tea.MouseButtonNone)
}

func rightPress(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionPress, tea.MouseButtonRight)
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyType(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

type harness struct {
	model   Model
	clock   *clock
	haptics *recordingHaptics
}

func newHarness(t *testing.T, cards []card.Card) *harness {
	t.Helper()
	clk := newClock()
	h := &recordingHaptics{}
	m := New(Options{
		Cards:     staticCards(cards),
		Deck:      deck.New(3, nil, nil),
		Engine:    gesture.New(gesture.DefaultConfig()),
		Haptics:   h,
		Particles: effects.NewField(1),
		Prefs:     prefs.Prefs{Theme: "Dracula", SeenHelp: true},
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Now:       clk.now,
	})
	m, _ = step(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = step(m, fetchCardsCmd(context.Background(), staticCards(cards))())
	return &harness{model: m, clock: clk, haptics: h}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = step(h.model, msg)
	return cmd
}

func (h *harness) settle() {
	h.send(settleMsg{binding: h.model.binding.ID()})
}

func fourCards() []card.Card {
	return []card.Card{
		{ID: 1, Title: "Bienvenue", Text: "Glisse vers la droite"},
		{ID: 2, Title: "Nos souvenirs", Text: "Tu te souviens ?"},
		{ID: 3, Title: "Une raison de plus", Text: "J'aime ton sourire"},
		{ID: 4, Title: "Pour toujours", Text: "Encore plus de souvenirs"},
	}
}

func TestModel_LoadsDeckAndAttaches(t *testing.T) {
	h := newHarness(t, fourCards())
	m := h.model
	if !m.loaded {
		t.Fatalf("loaded = false after cardsMsg")
	}
	if !m.binding.Live() {
		t.Fatalf("binding not attached after load")
	}
	if got := m.binding.Layers(); got != 3 {
		t.Fatalf("binding layers = %d, want min(depth, len) = 3", got)
	}
	view := m.View()
	if !strings.Contains(view, "1 / 4") {
		t.Fatalf("view missing counter 1 / 4")
	}
	if !strings.Contains(view, "Bienvenue") {
		t.Fatalf("view missing top card title")
	}
}

func TestModel_SpinnerUntilLoaded(t *testing.T) {
	m := New(Options{Prefs: prefs.Prefs{SeenHelp: true}, PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q, want Loading...", got)
	}
	m, _ = step(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.View(), "Loading cards") {
		t.Fatalf("View before fetch should show the loading spinner")
	}
	if m.binding != nil {
		t.Fatalf("binding attached before cards arrived")
	}
}

func TestModel_DragPastThresholdAdvancesOnce(t *testing.T) {
	h := newHarness(t, fourCards())
	first := h.model.binding

	h.send(press(40, 12))
	h.clock.advance(16 * time.Millisecond)
	h.send(motion(55, 12))
	h.send(motion(70, 12))
	cmd := h.send(release(70, 12))
	if cmd == nil {
		t.Fatalf("release returned no command, want settle + frames")
	}
	if len(h.haptics.patterns) != 1 || h.haptics.patterns[0] != feedback.PatternAdvance.String() {
		t.Fatalf("haptics = %v, want one advance pulse", h.haptics.patterns)
	}
	if h.model.deck.Index() != 0 {
		t.Fatalf("index moved before settle")
	}

	h.settle()
	if got := h.model.deck.Index(); got != 1 {
		t.Fatalf("index after settle = %d, want 1", got)
	}
	if first.Live() {
		t.Fatalf("old binding still live after advance")
	}
	if !h.model.binding.Live() || h.model.binding.ID() == first.ID() {
		t.Fatalf("expected a fresh live binding after advance")
	}

	// A late settle from the old binding does nothing.
	h.send(settleMsg{binding: first.ID()})
	if got := h.model.deck.Index(); got != 1 {
		t.Fatalf("stale settle moved index to %d", got)
	}
}

func TestModel_ShortDragCancels(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(press(40, 12))
	h.send(motion(48, 12))
	h.send(release(48, 12))
	if len(h.haptics.patterns) != 0 {
		t.Fatalf("haptics fired on cancel: %v", h.haptics.patterns)
	}
	h.send(settleMsg{binding: h.model.binding.ID()})
	if h.model.deck.Index() != 0 {
		t.Fatalf("cancelled drag advanced the deck")
	}
}

func TestModel_PressOutsideCardIgnored(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(press(1, 22))
	if h.model.engine.Phase() != gesture.PhaseIdle {
		t.Fatalf("press outside the card started a drag")
	}
}

func TestModel_ShakeSkips(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(press(40, 12))
	xs := []int{46, 40, 46, 40, 46, 40}
	for _, x := range xs {
		h.clock.advance(20 * time.Millisecond)
		h.send(motion(x, 12))
	}
	h.send(release(40, 12))
	if len(h.haptics.patterns) != 1 || h.haptics.patterns[0] != feedback.PatternSuccess.String() {
		t.Fatalf("haptics = %v, want success pattern for skip", h.haptics.patterns)
	}
	h.settle()
	if got := h.model.deck.Index(); got != 1 {
		t.Fatalf("index after skip = %d, want 1", got)
	}
}

func TestModel_KeyboardFlingWrapsAround(t *testing.T) {
	h := newHarness(t, fourCards())
	for i := 0; i < 4; i++ {
		h.send(keyType(tea.KeyRight))
		h.settle()
	}
	if got := h.model.deck.Index(); got != 0 {
		t.Fatalf("index after four advances = %d, want 0", got)
	}
	if !strings.Contains(h.model.View(), "1 / 4") {
		t.Fatalf("counter did not wrap to 1 / 4")
	}
}

func TestModel_DoubleTapFlipsFlipCard(t *testing.T) {
	h := newHarness(t, []card.Card{{ID: 7, Title: "Recto", Text: "front", FlipText: "verso", IsFlip: true}})
	tap := func() {
		h.send(press(40, 12))
		h.send(release(40, 12))
	}
	tap()
	h.clock.advance(150 * time.Millisecond)
	tap()
	st := h.model.faces[7]
	if st == nil || !st.flipped {
		t.Fatalf("double tap did not flip the card")
	}
	if !strings.Contains(h.model.View(), "verso") {
		t.Fatalf("flipped card should show its back text")
	}
}

func TestModel_SlowTapsDoNotFlip(t *testing.T) {
	h := newHarness(t, []card.Card{{ID: 7, Title: "Recto", IsFlip: true}})
	h.send(press(40, 12))
	h.send(release(40, 12))
	h.clock.advance(time.Second)
	h.send(press(40, 12))
	h.send(release(40, 12))
	if st := h.model.faces[7]; st != nil && st.flipped {
		t.Fatalf("taps a second apart flipped the card")
	}
}

func TestModel_ScratchRevealFiresOnce(t *testing.T) {
	h := newHarness(t, []card.Card{
		{ID: 3, Title: "Surprise", Text: "Un secret", IsScratch: true, IsSpecial: true, ExplosionEmojis: "🎉"},
		{ID: 4, Title: "Next"},
	})
	st := h.model.faces[3]
	if st == nil || st.surface == nil {
		t.Fatalf("scratch card on top has no surface")
	}
	body := bodyRect(newStage(80, 24), h.model.deck.Window()[0], gesture.Identity)
	h.send(rightPress(body.x+1, body.y))
	if st.surface.Progress() == 0 {
		t.Fatalf("right press inside the body did not scratch")
	}
	if h.model.engine.Phase() != gesture.PhaseIdle {
		t.Fatalf("scratching started a swipe")
	}

	h.send(keyRunes("r"))
	if !st.surface.Completed() {
		t.Fatalf("reveal key did not complete the surface")
	}
	if len(h.haptics.patterns) != 1 || h.haptics.patterns[0] != feedback.PatternSuccess.String() {
		t.Fatalf("haptics = %v, want one success pattern", h.haptics.patterns)
	}
	if !h.model.particles.Active() {
		t.Fatalf("special card reveal should burst particles")
	}
	h.send(keyRunes("r"))
	if len(h.haptics.patterns) != 1 {
		t.Fatalf("second reveal fired feedback again: %v", h.haptics.patterns)
	}
}

func TestModel_EmptyDeckShowsEmptyState(t *testing.T) {
	h := newHarness(t, nil)
	if h.model.binding != nil {
		t.Fatalf("empty deck attached a binding")
	}
	if !strings.Contains(h.model.View(), "No cards to show") {
		t.Fatalf("empty state missing from view")
	}
	h.send(keyType(tea.KeyRight))
	h.send(press(40, 12))
	if h.model.deck.Index() != 0 {
		t.Fatalf("input on an empty deck changed the index")
	}
}

func TestModel_BlurCancelsDrag(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(press(40, 12))
	h.send(motion(44, 12))
	h.send(tea.BlurMsg{})
	if h.model.engine.Phase() != gesture.PhaseIdle {
		t.Fatalf("phase after blur = %v, want idle", h.model.engine.Phase())
	}
	if s := h.model.engine.Session(); s != nil {
		t.Fatalf("session survived blur")
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(keyRunes("T"))
	if h.model.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", h.model.theme.Name)
	}
	if got := prefs.Load(h.model.prefsPath); got.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", got.Theme)
	}
}

func TestModel_FirstRunHelpDismissedAndRemembered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{PrefsPath: path, Prefs: prefs.Default()})
	m, _ = step(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	if !strings.Contains(m.View(), "How to swipe") {
		t.Fatalf("first run should open the help overlay")
	}
	m, _ = step(m, keyRunes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
	if !prefs.Load(path).SeenHelp {
		t.Fatalf("closing help did not persist seen_help")
	}
}

func TestModel_FrameLoopStopsWhenIdle(t *testing.T) {
	h := newHarness(t, fourCards())
	h.send(keyType(tea.KeyRight))
	if !h.model.framing {
		t.Fatalf("fling did not start frames")
	}
	h.clock.advance(time.Second)
	if cmd := h.send(frameMsg(h.clock.now())); cmd != nil {
		t.Fatalf("frame loop continued after the animation finished")
	}
	if h.model.framing {
		t.Fatalf("framing flag still set")
	}
}
