package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/deck"
	"github.com/five82/swipedeck/internal/effects"
	"github.com/five82/swipedeck/internal/feedback"
	"github.com/five82/swipedeck/internal/gesture"
	"github.com/five82/swipedeck/internal/prefs"
	"github.com/five82/swipedeck/internal/scratch"
)

// Fetcher supplies the session's cards. It does not fail; an unusable source
// yields a fallback sequence.
type Fetcher interface {
	Fetch(ctx context.Context) card.Sequence
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Cards     Fetcher
	Deck      *deck.State
	Engine    *gesture.Engine
	Haptics   feedback.Haptics
	Particles *effects.Field
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	cards     Fetcher
	deck      *deck.State
	engine    *gesture.Engine
	binding   *gesture.Binding
	haptics   feedback.Haptics
	particles *effects.Field
	logger    *slog.Logger
	prefs     prefs.Prefs
	prefsPath string
	now       func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	loaded   bool
	showHelp bool
	status   string

	// Stack state
	poses      []gesture.Pose
	faces      map[int]*faceState
	scratching bool
	framing    bool
	lastX      float64
	lastY      float64
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	haptics := opts.Haptics
	if haptics == nil {
		haptics = feedback.Nop{}
	}
	particles := opts.Particles
	if particles == nil {
		particles = effects.NewField(uint64(time.Now().UnixNano()))
	}
	engine := opts.Engine
	if engine == nil {
		engine = gesture.New(gesture.DefaultConfig())
	}
	dk := opts.Deck
	if dk == nil {
		dk = deck.New(deck.DefaultDepth, nil, logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	theme := GetTheme(opts.Prefs.Theme)
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:       ctx,
		cards:     opts.Cards,
		deck:      dk,
		engine:    engine,
		haptics:   haptics,
		particles: particles,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		now:       now,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		showHelp:  !opts.Prefs.SeenHelp,
		faces:     make(map[int]*faceState),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCardsCmd(m.ctx, m.cards))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(tea.MouseEvent(msg))

	case tea.BlurMsg:
		// Losing focus mid-drag resolves the gesture where the pointer was.
		return m.pointer(gesture.EventCancel, m.lastX, m.lastY)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cardsMsg:
		m.loadCards(card.Sequence(msg))
		return m, nil

	case frameMsg:
		return m.handleFrame()

	case settleMsg:
		return m.handleSettle(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderHeader() + "\n" + m.renderStage() + "\n" + m.renderFooter()
}

// renderStage draws whatever belongs between header and footer.
func (m Model) renderStage() string {
	st := newStage(m.width, m.height)
	bg := parseColor(m.theme.Background, black)
	if !m.loaded {
		return m.placeInStage(st, m.spinner.View()+" Loading cards…")
	}
	if m.deck.Empty() {
		return m.renderEmpty(st)
	}

	cv := newCanvas(m.width, m.height, bg)
	drawStack(cv, st, m.deck.Window(), m.poses, m.faces, m.theme)
	drawParticles(cv, m.particles.Particles(), m.now(), parseColor(m.theme.Text, black))

	lines := strings.Split(cv.Render(), "\n")
	return strings.Join(lines[st.area.y:st.area.y+st.area.h], "\n")
}

func (m Model) renderEmpty(st stage) string {
	styles := m.theme.Styles()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 3).
		Render(styles.Text.Bold(true).Render("No cards to show") + "\n\n" +
			styles.MutedText.Render("Add cards to the collection or set\nstore.fallback_file in config.toml."))
	return m.placeInStage(st, box)
}

func (m Model) placeInStage(st stage, content string) string {
	return lipgloss.Place(st.area.w, st.area.h, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.closeHelp()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.fling(-1)
	case key.Matches(msg, m.keys.Next):
		return m.fling(1)
	case key.Matches(msg, m.keys.Flip):
		cmd := m.flipTop()
		return m, cmd
	case key.Matches(msg, m.keys.Reveal):
		cmd := m.revealTop()
		return m, cmd
	}
	return m, nil
}

func (m *Model) closeHelp() {
	m.showHelp = false
	if m.prefs.SeenHelp {
		return
	}
	m.prefs.SeenHelp = true
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.prefs.Theme = m.theme.Name
	m.status = "theme: " + m.theme.Name
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
}

// handleMouse maps terminal mouse events onto the gesture engine. The left
// button swipes; the right button scratches.
func (m Model) handleMouse(ev tea.MouseEvent) (tea.Model, tea.Cmd) {
	if !m.loaded || m.showHelp {
		return m, nil
	}
	x, y := float64(ev.X), float64(ev.Y)
	switch ev.Action {
	case tea.MouseActionPress:
		switch ev.Button {
		case tea.MouseButtonLeft:
			if !m.hitTop(ev.X, ev.Y) {
				return m, nil
			}
			return m.pointer(gesture.EventDown, x, y)
		case tea.MouseButtonRight:
			if !m.canScratch() {
				return m, nil
			}
			m.scratching = true
			cmd := m.scratchAt(ev.X, ev.Y)
			return m, cmd
		}
	case tea.MouseActionMotion:
		if m.scratching {
			cmd := m.scratchAt(ev.X, ev.Y)
			return m, cmd
		}
		return m.pointer(gesture.EventMove, x, y)
	case tea.MouseActionRelease:
		if m.scratching {
			m.scratching = false
			return m, nil
		}
		return m.pointer(gesture.EventUp, x, y)
	}
	return m, nil
}

// pointer feeds one event to the live binding and reacts to its result.
func (m Model) pointer(kind gesture.EventKind, x, y float64) (tea.Model, tea.Cmd) {
	m.lastX, m.lastY = x, y
	if m.binding == nil {
		return m, nil
	}
	now := m.now()
	res, err := m.binding.Handle(gesture.Event{Kind: kind, X: x, Y: y, Primary: true, At: now})
	if err != nil {
		m.logger.Debug("pointer event dropped", "error", err)
		return m, nil
	}
	m.poses = m.engine.Frame(now)
	cmd := m.handleResult(res)
	return m, cmd
}

func (m Model) fling(dir int) (tea.Model, tea.Cmd) {
	if m.binding == nil {
		return m, nil
	}
	res, err := m.binding.Fling(dir, m.now())
	if err != nil {
		m.logger.Debug("fling dropped", "error", err)
		return m, nil
	}
	cmd := m.handleResult(res)
	return m, cmd
}

// handleResult turns a gesture outcome into feedback and follow-up commands.
func (m *Model) handleResult(res gesture.Result) tea.Cmd {
	if res.Outcome == gesture.OutcomeNone {
		return nil
	}
	m.logger.Debug("gesture resolved",
		"outcome", res.Outcome.String(),
		"dx", res.Session.DX,
		"shakes", res.Session.ShakeCount,
		"tap", res.Tap,
		"double_tap", res.DoubleTap)

	var cmds []tea.Cmd
	switch res.Outcome {
	case gesture.OutcomeAdvance:
		m.haptics.Vibrate(feedback.PatternAdvance)
		cmds = append(cmds, settleCmd(m.binding.ID(), res.Settle))
	case gesture.OutcomeSkip:
		m.haptics.Vibrate(feedback.PatternSuccess)
		cmds = append(cmds, settleCmd(m.binding.ID(), res.Settle))
	case gesture.OutcomeCancel:
		if res.DoubleTap {
			cmds = append(cmds, m.flipTop())
		}
	}
	cmds = append(cmds, m.startFrames())
	return tea.Batch(cmds...)
}

// handleSettle advances the deck once the exit animation of the binding that
// scheduled it has played.
func (m Model) handleSettle(msg settleMsg) (tea.Model, tea.Cmd) {
	if m.binding == nil || m.binding.ID() != msg.binding {
		return m, nil
	}
	if !m.binding.Settle() {
		return m, nil
	}
	if top, ok := m.topCard(); ok {
		delete(m.faces, top.ID)
	}
	m.deck.Advance(m.ctx)
	m.status = ""
	m.rebind()
	return m, nil
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	now := m.now()
	m.particles.Step(now)
	m.poses = m.engine.Frame(now)
	if m.engine.Animating(now) || m.particles.Active() {
		return m, frameCmd()
	}
	m.framing = false
	return m, nil
}

// startFrames begins the frame loop unless it is already running.
func (m *Model) startFrames() tea.Cmd {
	if m.framing {
		return nil
	}
	m.framing = true
	return frameCmd()
}

func (m *Model) loadCards(seq card.Sequence) {
	m.deck.Load(seq)
	m.loaded = true
	m.logger.Info("deck ready", "cards", m.deck.Len(), "index", m.deck.Index())
	m.rebind()
}

// rebind tears down the current input binding and attaches a new one for the
// freshly derived window. An empty deck gets no binding.
func (m *Model) rebind() {
	if m.binding != nil {
		m.binding.Detach()
		m.binding = nil
	}
	m.scratching = false
	window := m.deck.Window()
	if len(window) == 0 {
		m.poses = nil
		return
	}
	b, err := m.engine.Attach(len(window))
	if err != nil {
		m.logger.Error("attach gesture binding", "error", err)
		return
	}
	m.binding = b
	m.poses = m.engine.Frame(m.now())
	m.prepareTop()
}

func (m *Model) resize() {
	st := newStage(m.width, m.height)
	m.engine.Resize(st.area.w, st.area.h)
	m.particles.Resize(m.width, m.height)
	m.prepareTop()
}

// prepareTop gives a scratch card on top its surface once the layout is known.
func (m *Model) prepareTop() {
	top, ok := m.topCard()
	if !ok || !m.ready || top.Kind() != card.KindScratch {
		return
	}
	st := m.faces[top.ID]
	if st == nil {
		st = &faceState{}
		m.faces[top.ID] = st
	}
	if st.surface != nil {
		return
	}
	body := bodyRect(newStage(m.width, m.height), top, gesture.Identity)
	st.surface = scratch.New(body.w, body.h, scratch.DefaultThreshold)
}

func (m Model) topCard() (card.Card, bool) {
	window := m.deck.Window()
	if len(window) == 0 {
		return card.Card{}, false
	}
	return window[0], true
}

// hitTop reports whether (x,y) lies on the top card as currently drawn.
func (m Model) hitTop(x, y int) bool {
	if len(m.poses) == 0 {
		return false
	}
	return newStage(m.width, m.height).cardRect(m.poses[0]).contains(x, y)
}

func (m Model) canScratch() bool {
	top, ok := m.topCard()
	if !ok || top.Kind() != card.KindScratch || !m.binding.Live() {
		return false
	}
	st := m.faces[top.ID]
	return m.engine.Phase() == gesture.PhaseIdle && st != nil && st.surface != nil
}

// scratchAt uncovers the scratch surface under (x,y).
func (m *Model) scratchAt(x, y int) tea.Cmd {
	top, ok := m.topCard()
	if !ok {
		return nil
	}
	st := m.faces[top.ID]
	if st == nil || st.surface == nil {
		return nil
	}
	body := bodyRect(newStage(m.width, m.height), top, gesture.Identity)
	if body.w == 0 || body.h == 0 || !body.contains(x, y) {
		return nil
	}
	sw, sh := st.surface.Size()
	if st.surface.Scratch((x-body.x)*sw/body.w, (y-body.y)*sh/body.h, scratchRadius) {
		return m.onRevealed(top)
	}
	return nil
}

func (m *Model) revealTop() tea.Cmd {
	if !m.canScratch() {
		return nil
	}
	top, _ := m.topCard()
	if m.faces[top.ID].surface.Reveal() {
		return m.onRevealed(top)
	}
	return nil
}

func (m *Model) onRevealed(c card.Card) tea.Cmd {
	m.haptics.Vibrate(feedback.PatternSuccess)
	m.status = "revealed!"
	m.logger.Debug("scratch revealed", "card", c.ID)
	return m.explode(c)
}

// flipTop turns a flip card over. Special cards burst when their back shows.
func (m *Model) flipTop() tea.Cmd {
	top, ok := m.topCard()
	if !ok || top.Kind() != card.KindFlip {
		return nil
	}
	st := m.faces[top.ID]
	if st == nil {
		st = &faceState{}
		m.faces[top.ID] = st
	}
	st.flipped = !st.flipped
	if st.flipped {
		return m.explode(top)
	}
	return nil
}

func (m *Model) explode(c card.Card) tea.Cmd {
	if !c.IsSpecial {
		return nil
	}
	var p feedback.Particles = m.particles
	p.TriggerParticles(c.Explosion())
	return m.startFrames()
}

// Messages

type cardsMsg card.Sequence

type frameMsg time.Time

type settleMsg struct {
	binding uint64
}

// Commands

func fetchCardsCmd(ctx context.Context, f Fetcher) tea.Cmd {
	return func() tea.Msg {
		if f == nil {
			return cardsMsg(card.Sequence{})
		}
		return cardsMsg(f.Fetch(ctx))
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func settleCmd(binding uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return settleMsg{binding: binding}
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
