package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/swipedeck/internal/cardstore"
	"github.com/five82/swipedeck/internal/config"
	"github.com/five82/swipedeck/internal/deck"
	"github.com/five82/swipedeck/internal/effects"
	"github.com/five82/swipedeck/internal/feedback"
	"github.com/five82/swipedeck/internal/gesture"
	"github.com/five82/swipedeck/internal/logging"
	"github.com/five82/swipedeck/internal/prefs"
	"github.com/five82/swipedeck/internal/progress"
	"github.com/five82/swipedeck/internal/ui"
)

// Options configure the swipedeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/swipedeck/prefs.toml
}

// Run boots the deck viewer until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logFile.Close()

	s, err := newSession(ctx, cfg, opts.PrefsPath, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("swipedeck starting", "depth", cfg.DeckDepth, "collection", cfg.Collection)
	err = ui.Run(s.ui)
	logger.Info("swipedeck stopped", "index", s.deck.Index())
	return err
}

// session holds everything one run of the viewer owns.
type session struct {
	ui      ui.Options
	deck    *deck.State
	closers []io.Closer
}

// newSession wires configuration into the collaborators the UI needs. Only a
// malformed store configuration is fatal; a progress database that cannot be
// opened just disables persistence.
func newSession(ctx context.Context, cfg config.Config, prefsPath string, logger *slog.Logger) (*session, error) {
	s := &session{}

	var persister deck.Persister
	store, err := progress.Open(cfg.ProgressPath)
	if err != nil {
		logger.Warn("progress disabled", "path", cfg.ProgressPath, "error", err)
	} else {
		persister = store
		s.closers = append(s.closers, store)
	}

	s.deck = deck.New(cfg.DeckDepth, persister, logger)
	s.deck.Restore(ctx)

	remote, err := cardstore.ForOptions(cfg.Store, cfg.Collection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("init card store: %w", err)
	}
	cards := cardstore.New(remote, cfg.FallbackFile, logger)

	s.ui = ui.Options{
		Context:   ctx,
		Cards:     cards,
		Deck:      s.deck,
		Engine:    gesture.New(cfg.Gesture),
		Haptics:   feedback.ForMode(cfg.Haptics, logger),
		Particles: effects.NewField(uint64(time.Now().UnixNano())),
		Logger:    logger,
		Prefs:     prefs.Load(prefsPath),
		PrefsPath: prefsPath,
	}
	return s, nil
}

// Close releases the session's resources.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
	s.closers = nil
}
