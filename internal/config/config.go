package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/swipedeck/internal/deck"
	"github.com/five82/swipedeck/internal/firestore"
	"github.com/five82/swipedeck/internal/gesture"
)

// Config is the resolved swipedeck configuration.
type Config struct {
	Store        firestore.Options
	Collection   string
	FallbackFile string

	DeckDepth int
	Gesture   gesture.Config

	ProgressPath string

	LogLevel slog.Level
	LogFile  string

	Haptics string
}

const (
	defaultConfigPath   = "~/.config/swipedeck/config.toml"
	defaultProgressPath = "~/.local/share/swipedeck/progress.db"
	defaultLogFile      = "~/.local/state/swipedeck/swipedeck.log"
	defaultCollection   = "cards"
	defaultTimeout      = 5 * time.Second
	defaultHaptics      = "off"
)

type rawConfig struct {
	Store struct {
		ProjectID    string `toml:"project_id"`
		APIKey       string `toml:"api_key"`
		Database     string `toml:"database"`
		Collection   string `toml:"collection"`
		BaseURL      string `toml:"base_url"`
		Timeout      string `toml:"timeout"`
		FallbackFile string `toml:"fallback_file"`
	} `toml:"store"`
	Deck struct {
		Depth int `toml:"depth"`
	} `toml:"deck"`
	Gesture struct {
		RotationFactor  *float64 `toml:"rotation_factor"`
		ReleaseFraction float64  `toml:"release_fraction"`
		ShakeMinStroke  float64  `toml:"shake_min_stroke"`
		ShakeTrigger    int      `toml:"shake_trigger"`
		TapSlop         float64  `toml:"tap_slop"`
		DoubleTapWindow string   `toml:"double_tap_window"`
		AdvanceSettle   string   `toml:"advance_settle"`
		SkipSettle      string   `toml:"skip_settle"`
		ReturnDuration  string   `toml:"return_duration"`
	} `toml:"gesture"`
	Progress struct {
		Path string `toml:"path"`
	} `toml:"progress"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	Feedback struct {
		Haptics string `toml:"haptics"`
	} `toml:"feedback"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Store: firestore.Options{
			BaseURL:  firestore.DefaultBaseURL,
			Database: firestore.DefaultDatabase,
			Timeout:  defaultTimeout,
		},
		Collection:   defaultCollection,
		DeckDepth:    deck.DefaultDepth,
		Gesture:      gesture.DefaultConfig(),
		ProgressPath: mustExpand(defaultProgressPath),
		LogLevel:     slog.LevelInfo,
		LogFile:      mustExpand(defaultLogFile),
		Haptics:      defaultHaptics,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(raw rawConfig) error {
	s := raw.Store
	c.Store.ProjectID = strings.TrimSpace(s.ProjectID)
	c.Store.APIKey = strings.TrimSpace(s.APIKey)
	c.Store.Database = orDefault(s.Database, firestore.DefaultDatabase)
	c.Store.BaseURL = orDefault(s.BaseURL, firestore.DefaultBaseURL)
	c.Collection = orDefault(s.Collection, defaultCollection)
	if err := parseDuration("store.timeout", s.Timeout, &c.Store.Timeout); err != nil {
		return err
	}
	if f := strings.TrimSpace(s.FallbackFile); f != "" {
		c.FallbackFile = mustExpand(f)
	}

	if raw.Deck.Depth > 0 {
		c.DeckDepth = raw.Deck.Depth
	}

	g := raw.Gesture
	// An explicit zero turns rotation off.
	if g.RotationFactor != nil {
		c.Gesture.RotationFactor = *g.RotationFactor
	}
	if g.ReleaseFraction > 0 && g.ReleaseFraction <= 1 {
		c.Gesture.ReleaseFraction = g.ReleaseFraction
	}
	if g.ShakeMinStroke > 0 {
		c.Gesture.ShakeMinStroke = g.ShakeMinStroke
	}
	if g.ShakeTrigger > 0 {
		c.Gesture.ShakeTrigger = g.ShakeTrigger
	}
	if g.TapSlop > 0 {
		c.Gesture.TapSlop = g.TapSlop
	}
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"gesture.double_tap_window", g.DoubleTapWindow, &c.Gesture.DoubleTapWindow},
		{"gesture.advance_settle", g.AdvanceSettle, &c.Gesture.AdvanceSettle},
		{"gesture.skip_settle", g.SkipSettle, &c.Gesture.SkipSettle},
		{"gesture.return_duration", g.ReturnDuration, &c.Gesture.ReturnDuration},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return err
		}
	}

	c.ProgressPath = mustExpand(orDefault(raw.Progress.Path, defaultProgressPath))
	c.LogFile = mustExpand(orDefault(raw.Log.File, defaultLogFile))
	if lvl := strings.TrimSpace(raw.Log.Level); lvl != "" {
		level, err := ParseLogLevel(lvl)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}

	switch h := strings.ToLower(strings.TrimSpace(raw.Feedback.Haptics)); h {
	case "":
	case "off", "log":
		c.Haptics = h
	default:
		return fmt.Errorf("invalid feedback.haptics %q", raw.Feedback.Haptics)
	}
	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log.level %q", s)
	}
}

// parseDuration leaves dst untouched when raw is blank.
func parseDuration(key, raw string, dst *time.Duration) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("parse %s: duration must be positive", key)
	}
	*dst = d
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == ":memory:" {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
