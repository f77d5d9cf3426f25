// Package cardstore produces the card sequence for a session. Fetch never
// fails: a remote deck is used when one is configured and non-empty, and
// otherwise a local YAML file or the embedded demo deck stands in.
package cardstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/firestore"
)

// DefaultCollection is the remote collection holding the cards.
const DefaultCollection = "cards"

// Source fetches cards from somewhere that can fail.
type Source interface {
	Fetch(ctx context.Context) ([]card.Card, error)
}

// Remote reads cards from a Firestore collection ordered by id.
type Remote struct {
	querier    firestore.Querier
	collection string
}

// Ensure Remote implements Source at compile time.
var _ Source = (*Remote)(nil)

// NewRemote wraps a querier. An empty collection uses DefaultCollection.
func NewRemote(q firestore.Querier, collection string) *Remote {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = DefaultCollection
	}
	return &Remote{querier: q, collection: collection}
}

// Fetch runs the ordered query and decodes every document. One bad document
// fails the whole fetch.
func (r *Remote) Fetch(ctx context.Context) ([]card.Card, error) {
	docs, err := r.querier.RunQuery(ctx, firestore.OrderedByID(r.collection))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.collection, err)
	}
	cards := make([]card.Card, 0, len(docs))
	for _, doc := range docs {
		c, err := firestore.DecodeCard(doc)
		if err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Store resolves the session's cards from a remote source with fallbacks.
type Store struct {
	remote       Source
	fallbackFile string
	logger       *slog.Logger
}

// New builds a Store. A nil remote means no remote deck is configured.
func New(remote Source, fallbackFile string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		remote:       remote,
		fallbackFile: strings.TrimSpace(fallbackFile),
		logger:       logger,
	}
}

// Fetch returns the sequence to show. It does not fail; every problem is
// logged and answered with the fallback deck.
func (s *Store) Fetch(ctx context.Context) card.Sequence {
	if s.remote == nil {
		s.logger.Info("remote deck not configured, using fallback")
		return s.fallback()
	}
	cards, err := s.remote.Fetch(ctx)
	switch {
	case err != nil:
		s.logger.Warn("fetch remote deck", "error", err)
		return s.fallback()
	case len(cards) == 0:
		s.logger.Info("remote deck empty, using fallback")
		return s.fallback()
	}
	seq := card.NewSequence(cards)
	if seq.Len() != len(cards) {
		s.logger.Warn("dropped duplicate card ids", "fetched", len(cards), "kept", seq.Len())
	}
	s.logger.Info("loaded remote deck", "cards", seq.Len())
	return seq
}

func (s *Store) fallback() card.Sequence {
	if s.fallbackFile != "" {
		cards, err := LoadFile(s.fallbackFile)
		switch {
		case err != nil:
			s.logger.Warn("load fallback file", "path", s.fallbackFile, "error", err)
		case len(cards) == 0:
			// An explicitly empty file opts out of the demo deck.
			s.logger.Warn("fallback file has no cards", "path", s.fallbackFile)
			return card.NewSequence(nil)
		default:
			s.logger.Info("loaded fallback file", "path", s.fallbackFile, "cards", len(cards))
			return card.NewSequence(cards)
		}
	}
	return card.NewSequence(Demo())
}

// ForOptions builds the remote source for opts, or nil when opts are not
// configured.
func ForOptions(opts firestore.Options, collection string) (Source, error) {
	client, err := firestore.NewClient(opts)
	if errors.Is(err, firestore.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return NewRemote(client, collection), nil
}
