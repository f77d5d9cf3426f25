// Package card defines the card entity and the ordered, deduplicated sequence
// the rest of swipedeck navigates.
package card

import (
	"sort"
	"strings"
)

// Card is a single flash card. Cards are immutable once loaded.
type Card struct {
	ID              int    `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Text            string `json:"text" yaml:"text"`
	Image           string `json:"image" yaml:"image"`
	FlipText        string `json:"flipText,omitempty" yaml:"flipText,omitempty"`
	IsFlip          bool   `json:"isFlip" yaml:"isFlip"`
	IsScratch       bool   `json:"isScratch" yaml:"isScratch"`
	IsSpecial       bool   `json:"isSpecial" yaml:"isSpecial"`
	ExplosionEmojis string `json:"explosionEmojis,omitempty" yaml:"explosionEmojis,omitempty"`
	BgColor         string `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
}

// Kind selects how a card is rendered.
type Kind int

const (
	KindPlain Kind = iota
	KindFlip
	KindScratch
)

func (k Kind) String() string {
	switch k {
	case KindFlip:
		return "flip"
	case KindScratch:
		return "scratch"
	default:
		return "plain"
	}
}

// Kind derives the render variant from the card flags. A card flagged as both
// scratch and flip is a scratch card.
func (c Card) Kind() Kind {
	switch {
	case c.IsScratch:
		return KindScratch
	case c.IsFlip:
		return KindFlip
	default:
		return KindPlain
	}
}

// defaultExplosion is used for special cards without their own emoji set.
const defaultExplosion = "❤️💖✨"

// Explosion returns the particle markup for a special card.
func (c Card) Explosion() string {
	if s := strings.TrimSpace(c.ExplosionEmojis); s != "" {
		return s
	}
	return defaultExplosion
}

// Sequence is an ordered, 0-indexed list of cards with unique ids.
type Sequence struct {
	cards []Card
}

// NewSequence sorts cards ascending by id and drops later duplicates of an id.
func NewSequence(cards []Card) Sequence {
	if len(cards) == 0 {
		return Sequence{}
	}
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out := sorted[:0]
	seen := make(map[int]struct{}, len(sorted))
	for _, c := range sorted {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return Sequence{cards: out}
}

// Len returns the number of cards.
func (s Sequence) Len() int { return len(s.cards) }

// Empty reports whether the sequence holds no cards.
func (s Sequence) Empty() bool { return len(s.cards) == 0 }

// At returns the card at position i. It panics when i is out of range.
func (s Sequence) At(i int) Card { return s.cards[i] }

// Cards returns a copy of the underlying cards.
func (s Sequence) Cards() []Card {
	if len(s.cards) == 0 {
		return nil
	}
	dup := make([]Card, len(s.cards))
	copy(dup, s.cards)
	return dup
}
