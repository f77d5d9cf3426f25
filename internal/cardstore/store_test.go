package cardstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/firestore"
)

type stubSource struct {
	cards []card.Card
	err   error
	calls int
}

func (s *stubSource) Fetch(context.Context) ([]card.Card, error) {
	s.calls++
	return s.cards, s.err
}

type stubQuerier struct {
	docs []firestore.Document
	err  error
	got  firestore.RunQueryRequest
}

func (q *stubQuerier) RunQuery(_ context.Context, req firestore.RunQueryRequest) ([]firestore.Document, error) {
	q.got = req
	return q.docs, q.err
}

func ids(seq card.Sequence) []int {
	out := make([]int, 0, seq.Len())
	for _, c := range seq.Cards() {
		out = append(out, c.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDemo_HasTwoCards(t *testing.T) {
	demo := Demo()
	if len(demo) != 2 || demo[0].ID != 1 || demo[1].ID != 2 {
		t.Fatalf("Demo() = %+v, want ids [1 2]", demo)
	}
	if demo[1].Title != "Swipe !" {
		t.Fatalf("second title = %q, want \"Swipe !\"", demo[1].Title)
	}
}

func TestFetch_UsesRemoteWhenNonEmpty(t *testing.T) {
	src := &stubSource{cards: []card.Card{{ID: 3}, {ID: 1}, {ID: 2}}}
	got := New(src, "", nil).Fetch(context.Background())
	if want := []int{1, 2, 3}; !equalInts(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
}

func TestFetch_FallsBackToDemo(t *testing.T) {
	cases := map[string]Source{
		"unconfigured": nil,
		"error":        &stubSource{err: errors.New("boom")},
		"empty":        &stubSource{},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			got := New(src, "", nil).Fetch(context.Background())
			if want := []int{1, 2}; !equalInts(ids(got), want) {
				t.Fatalf("ids = %v, want demo %v", ids(got), want)
			}
		})
	}
}

func TestFetch_PrefersFallbackFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	data := []byte("cards:\n  - id: 9\n    title: Neuf\n    isScratch: true\n  - id: 4\n    title: Quatre\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write cards: %v", err)
	}
	got := New(&stubSource{err: errors.New("offline")}, path, nil).Fetch(context.Background())
	if want := []int{4, 9}; !equalInts(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
	if !got.At(1).IsScratch {
		t.Fatalf("isScratch flag lost while parsing fallback file")
	}
}

func TestFetch_BadFallbackFileUsesDemo(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("cards: [\n"), 0o644); err != nil {
		t.Fatalf("write cards: %v", err)
	}
	for _, path := range []string{broken, filepath.Join(dir, "missing.yaml")} {
		got := New(nil, path, nil).Fetch(context.Background())
		if want := []int{1, 2}; !equalInts(ids(got), want) {
			t.Fatalf("%s: ids = %v, want demo %v", path, ids(got), want)
		}
	}
}

func TestRemote_QueriesCollectionOrderedByID(t *testing.T) {
	one, two := "1", "2"
	title := "Salut"
	q := &stubQuerier{docs: []firestore.Document{
		{Fields: map[string]firestore.Value{"id": {IntegerValue: &one}, "title": {StringValue: &title}}},
		{Fields: map[string]firestore.Value{"id": {IntegerValue: &two}}},
	}}
	cards, err := NewRemote(q, "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(cards) != 2 || cards[0].Title != "Salut" {
		t.Fatalf("cards = %+v", cards)
	}
	if got := q.got.StructuredQuery.From[0].CollectionID; got != DefaultCollection {
		t.Fatalf("collection = %q, want %q", got, DefaultCollection)
	}
}

func TestRemote_DecodeFailureFailsFetch(t *testing.T) {
	q := &stubQuerier{docs: []firestore.Document{{Name: "bad", Fields: map[string]firestore.Value{}}}}
	if _, err := NewRemote(q, "cards").Fetch(context.Background()); err == nil {
		t.Fatalf("Fetch returned nil error for document without id")
	}
}

func TestForOptions_Unconfigured(t *testing.T) {
	src, err := ForOptions(firestore.Options{ProjectID: "p", APIKey: firestore.PlaceholderAPIKey}, "cards")
	if err != nil {
		t.Fatalf("ForOptions returned error: %v", err)
	}
	if src != nil {
		t.Fatalf("ForOptions returned %T, want nil", src)
	}
	src, err = ForOptions(firestore.Options{ProjectID: "p", APIKey: "real"}, "cards")
	if err != nil || src == nil {
		t.Fatalf("ForOptions = (%v, %v), want remote source", src, err)
	}
}

func TestFetch_EmptyFallbackFileIsEmptyDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")
	if err := os.WriteFile(path, []byte("cards: []\n"), 0o644); err != nil {
		t.Fatalf("write cards: %v", err)
	}
	got := New(&stubSource{err: errors.New("offline")}, path, nil).Fetch(context.Background())
	if !got.Empty() {
		t.Fatalf("ids = %v, want an empty deck", ids(got))
	}
}
