package ui

import (
	"strings"
	"testing"

	"github.com/five82/swipedeck/internal/gesture"
)

func TestNewStage_SizesCard(t *testing.T) {
	st := newStage(80, 24)
	if st.area != (rect{x: 0, y: 1, w: 80, h: 22}) {
		t.Fatalf("area = %+v", st.area)
	}
	if st.cardW != 48 || st.cardH != 18 {
		t.Fatalf("card = %dx%d, want 48x18", st.cardW, st.cardH)
	}

	tiny := newStage(10, 5)
	if tiny.cardW != 10 || tiny.cardH != 3 {
		t.Fatalf("tiny card = %dx%d, want it clipped to the 10x3 stage", tiny.cardW, tiny.cardH)
	}
}

func TestCardRect_FollowsPose(t *testing.T) {
	st := newStage(80, 24)
	r := st.cardRect(gesture.Identity)
	if r != (rect{x: 16, y: 3, w: 48, h: 18}) {
		t.Fatalf("identity rect = %+v", r)
	}
	if !r.contains(40, 12) || r.contains(15, 12) || r.contains(40, 21) {
		t.Fatalf("contains is off for %+v", r)
	}

	moved := gesture.Identity
	moved.X = 10
	moved.Scale = 0.5
	r = st.cardRect(moved)
	if r != (rect{x: 38, y: 8, w: 24, h: 9}) {
		t.Fatalf("moved rect = %+v", r)
	}
}

func TestShear(t *testing.T) {
	if shear(0, 10) != nil {
		t.Fatalf("zero rotation should not shear")
	}
	f := shear(20, 11)
	if f(5) != 0 {
		t.Fatalf("middle row shifted by %d", f(5))
	}
	if f(0) <= 0 || f(10) >= 0 {
		t.Fatalf("positive rotation: top = %d, bottom = %d", f(0), f(10))
	}
	if f(0) != -f(10) {
		t.Fatalf("shear not symmetric: %d vs %d", f(0), f(10))
	}
	capped := shear(89, 3)
	if capped(0) != shear(maxShear, 3)(0) {
		t.Fatalf("rotation past maxShear not capped")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"  padded  ", 6, "padded"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := wrap("Glisse la carte vers la droite", 12)
	want := []string{"Glisse la", "carte vers", "la droite"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrap = %q, want %q", got, want)
	}

	got = wrap("abcdefghij xy", 4)
	want = []string{"abcd", "efgh", "ij", "xy"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("hard wrap = %q, want %q", got, want)
	}

	got = wrap("one\n\ntwo", 10)
	if len(got) != 3 || got[1] != "" {
		t.Fatalf("paragraphs = %q, want blank middle line", got)
	}
	if wrap("x", 0) != nil {
		t.Fatalf("zero width should wrap to nothing")
	}
}

func TestImageLabel(t *testing.T) {
	if got := imageLabel("https://www.example.com/a.png"); got != "▣ example.com" {
		t.Fatalf("imageLabel = %q", got)
	}
	if got := imageLabel("not a url"); got != "▣ image" {
		t.Fatalf("imageLabel(bad) = %q", got)
	}
	if got := imageLabel(""); got != "" {
		t.Fatalf("imageLabel(empty) = %q", got)
	}
}
