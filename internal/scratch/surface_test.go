package scratch

import "testing"

func TestNew_StartsCovered(t *testing.T) {
	s := New(10, 4, 0)
	if s.Progress() != 0 {
		t.Fatalf("Progress = %v, want 0", s.Progress())
	}
	if !s.Covered(0, 0) || !s.Covered(9, 3) {
		t.Fatalf("corners should start covered")
	}
	if s.Covered(10, 0) || s.Covered(-1, 2) {
		t.Fatalf("out-of-range cells should read as uncovered")
	}
}

func TestScratch_UncoversAndCompletesOnce(t *testing.T) {
	s := New(10, 2, 0.5)
	if s.Scratch(1, 0, 0) {
		t.Fatalf("single cell should not complete")
	}
	if s.Covered(1, 0) {
		t.Fatalf("scratched cell still covered")
	}

	fired := 0
	for x := range 10 {
		if s.Scratch(x, 0, 0) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("completion fired %d times, want 1", fired)
	}
	if !s.Completed() {
		t.Fatalf("Completed() = false")
	}
	if s.Scratch(0, 1, 3) || s.Reveal() {
		t.Fatalf("completion fired again")
	}
}

func TestScratch_RadiusCoversEllipse(t *testing.T) {
	s := New(20, 9, 1)
	s.Scratch(10, 4, 2)
	if s.Covered(10, 4) || s.Covered(14, 4) || s.Covered(10, 6) {
		t.Fatalf("expected centre, horizontal and vertical reach uncovered")
	}
	if !s.Covered(15, 4) || !s.Covered(10, 7) {
		t.Fatalf("cells beyond the radius should stay covered")
	}
}

func TestReveal(t *testing.T) {
	s := New(3, 3, 0.9)
	if !s.Reveal() {
		t.Fatalf("Reveal() = false, want true")
	}
	if s.Progress() != 1 {
		t.Fatalf("Progress = %v, want 1", s.Progress())
	}
}

func TestZeroSizeSurface(t *testing.T) {
	s := New(0, 0, 0)
	if s.Progress() != 1 {
		t.Fatalf("Progress = %v, want 1", s.Progress())
	}
	if s.Scratch(0, 0, 1) {
		t.Fatalf("Scratch on empty surface completed")
	}
	if !s.Reveal() {
		t.Fatalf("Reveal on empty surface should still complete")
	}
}
