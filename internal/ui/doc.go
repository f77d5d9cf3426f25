// Package ui renders the swipe deck as a Bubble Tea program.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns no card logic of its own: the deck
// package decides which cards are visible, the gesture package turns pointer
// events into poses and outcomes, and the scratch and effects packages hold
// per-card surfaces and particles. Model glues them to terminal input and
// draws the result every frame.
//
// # Rendering
//
// Terminal cells stand in for pixels. Each card is painted onto its own
// canvas, then blitted onto the screen canvas back to front. Rotation is drawn
// as a per-row horizontal shear, opacity and brightness are blended with
// go-colorful, and wide glyphs (emoji, CJK) take two cells.
//
// # Event Flow
//
//  1. Init starts the spinner and fetches cards in the background.
//  2. cardsMsg loads the deck and attaches a gesture binding for its window.
//  3. Mouse and key input go through the binding; an advance or skip schedules
//     a settleMsg after its exit animation.
//  4. settleMsg advances the deck, detaches the old binding and attaches a new
//     one. A settle from a detached binding is ignored.
//  5. frameMsg ticks while poses or particles are still moving.
//
// # Key Bindings
//
//   - ←/h, →/l: Fling the top card out
//   - Space or f: Flip a flip card
//   - r: Reveal a scratch card
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
