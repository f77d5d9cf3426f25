// Package deck tracks where the reader is in a looping card sequence.
//
// # Overview
//
// State holds the current read index and derives the deck window: the next K
// cards, wrapping around the end of the sequence, that the renderer stacks on
// screen. The window is recomputed from the live sequence and index on every
// call so it can never go stale after an advance.
//
// # Lifecycle
//
//  1. New(depth, persister, logger)
//  2. Restore(ctx) reads the persisted index once
//  3. Load(seq) installs the fetched cards and clamps the index
//  4. Window() / Advance(ctx) for the rest of the session
//
// An index restored from a previous run that is out of range for the freshly
// loaded sequence is reset to 0.
//
// # Empty Decks
//
// With no cards, Window returns nil and Advance is a no-op that reports false.
// Callers check Empty and switch to an empty-state view instead.
//
// # Concurrency
//
// State is not safe for concurrent use. It is owned by the UI goroutine.
package deck
