// Package app is the composition root of the swipedeck viewer.
//
// # Overview
//
// Run loads configuration, opens the log file and the progress database,
// builds the card store, gesture engine and feedback hooks, and hands them to
// the Bubble Tea UI. It blocks until the user quits or the context ends.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> logging.NewFile()    Log to a file, never the terminal
//	       ├─────> progress.Open()      SQLite key/value store (optional)
//	       ├─────> deck.Restore()       Saved index, clamped once cards load
//	       ├─────> cardstore.New()      Firestore, then fallback file, then demo
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file present but invalid
//   - Log file cannot be opened
//   - Store base_url cannot be parsed
//
// Everything else degrades: an unreachable or empty remote deck falls back to
// local cards, and a progress database that cannot be opened only disables
// resume.
package app
