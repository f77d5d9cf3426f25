// Package config loads the swipedeck TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/swipedeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	[store]
//	project_id = "my-project"
//	api_key = "AIza..."
//	database = "(default)"
//	collection = "cards"
//	base_url = "https://firestore.googleapis.com"
//	timeout = "5s"
//	fallback_file = "~/cards.yaml"
//
//	[deck]
//	depth = 4
//
//	[gesture]
//	rotation_factor = 0.05 # 0 disables rotation
//	release_fraction = 0.25
//	shake_min_stroke = 3
//	shake_trigger = 5
//	tap_slop = 1
//	double_tap_window = "400ms"
//	advance_settle = "300ms"
//	skip_settle = "600ms"
//	return_duration = "300ms"
//
//	[progress]
//	path = "~/.local/share/swipedeck/progress.db"
//
//	[log]
//	level = "info"
//	file = "~/.local/state/swipedeck/swipedeck.log"
//
//	[feedback]
//	haptics = "off"  # or "log"
//
// A store without project_id or with an empty or placeholder api_key is
// treated as unconfigured and the local fallback deck is shown.
//
// # Error Handling
//
// Load returns errors for:
//
//   - Invalid file paths (path resolution failures)
//   - File read errors other than "not exist"
//   - TOML parse errors ("parse config")
//   - Unparseable durations, log levels or haptics modes
//
// A missing config file is NOT an error.
//
// # Path Expansion
//
// Paths starting with ~ expand to the user's home directory and are made
// absolute. The progress path ":memory:" is passed through unchanged.
package config
