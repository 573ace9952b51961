// Package config loads, normalizes, and validates setscan configuration.
//
// Configuration is TOML, resolved from an explicit path, then
// ~/.config/setscan/config.toml, then ./setscan.toml. Missing files fall
// back to defaults so read-only commands work without setup. All path
// fields are tilde-expanded and made absolute during load.
package config
