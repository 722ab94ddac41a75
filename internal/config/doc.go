// Package config loads, normalizes, and validates bt configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the few
// knobs the CLI needs: the adapter name, the default scan duration, the
// state/log directories, and logging options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
