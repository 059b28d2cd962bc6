// Package config loads application settings from defaults, an optional
// config.yaml and TASKREPORT_* environment variables, then validates them
// with struct tags before any component is wired.
package config
