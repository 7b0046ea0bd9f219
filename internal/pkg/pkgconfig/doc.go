// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface so it stays easy to test and
// does not care where values come from. The Viper implementation reads a YAML
// file and lets environment variables override any key, with dots replaced by
// underscores (LOG_TYPE overrides log.type).
package pkgconfig
