package pkgconfig

import "time"

// Config reads configuration values by dotted key.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetDuration(key string) time.Duration
	Close() error
}
