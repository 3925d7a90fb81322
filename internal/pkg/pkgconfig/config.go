package pkgconfig

import "time"

// Config is the read-only view of configuration used by the application.
type Config interface {
	GetInt(key string) int64
	GetFloat(key string) float64
	GetString(key string) string
	GetDuration(key string) time.Duration
	// Unmarshal decodes the subtree at key into out (a pointer).
	Unmarshal(key string, out any) error
	Close() error
}
