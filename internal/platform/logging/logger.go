// Package logging defines the structured logging surface the rest of the
// module depends on: leveled Debug/Info/Warn/Error calls with key-value
// pairs, backed by zap.
package logging

// Logger is the structured logging interface every component depends on.
// Key-value pairs follow the zap SugaredLogger convention: alternating
// key, value, key, value...
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	Sync() error
}
