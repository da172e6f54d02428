// Package pagination holds the page/limit parameter handling shared by the records API and
// its clients: query parsing, validation, offset math, metrics and structured logs.
package pagination

// Config holds pagination defaults and limits.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page (typically 20)
	MaxLimit     int // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the defaults used when no environment overrides exist.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}
