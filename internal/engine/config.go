package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	BaseURL              string        // platform API root, no trailing slash
	FetchTimeout         time.Duration // per-request deadline on plain HTTP calls
	PageWindow           int           // pages probed per parallel window
	MaxPages             int           // hard ceiling on pages probed per subject
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = plain HTTP transport
}

var cfg Config

// Cfg exposes the engine configuration for the extractserver package.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero values get workable defaults so tests can Init with a partial Config.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.PageWindow <= 0 {
		c.PageWindow = 4
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 48
	}
	cfg = c
	Cfg = &cfg
}
