package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"baldarules/internal/frame"
	"baldarules/internal/types"
)

type contextKey string

// Config holds settings resolved from the environment and flags.
type Config struct {
	OutputDir      string
	FontPath       string
	Rules          []string // empty means every rule
	Workers        int
	Serve          bool
	SkipGenerate   bool
	Port           string
	IsProduction   bool
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	DebugRender    bool
}

// App is the generator plus the state the preview server reads.
type App struct {
	Config

	Fonts     *frame.Fonts
	StartTime time.Time

	// GenerateMutex serializes generation runs.
	GenerateMutex sync.Mutex

	manifest      *types.Manifest
	ManifestMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// newApp returns an App for cfg drawing with fonts.
func newApp(cfg Config, fonts *frame.Fonts) *App {
	return &App{
		Config:     cfg,
		Fonts:      fonts,
		StartTime:  time.Now(),
		LimiterMap: make(map[string]*rate.Limiter),
	}
}

// Manifest returns the manifest of the last completed run, or nil.
func (app *App) Manifest() *types.Manifest {
	app.ManifestMutex.RLock()
	defer app.ManifestMutex.RUnlock()
	return app.manifest
}

// setManifest swaps in the manifest of a completed run.
func (app *App) setManifest(m *types.Manifest) {
	app.ManifestMutex.Lock()
	app.manifest = m
	app.ManifestMutex.Unlock()
}
