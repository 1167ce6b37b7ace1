package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gogpu/gg"
	"github.com/joho/godotenv"

	"baldarules/internal/frame"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logFatal("Invalid configuration: %v", err)
	}
	logInfo("Starting Balda rule generator in %s mode", map[bool]string{true: "production", false: "development"}[cfg.IsProduction])

	if cfg.DebugRender {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		logInfo("Rendering debug logs enabled")
	}

	fonts, fallback := frame.LoadFonts(cfg.FontPath)
	if fallback && cfg.FontPath != "" {
		logWarn("Could not load font %s, using bundled Go fonts", cfg.FontPath)
	}
	logInfo("Using font: %s", fonts.Name)

	app := newApp(cfg, fonts)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SkipGenerate {
		m, err := loadManifest(cfg.OutputDir)
		if err != nil {
			logFatal("Nothing to serve in %s: %v", cfg.OutputDir, err)
		}
		app.setManifest(m)
	} else if _, err := app.generateAll(ctx); err != nil {
		logFatal("Generation failed: %v", err)
	}

	if !cfg.Serve {
		return
	}
	app.startServer(ctx, app.setupRouter())
}

// loadConfig resolves settings from the environment, then lets flags in
// args override them.
func loadConfig(args []string, usage io.Writer) (Config, error) {
	cfg := Config{
		OutputDir:      getEnvString("OUTPUT_DIR", DefaultOutputDir),
		FontPath:       getEnvString("FONT_PATH", ""),
		Rules:          splitList(os.Getenv("RULES")),
		Workers:        getEnvInt("WORKERS", DefaultWorkers),
		Serve:          getEnvBool("SERVE", false),
		SkipGenerate:   getEnvBool("SKIP_GENERATE", false),
		Port:           getEnvString("PORT", DefaultPort),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", DefaultStaticCacheAge),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		DebugRender:    getEnvBool("DEBUG_RENDER", false),
	}

	fs := flag.NewFlagSet("baldarules", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for the generated animations")
	fs.StringVar(&cfg.FontPath, "font", cfg.FontPath, "TrueType font to draw with (bundled Go fonts if empty)")
	rules := fs.String("rules", "", "comma-separated rule names to generate (default all)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "scenarios rendered concurrently")
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "serve a preview gallery after generating")
	fs.BoolVar(&cfg.SkipGenerate, "no-generate", cfg.SkipGenerate, "serve the existing output without generating")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *rules != "" {
		cfg.Rules = splitList(*rules)
	}
	if _, err := selectRules(cfg.Rules); err != nil {
		return cfg, err
	}
	if cfg.Workers < 1 {
		logWarn("WORKERS must be at least 1, got %d", cfg.Workers)
		cfg.Workers = 1
	}
	if cfg.SkipGenerate && !cfg.Serve {
		logWarn("Nothing to do without generating or serving, enabling -serve")
		cfg.Serve = true
	}
	return cfg, nil
}

// setupRouter wires the preview routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestIDMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".gif", ".png"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.Use(app.cacheMiddleware())

	router.GET(RouteHome, app.galleryHandler)
	router.GET(RouteArtifact, app.artifactHandler)
	router.GET(RouteManifest, app.manifestHandler)
	router.POST(RouteRegenerate, app.rateLimitMiddleware(), app.regenerateHandler)
	router.GET(RouteHealth, app.healthHandler)
	return router
}

// startServer serves router until ctx is cancelled, then shuts down
// gracefully.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
