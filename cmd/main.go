package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/auth"
	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/host"
	"github.com/cexll/sidebar/internal/logging"
	"github.com/cexll/sidebar/internal/preferences"
	"github.com/cexll/sidebar/internal/web"
)

var (
	loadDotEnv         = godotenv.Load
	newLogger          = logging.New
	loadManifest       = host.NewLive
	loadOptions        = config.LoadOptions
	openSQLite         = preferences.OpenSQLite
	defaultListenServe = http.ListenAndServe
)

func main() {
	if err := run(context.Background(), defaultListenServe); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, serve func(string, http.Handler) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := loadOptions(cfg.OptionsFile)
	if err != nil {
		return fmt.Errorf("failed to load nav options: %w", err)
	}
	resolved := opts.Resolve()
	if cfg.DisablePinning {
		resolved.EnablePinning = false
	}

	live, err := loadManifest(cfg.HostManifestFile, logger.Named("host"))
	if err != nil {
		return fmt.Errorf("failed to load host manifest: %w", err)
	}
	manifest := live.Manifest()
	go func() {
		if err := live.Watch(ctx); err != nil {
			logger.Warn("[Sidebar] manifest hot reload disabled", zap.Error(err))
		}
	}()

	logger.Info("[Sidebar] starting server",
		zap.Int("port", cfg.Port),
		zap.String("admin_route", cfg.AdminRoute),
		zap.Int("collections", len(manifest.Collections)),
		zap.Int("globals", len(manifest.Globals)),
		zap.Bool("pinning", resolved.EnablePinning),
		zap.String("pinned_storage", string(resolved.PinnedStorage)),
	)

	// Preference records: SQLite when configured, memory otherwise
	var store preferences.Store
	if cfg.PreferencesDB != "" {
		db, err := openSQLite(ctx, cfg.PreferencesDB)
		if err != nil {
			return fmt.Errorf("failed to open preferences database: %w", err)
		}
		defer db.Close()
		store = db
		logger.Info("[Sidebar] preferences stored in sqlite", zap.String("path", cfg.PreferencesDB))
	} else {
		store = preferences.NewMemoryStore()
		logger.Warn("[Sidebar] PREFERENCES_DB not set, preferences are kept in memory")
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	prefs := preferences.NewService(store, logger.Named("preferences"))
	handler := web.NewHandler(prefs, live, resolved, cfg.AdminRoute, logger.Named("web"))
	r := web.NewRouter(handler, signer.Middleware(web.Unauthorized))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("[Sidebar] listening",
		zap.String("addr", addr),
		zap.String("nav", fmt.Sprintf("http://localhost%s/api/nav", addr)),
		zap.String("health", fmt.Sprintf("http://localhost%s/health", addr)),
	)

	if err := serve(addr, r); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}
