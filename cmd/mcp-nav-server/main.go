package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/host"
	"github.com/cexll/sidebar/internal/logging"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/pinned"
)

const serverVersion = "v1.0.0"

// serverConfig is read from the environment
type serverConfig struct {
	Storage      string
	APIURL       string
	Token        string
	SlotDir      string
	ManifestFile string
	OptionsFile  string
	AdminRoute   string
	Roles        []string
	LogLevel     string
}

func loadServerConfig() serverConfig {
	cfg := serverConfig{
		Storage:      os.Getenv("NAV_STORAGE"),
		APIURL:       os.Getenv("NAV_API_URL"),
		Token:        os.Getenv("NAV_TOKEN"),
		SlotDir:      os.Getenv("NAV_SLOT_DIR"),
		ManifestFile: os.Getenv("HOST_MANIFEST_FILE"),
		OptionsFile:  os.Getenv("NAV_OPTIONS_FILE"),
		AdminRoute:   os.Getenv("ADMIN_ROUTE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}
	if cfg.AdminRoute == "" {
		cfg.AdminRoute = "/admin"
	}
	for _, role := range strings.Split(os.Getenv("NAV_ROLES"), ",") {
		if role = strings.TrimSpace(role); role != "" {
			cfg.Roles = append(cfg.Roles, role)
		}
	}
	return cfg
}

// newNavTools builds the tool set and performs the initial load of the pinned set.
// Storage falls back to the options' pinnedStorage when NAV_STORAGE is unset.
// No store is built when the options disable pinning.
func newNavTools(ctx context.Context, cfg serverConfig, logger *zap.Logger) (*navTools, error) {
	opts, err := config.LoadOptions(cfg.OptionsFile)
	if err != nil {
		return nil, err
	}
	resolved := opts.Resolve()

	var manifest *host.Manifest
	if cfg.ManifestFile != "" {
		if manifest, err = host.LoadManifest(cfg.ManifestFile); err != nil {
			return nil, err
		}
	}

	tools := &navTools{
		manifest:   manifest,
		options:    resolved,
		adminRoute: cfg.AdminRoute,
		roles:      cfg.Roles,
		logger:     logger,
	}
	if !resolved.EnablePinning {
		return tools, nil
	}

	storage := cfg.Storage
	if storage == "" {
		storage = string(resolved.PinnedStorage)
	}
	backend, err := pinned.NewBackend(pinned.BackendConfig{
		Storage: storage,
		BaseURL: cfg.APIURL,
		Token:   cfg.Token,
		SlotDir: cfg.SlotDir,
	})
	if err != nil {
		return nil, err
	}

	tools.store = pinned.New(backend,
		pinned.WithLogger(logger.Named("pinned")),
		pinned.WithOnChange(func(item nav.PinnedItem, action pinned.Action) {
			logger.Info("[MCP Nav Server] pinned set changed",
				zap.String("action", string(action)),
				zap.String("slug", item.Slug),
				zap.String("type", string(item.Type)),
			)
		}),
	)
	if err := tools.store.Load(ctx); err != nil {
		// fail open: the store is ready with an empty set
		logger.Warn("[MCP Nav Server] initial load failed", zap.Error(err))
	}
	return tools, nil
}

func newServer(tools *navTools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "nav-sidebar-server",
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_navigation",
		Description: "List the assembled admin sidebar: ordered groups, links, icons, badges and pinned items",
	}, tools.HandleListNavigation)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_pinned",
		Description: "List the pinned navigation items in order",
	}, tools.HandleListPinned)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pin_item",
		Description: "Pin a collection, global or custom link to the quick access list",
	}, tools.HandlePinItem)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "unpin_item",
		Description: "Remove an item from the quick access list",
	}, tools.HandleUnpinItem)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reorder_pinned",
		Description: "Replace the pinned list with the given order (duplicates are dropped)",
	}, tools.HandleReorderPinned)
	return server
}

func main() {
	_ = godotenv.Load()
	cfg := loadServerConfig()

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("[MCP Nav Server] %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 1. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("[MCP Nav Server] Received shutdown signal")
		cancel()
	}()

	// 2. Build tools over the configured pinned store
	tools, err := newNavTools(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("[MCP Nav Server] invalid configuration", zap.Error(err))
	}
	logger.Info(fmt.Sprintf("[MCP Nav Server] Starting nav sidebar MCP server %s", serverVersion),
		zap.Bool("pinning", tools.store != nil),
		zap.Int("pinned", len(tools.pinnedItems())),
	)

	// 3. Start server with stdio transport
	server := newServer(tools)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal("[MCP Nav Server] Server error", zap.Error(err))
	}
	logger.Info("[MCP Nav Server] Server stopped gracefully")
}
