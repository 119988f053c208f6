package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/logging"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/pinned"
)

type App struct {
	Storage      string
	SlotDir      string
	APIURL       string
	Token        string
	OptionsFile  string
	ManifestFile string
	AdminRoute   string
	Roles        []string
	LogLevel     string
	PrettyJSON   bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "navctl",
		Short:        "Inspect the admin sidebar and manage pinned items",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Render the sidebar for an editor
  navctl tree --manifest host.yaml --roles editor

  # Pin a collection against the preference API
  navctl pin collection posts --api-url http://localhost:8000 --token "$(navctl token --user u1)"

  # Keep pins in a local slot directory
  navctl --storage local --slot-dir ~/.navctl pin global header
`),
	}

	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("NAV_STORAGE", ""), "Pinned storage (preferences|localStorage), defaults to the options' pinnedStorage")
	cmd.PersistentFlags().StringVar(&app.SlotDir, "slot-dir", envOr("NAV_SLOT_DIR", ""), "Directory holding the local pinned slot")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("NAV_API_URL", "http://localhost:8000"), "Base URL of the preference server")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("NAV_TOKEN", ""), "Bearer token for the preference server")
	cmd.PersistentFlags().StringVar(&app.OptionsFile, "options", envOr("NAV_OPTIONS_FILE", ""), "Plugin options file (YAML)")
	cmd.PersistentFlags().StringVar(&app.ManifestFile, "manifest", envOr("HOST_MANIFEST_FILE", ""), "Host entity manifest (YAML)")
	cmd.PersistentFlags().StringVar(&app.AdminRoute, "admin-route", envOr("ADMIN_ROUTE", "/admin"), "Admin route prefix")
	cmd.PersistentFlags().StringSliceVar(&app.Roles, "roles", splitRoles(os.Getenv("NAV_ROLES")), "Roles of the viewing user (repeatable)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LOG_LEVEL", "error"), "Log level for diagnostics on stderr")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newPinCmd(app))
	cmd.AddCommand(newUnpinCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newReorderCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newTokenCmd(app))

	return cmd
}

// loadOptions reads and resolves the plugin options file
func loadOptions(app *App) (config.Resolved, error) {
	opts, err := config.LoadOptions(app.OptionsFile)
	if err != nil {
		return config.Resolved{}, err
	}
	return opts.Resolve(), nil
}

// openStore builds the pinned store over the configured backend and loads it.
// --storage wins over the options' pinnedStorage. A failed load leaves the
// store empty and is reported on stderr.
func openStore(ctx context.Context, cmd *cobra.Command, app *App, opts config.Resolved) (*pinned.Store, error) {
	if !opts.EnablePinning {
		return nil, pinned.ErrPinningDisabled
	}
	storage := app.Storage
	if storage == "" {
		storage = string(opts.PinnedStorage)
	}
	backend, err := pinned.NewBackend(pinned.BackendConfig{
		Storage: storage,
		BaseURL: app.APIURL,
		Token:   app.Token,
		SlotDir: app.SlotDir,
	})
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(app.LogLevel, "console")
	if err != nil {
		return nil, err
	}

	store := pinned.New(backend, pinned.WithLogger(logger.Named("pinned")))
	if err := store.Load(ctx); err != nil {
		logger.Warn("[navctl] load failed", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return store, nil
}

// parseRef parses "type:slug", e.g. "collection:posts"
func parseRef(ref string) (nav.PinnedItem, error) {
	typ, slug, ok := strings.Cut(ref, ":")
	if !ok || slug == "" {
		return nav.PinnedItem{}, fmt.Errorf("invalid item %q (want type:slug)", ref)
	}
	t, err := nav.ParseEntityType(typ)
	if err != nil {
		return nav.PinnedItem{}, err
	}
	return nav.PinnedItem{Slug: slug, Type: t}, nil
}

func splitRoles(s string) []string {
	var roles []string
	for _, role := range strings.Split(s, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
