package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cexll/sidebar/internal/host"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/preferences"
	"github.com/cexll/sidebar/internal/view"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorAccent lipgloss.TerminalColor = ac("27", "62")

	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	activeStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	pinMarkStyle = lipgloss.NewStyle().Foreground(ac("166", "214"))

	// hex values mirror the fallbacks of the default badge CSS variables
	badgePalette = map[nav.BadgeColor][2]string{
		nav.BadgeRed:    {"#ef4444", "#ffffff"},
		nav.BadgeYellow: {"#eab308", "#000000"},
		nav.BadgeBlue:   {"#3b82f6", "#ffffff"},
		nav.BadgeGreen:  {"#22c55e", "#ffffff"},
		nav.BadgeOrange: {"#f97316", "#ffffff"},
		nav.BadgeGray:   {"#6b7280", "#ffffff"},
	}
)

func badgeStyle(color nav.BadgeColor) lipgloss.Style {
	p, ok := badgePalette[color]
	if !ok {
		p = badgePalette[nav.BadgeRed]
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p[0])).
		Foreground(lipgloss.Color(p[1])).
		Padding(0, 1)
}

func newTreeCmd(app *App) *cobra.Command {
	var path string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the assembled sidebar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := buildView(cmd, app, path)
			if err != nil {
				return writeErr(cmd, err)
			}
			if asJSON {
				return writeOut(cmd, app, v)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderTree(v))
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Current admin path, marks active links")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	return cmd
}

// buildView assembles the sidebar from the manifest, the options and the pinned store.
// It fails with host.ErrNoHostContext without a manifest.
func buildView(cmd *cobra.Command, app *App, path string) (view.Nav, error) {
	if app.ManifestFile == "" {
		return view.Nav{}, host.ErrNoHostContext
	}
	resolved, err := loadOptions(app)
	if err != nil {
		return view.Nav{}, err
	}

	manifest, err := host.LoadManifest(app.ManifestFile)
	if err != nil {
		return view.Nav{}, err
	}

	var items []nav.PinnedItem
	if resolved.EnablePinning {
		store, err := openStore(cmd.Context(), cmd, app, resolved)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: pinned items unavailable: %v\n", err)
		} else {
			items = store.Items()
		}
	}

	return view.Build(view.Input{
		HostGroups:  manifest.Groups(app.Roles),
		Options:     resolved,
		AdminRoute:  strings.TrimSuffix(app.AdminRoute, "/"),
		Pinned:      items,
		Preferences: preferences.NavPreferences{},
		Pathname:    path,
	}), nil
}

func renderTree(v view.Nav) string {
	var b strings.Builder

	d := v.Dashboard
	writeLink(&b, " ", d.Label, d.Href, d.Icon, d.Active, d.Badge)
	b.WriteString("\n")

	if len(v.Pinned) > 0 {
		b.WriteString(headingStyle.Render("Pinned"))
		b.WriteString("\n")
		for _, p := range v.Pinned {
			writeLink(&b, pinMarkStyle.Render("*"), p.Label, p.Href, p.Icon, p.Active, p.Badge)
		}
		b.WriteString("\n")
	}

	for _, g := range v.Groups {
		marker := "v"
		if !g.Open {
			marker = ">"
		}
		b.WriteString(headingStyle.Render(marker + " " + g.Label))
		b.WriteString("\n")
		for _, e := range g.Entities {
			mark := " "
			if e.Pinned {
				mark = pinMarkStyle.Render("*")
			}
			writeLink(&b, mark, e.Label, e.Href, e.Icon, e.Active, e.Badge)
		}
	}
	return b.String()
}

func writeLink(b *strings.Builder, mark, label, href string, icon nav.IconRef, active bool, badge *nav.ResolvedBadge) {
	if active {
		label = activeStyle.Render(label)
	}
	line := fmt.Sprintf("  %s %s %s", mark, label, mutedStyle.Render(href))
	if !icon.IsZero() {
		line += " " + mutedStyle.Render("["+icon.String()+"]")
	}
	if badge != nil {
		line += " " + badgeStyle(badge.Color).Render(badge.Text)
	}
	b.WriteString(line)
	b.WriteString("\n")
}
