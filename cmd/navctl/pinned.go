package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/pinned"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pinned items in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !opts.EnablePinning {
				return writeOut(cmd, app, pinned.Response{PinnedItems: []nav.PinnedItem{}})
			}
			store, err := openStore(cmd.Context(), cmd, app, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pinned.Response{PinnedItems: store.Items()})
		},
	}
}

func newPinCmd(app *App) *cobra.Command {
	return newItemCmd(app, "pin <type> <slug>", "Pin an entity to the quick access list", (*pinned.Store).Pin)
}

func newUnpinCmd(app *App) *cobra.Command {
	return newItemCmd(app, "unpin <type> <slug>", "Remove an entity from the quick access list", (*pinned.Store).Unpin)
}

func newToggleCmd(app *App) *cobra.Command {
	return newItemCmd(app, "toggle <type> <slug>", "Pin an unpinned entity or unpin a pinned one", (*pinned.Store).TogglePin)
}

type itemOp func(s *pinned.Store, ctx context.Context, slug string, typ nav.EntityType) error

func newItemCmd(app *App, use, short string, op itemOp) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := nav.ParseEntityType(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			opts, err := loadOptions(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			store, err := openStore(cmd.Context(), cmd, app, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := op(store, cmd.Context(), args[1], typ); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pinned.Response{PinnedItems: store.Items()})
		},
	}
}

func newReorderCmd(app *App) *cobra.Command {
	var refs []string

	cmd := &cobra.Command{
		Use:     "reorder",
		Short:   "Replace the pinned list with the given order",
		Example: `  navctl reorder --item global:header --item collection:posts`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]nav.PinnedItem, 0, len(refs))
			for i, ref := range refs {
				item, err := parseRef(ref)
				if err != nil {
					return writeErr(cmd, err)
				}
				item.Order = i
				items = append(items, item)
			}
			opts, err := loadOptions(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			store, err := openStore(cmd.Context(), cmd, app, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Reorder(cmd.Context(), items); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pinned.Response{PinnedItems: store.Items()})
		},
	}

	cmd.Flags().StringSliceVar(&refs, "item", nil, "Pinned item as type:slug (repeatable, in order)")
	return cmd
}
