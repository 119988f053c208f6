package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/host"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/pinned"
	"github.com/cexll/sidebar/internal/preferences"
	"github.com/cexll/sidebar/internal/view"
)

// ListNavigationParams defines the input parameters for list_navigation
type ListNavigationParams struct {
	Path string `json:"path,omitempty" jsonschema:"Current admin path used to mark active links"`
}

// ListPinnedParams defines the input parameters for list_pinned
type ListPinnedParams struct{}

// ItemParams identifies one navigation entity
type ItemParams struct {
	Slug string `json:"slug" jsonschema:"Entity slug, e.g. posts or custom-api-docs"`
	Type string `json:"type" jsonschema:"Entity type: collection, global or custom"`
}

// ReorderParams defines the input parameters for reorder_pinned
type ReorderParams struct {
	Items []ItemParams `json:"items" jsonschema:"The complete pinned list in the desired order"`
}

// navTools implements the MCP tools over one pinned-item store.
// store is nil when pinning is disabled.
type navTools struct {
	store      *pinned.Store
	manifest   *host.Manifest
	options    config.Resolved
	adminRoute string
	roles      []string
	logger     *zap.Logger
}

// HandleListNavigation handles the list_navigation tool call
func (n *navTools) HandleListNavigation(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ListNavigationParams,
) (*mcp.CallToolResult, any, error) {
	n.logger.Debug("list_navigation", zap.String("path", params.Path))
	if n.manifest == nil {
		return errorResult(host.ErrNoHostContext), nil, nil
	}

	v := view.Build(view.Input{
		HostGroups:  n.manifest.Groups(n.roles),
		Options:     n.options,
		AdminRoute:  n.adminRoute,
		Pinned:      n.pinnedItems(),
		Preferences: preferences.NavPreferences{},
		Pathname:    params.Path,
	})
	return jsonResult(v)
}

// HandleListPinned handles the list_pinned tool call
func (n *navTools) HandleListPinned(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ListPinnedParams,
) (*mcp.CallToolResult, any, error) {
	return jsonResult(pinned.Response{PinnedItems: n.pinnedItems()})
}

// HandlePinItem handles the pin_item tool call
func (n *navTools) HandlePinItem(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ItemParams,
) (*mcp.CallToolResult, any, error) {
	return n.mutate(ctx, "pin_item", params, (*pinned.Store).Pin)
}

// HandleUnpinItem handles the unpin_item tool call
func (n *navTools) HandleUnpinItem(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ItemParams,
) (*mcp.CallToolResult, any, error) {
	return n.mutate(ctx, "unpin_item", params, (*pinned.Store).Unpin)
}

// HandleReorderPinned handles the reorder_pinned tool call
func (n *navTools) HandleReorderPinned(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ReorderParams,
) (*mcp.CallToolResult, any, error) {
	items := make([]nav.PinnedItem, 0, len(params.Items))
	for i, it := range params.Items {
		typ, err := parseItem(it)
		if err != nil {
			return nil, nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, nav.PinnedItem{Slug: it.Slug, Type: typ, Order: i})
	}

	if !n.pinningEnabled() {
		return errorResult(pinned.ErrPinningDisabled), nil, nil
	}
	if err := n.store.Reorder(ctx, items); err != nil {
		n.logger.Warn("reorder_pinned failed", zap.Error(err))
		return errorResult(err), nil, nil
	}
	return jsonResult(pinned.Response{PinnedItems: n.store.Items()})
}

func (n *navTools) mutate(
	ctx context.Context,
	tool string,
	params ItemParams,
	apply func(*pinned.Store, context.Context, string, nav.EntityType) error,
) (*mcp.CallToolResult, any, error) {
	typ, err := parseItem(params)
	if err != nil {
		return nil, nil, err
	}
	if !n.pinningEnabled() {
		return errorResult(pinned.ErrPinningDisabled), nil, nil
	}
	if err := apply(n.store, ctx, params.Slug, typ); err != nil {
		// the store has already reloaded; report the failure with the current set
		n.logger.Warn("tool failed", zap.String("tool", tool), zap.String("slug", params.Slug), zap.Error(err))
		return errorResult(err), nil, nil
	}
	return jsonResult(pinned.Response{PinnedItems: n.store.Items()})
}

func (n *navTools) pinningEnabled() bool {
	return n.options.EnablePinning && n.store != nil
}

func (n *navTools) pinnedItems() []nav.PinnedItem {
	if n.store == nil {
		return []nav.PinnedItem{}
	}
	return n.store.Items()
}

func parseItem(p ItemParams) (nav.EntityType, error) {
	if p.Slug == "" {
		return "", errors.New("slug parameter is required")
	}
	return nav.ParseEntityType(p.Type)
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(raw)},
		},
	}, nil, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)},
		},
		IsError: true,
	}
}
