package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/auth"
	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/host"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/pinned"
	"github.com/cexll/sidebar/internal/preferences"
	"github.com/cexll/sidebar/internal/view"
)

const maxBodyBytes = 64 << 10

// HostSource yields the permission-filtered host groups for a user's roles
type HostSource interface {
	Groups(roles []string) []nav.Group
}

// Handler serves the navigation and pinned-item API
type Handler struct {
	prefs      *preferences.Service
	host       HostSource
	options    config.Resolved
	adminRoute string
	logger     *zap.Logger
}

// NewHandler creates a new API handler. host may be nil, in which case the
// navigation endpoint answers 503.
func NewHandler(prefs *preferences.Service, host HostSource, options config.Resolved, adminRoute string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		prefs:      prefs,
		host:       host,
		options:    options,
		adminRoute: adminRoute,
		logger:     logger,
	}
}

// RegisterRoutes registers the API routes. Pinned-item routes exist only when
// pinning is enabled.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/nav", h.handleNav).Methods(http.MethodGet)
	r.HandleFunc("/api/nav/groups/{label}", h.handleGroupState).Methods(http.MethodPost)

	if !h.options.EnablePinning {
		return
	}
	r.HandleFunc(pinned.PathPinned, h.handlePinned).Methods(http.MethodGet)
	r.HandleFunc(pinned.PathPin, h.handlePin).Methods(http.MethodPost)
	r.HandleFunc(pinned.PathUnpin, h.handleUnpin).Methods(http.MethodPost)
	r.HandleFunc(pinned.PathReorder, h.handleReorder).Methods(http.MethodPost)
}

// handleNav returns the assembled sidebar for the authenticated user
func (h *Handler) handleNav(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	if isNilHost(h.host) {
		writeError(w, http.StatusServiceUnavailable, host.ErrNoHostContext)
		return
	}

	ctx := r.Context()
	navPrefs, err := h.prefs.NavState(ctx, user.ID)
	if err != nil {
		h.logger.Warn("nav preferences unavailable", zap.String("user", user.ID), zap.Error(err))
	}

	// pinned items come from the server record only when that is the configured storage
	var items []nav.PinnedItem
	if h.options.EnablePinning && h.options.PinnedStorage == config.StoragePreferences {
		items, err = h.prefs.Pinned(ctx, user.ID)
		if err != nil {
			h.logger.Warn("pinned items unavailable", zap.String("user", user.ID), zap.Error(err))
			items = nil
		}
	}

	writeJSON(w, http.StatusOK, view.Build(view.Input{
		HostGroups:  h.host.Groups(user.Roles),
		Options:     h.options,
		AdminRoute:  h.adminRoute,
		Pinned:      items,
		Preferences: navPrefs,
		Pathname:    r.URL.Query().Get("path"),
	}))
}

func (h *Handler) handleGroupState(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	// mux matches on the decoded path, so the label is already unescaped
	label := mux.Vars(r)["label"]

	var req struct {
		Open *bool `json:"open"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Open == nil {
		writeError(w, http.StatusBadRequest, errors.New("open is required"))
		return
	}

	prefs, err := h.prefs.SetGroupOpen(r.Context(), user.ID, label, *req.Open)
	if err != nil {
		h.fail(w, "set group state", err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) handlePinned(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	items, err := h.prefs.Pinned(r.Context(), user.ID)
	if err != nil {
		h.fail(w, "load pinned", err)
		return
	}
	writeJSON(w, http.StatusOK, pinned.Response{PinnedItems: items})
}

func (h *Handler) handlePin(w http.ResponseWriter, r *http.Request) {
	h.itemMutation(w, r, "pin", h.prefs.Pin)
}

func (h *Handler) handleUnpin(w http.ResponseWriter, r *http.Request) {
	h.itemMutation(w, r, "unpin", h.prefs.Unpin)
}

func (h *Handler) itemMutation(w http.ResponseWriter, r *http.Request, op string,
	apply func(ctx context.Context, userID, slug string, typ nav.EntityType) ([]nav.PinnedItem, error)) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	var req pinned.ItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	items, err := apply(r.Context(), user.ID, req.Slug, req.Type)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	h.logger.Info("pinned items changed",
		zap.String("op", op),
		zap.String("user", user.ID),
		zap.String("slug", req.Slug),
		zap.String("type", string(req.Type)),
		zap.String("request_id", RequestIDFrom(r.Context())),
	)
	writeJSON(w, http.StatusOK, pinned.Response{PinnedItems: items})
}

func (h *Handler) handleReorder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	var req pinned.ReorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	items, err := h.prefs.Reorder(r.Context(), user.ID, req.Items)
	if err != nil {
		h.fail(w, "reorder", err)
		return
	}
	writeJSON(w, http.StatusOK, pinned.Response{PinnedItems: items})
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user, ok := auth.FromContext(r.Context())
	if !ok || user.ID == "" {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken)
		return auth.User{}, false
	}
	return user, true
}

// fail maps service errors onto status codes
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, nav.ErrEmptySlug),
		errors.Is(err, nav.ErrInvalidType),
		errors.Is(err, preferences.ErrEmptyLabel):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, preferences.ErrNoUser):
		writeError(w, http.StatusUnauthorized, err)
	default:
		h.logger.Error("preference operation failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Unauthorized answers a rejected bearer token with the API's JSON error body
func Unauthorized(w http.ResponseWriter, _ *http.Request, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, err)
}

func isNilHost(h HostSource) bool {
	if h == nil {
		return true
	}
	m, ok := h.(*host.Manifest)
	return ok && m == nil
}
