package pinned

import (
	"errors"
	"net/http"

	"github.com/cexll/sidebar/internal/config"
)

// BackendConfig selects and configures a backing store for out-of-browser clients
type BackendConfig struct {
	Storage    string // preferences|remote or localStorage|local
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	SlotDir    string
	SlotKey    string
}

// NewBackend builds the backend named by cfg.Storage.
func NewBackend(cfg BackendConfig) (Backend, error) {
	storage, err := config.ParsePinnedStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	switch storage {
	case config.StorageLocal:
		if cfg.SlotDir == "" {
			return nil, errors.New("pinned: local storage needs a slot directory")
		}
		return NewLocalBackend(FileSlot{Dir: cfg.SlotDir}, cfg.SlotKey), nil
	default:
		if cfg.BaseURL == "" {
			return nil, errors.New("pinned: preference storage needs an API base URL")
		}
		opts := []RemoteOption{WithToken(cfg.Token)}
		if cfg.HTTPClient != nil {
			opts = append(opts, WithHTTPClient(cfg.HTTPClient))
		}
		return NewRemoteBackend(cfg.BaseURL, opts...), nil
	}
}
