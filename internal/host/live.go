package host

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/nav"
)

// Live serves the manifest at a path and swaps in a new one whenever the file
// changes. A manifest that fails to load leaves the previous one in place.
type Live struct {
	path    string
	logger  *zap.Logger
	current atomic.Pointer[Manifest]
	reloads atomic.Int64
}

// NewLive loads path once and returns a Live serving it.
func NewLive(path string, logger *zap.Logger) (*Live, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Live{path: path, logger: logger}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Manifest returns the manifest currently served
func (l *Live) Manifest() *Manifest {
	return l.current.Load()
}

// Groups implements the host source contract over the current manifest
func (l *Live) Groups(roles []string) []nav.Group {
	return l.current.Load().Groups(roles)
}

// Reloads counts successful loads, including the initial one
func (l *Live) Reloads() int64 {
	return l.reloads.Load()
}

// Reload re-reads the manifest file.
func (l *Live) Reload() error {
	m, err := LoadManifest(l.path)
	if err != nil {
		return err
	}
	l.current.Store(m)
	l.reloads.Add(1)
	return nil
}

// Watch reloads the manifest on every write, create or rename of its file
// until ctx is done. The parent directory is watched so that editors that
// replace the file are picked up too.
func (l *Live) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", l.path, err)
	}
	target := filepath.Clean(l.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := l.Reload(); err != nil {
				l.logger.Warn("[Host] manifest reload failed, keeping previous", zap.String("path", l.path), zap.Error(err))
				continue
			}
			m := l.Manifest()
			l.logger.Info("[Host] manifest reloaded",
				zap.Int("collections", len(m.Collections)),
				zap.Int("globals", len(m.Globals)),
			)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("[Host] watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
