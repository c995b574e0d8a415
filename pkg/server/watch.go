package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/manifest"
)

// ResolveFunc rebuilds the manifest and property bag after a file change.
type ResolveFunc func(ctx context.Context) (manifest.Manifest, host.Parameters, error)

const reloadDebounce = 150 * time.Millisecond

// WatchManifest reloads the server whenever the file at path changes. It
// watches the parent directory so editors that replace the file are seen.
// Failed reloads are logged and the previous control stays live. It blocks
// until ctx is cancelled.
func (s *Server) WatchManifest(ctx context.Context, path string, resolve ResolveFunc) error {
	if resolve == nil {
		return fmt.Errorf("server: watch %q: resolve func is required", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("server: watch %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: watch %q: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("server: watch %q: %w", path, err)
	}

	logger := s.logger.WithField("manifest", abs)
	logger.Info("watching manifest")

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debounce = time.After(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("watcher error")
		case <-debounce:
			debounce = nil
			m, params, err := resolve(ctx)
			if err != nil {
				logger.WithError(err).Error("reload failed, keeping previous control")
				continue
			}
			s.Reload(m, params)
		}
	}
}
