package server

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// watch invalidates the cached listing whenever the images directory changes
func (s *Server) watch(ctx context.Context) error {
	if _, err := os.Stat(s.cfg.ImagesDir); err != nil {
		s.logger.Warn("not watching images folder", "dir", s.cfg.ImagesDir, "error", err)
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.cfg.ImagesDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.cfg.ImagesDir, err)
	}
	s.logger.Debug("watching images folder", "dir", s.cfg.ImagesDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				s.logger.Debug("images folder changed", "path", event.Name, "op", event.Op.String())
				s.Invalidate()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}
