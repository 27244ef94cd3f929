package web

import (
	"context"
	"path/filepath"

	"folio-cli/internal/store"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the snapshot whenever the data file changes, until ctx is
// done. The parent directory is watched so editors that save by rename are
// picked up too. URL sources are not watched.
func (s *Server) Watch(ctx context.Context) error {
	if store.IsURL(s.cfg.Source) {
		<-ctx.Done()
		return nil
	}

	path, err := filepath.Abs(s.cfg.Source)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	s.log.Debug("watching data file", zap.String("path", path))

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&relevant == 0 {
				continue
			}
			_ = s.Reload(ctx)
			if s.onReload != nil {
				s.onReload()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("data file watcher", zap.Error(err))
		}
	}
}
