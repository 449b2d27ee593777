package file

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/otpvault/pkg/logger"
)

// Watch calls onChange whenever the file is written, created or replaced,
// until ctx is done. The parent directory is watched because Save replaces
// the file by renaming.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrFailedToWatch, err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Join(ErrFailedToWatch, err)
	}

	const mask = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&mask == 0 {
				continue
			}
			s.log.DebugContext(ctx, "accounts file changed", logger.Component("file_store"), "op", ev.Op.String())
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.WarnContext(ctx, "file watcher error", logger.Component("file_store"), logger.Error(err))
		}
	}
}
