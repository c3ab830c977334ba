package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// inputWatcher re-runs a conversion whenever the watched file is written.
// The parent directory is watched so editors that save by rename are seen.
type inputWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

func newInputWatcher(path string) (*inputWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}
	return &inputWatcher{path: path, watcher: w}, nil
}

// run blocks until ctx is done or the watcher fails. Conversion errors are
// logged and do not stop the loop.
func (w *inputWatcher) run(ctx context.Context, convert func() error) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping watch")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			log.Debugf("Received fsnotify event: %+v", event)
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := convert(); err != nil {
				log.WithError(err).Warn("Failed to convert")
				continue
			}
			log.WithField("path", w.path).Info("Converted")
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher received an error")
		}
	}
}
