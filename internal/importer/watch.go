package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"skeyedit/internal/logger"
)

const createOps = fsnotify.Create | fsnotify.Write

// Watch calls fn for every library file created or written in dir until ctx
// is done. Files with an extension ForFile does not know are ignored.
func Watch(ctx context.Context, dir string, log *logger.Logger, fn func(path string)) error {
	if log == nil {
		log = logger.Discard()
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(absDir); err != nil {
		return fmt.Errorf("watch %s: %w", absDir, err)
	}
	log.Info("watching %s", absDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch %s: %v", absDir, err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&createOps == 0 || !Supported(ev.Name) {
				continue
			}
			if fi, err := os.Lstat(ev.Name); err != nil || !fi.Mode().IsRegular() {
				log.Debug("skip %s (%s)", ev.Name, ev.Op)
				continue
			}
			log.Debug("file updated: %s", ev.Name)
			fn(ev.Name)
		}
	}
}
