package services

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"content-cms/pkg/config"

	"github.com/fsnotify/fsnotify"
)

// WatchContent invalidates the post cache when files under the content tree
// change. Events are debounced so bulk operations (git pull, hugo new) cause a
// single invalidation. Runs until the watcher fails; call in a goroutine.
func WatchContent() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	contentDir := filepath.Join(config.RepoPath, "content")
	if err := addWatchDirs(watcher, contentDir); err != nil {
		return err
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatchDirs(watcher, event.Name)
				}
			}
			if !isContentFile(event.Name) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(config.WatchDebounce, func() {
				InvalidateCache()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("content watcher: %v", err)
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Files may disappear mid-walk; skip rather than abort.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isContentFile(path string) bool {
	return strings.HasSuffix(path, ".md")
}
