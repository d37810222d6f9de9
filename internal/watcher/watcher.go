// Package watcher re-triggers the pipeline when a watched document changes.
// Each trigger causes a full batch re-run; nothing is processed
// incrementally.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watched names the files a running pipeline depends on. Config is
// optional; empty means no config file is in play.
type Watched struct {
	Glossary string
	Report   string
	Config   string
}

// Handler routes change notifications. OnInput fires for glossary or
// report edits and should re-run the pipeline as is; OnConfig fires for
// config edits so the caller can rebuild the pipeline with fresh settings
// first. Callbacks are invoked one at a time from the watch loop, so a
// handler never races a later change to the same or another file.
type Handler struct {
	OnInput  func(path string)
	OnConfig func(path string)
}

type change struct {
	path   string
	config bool
}

// Watch watches the named files and dispatches debounced change events to
// the handler until the context is cancelled or the watcher fails.
//
// The containing directories are watched rather than the files themselves,
// which handles editors and tools that replace files by rename, and lets a
// config file that does not exist yet take effect on creation. The watch
// set is fixed for the life of the call; a config edit that retargets an
// input path takes effect on restart.
func Watch(ctx context.Context, w Watched, h Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	targets := make(map[string]change)
	watchedDirs := make(map[string]bool)

	register := func(path string, isConfig bool) {
		if path == "" {
			return
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return
		}

		dir := filepath.Dir(absPath)
		if !watchedDirs[dir] {
			if err := fsw.Add(dir); err != nil {
				log.Printf("Failed to watch directory %s: %v", dir, err)
				return
			}
			watchedDirs[dir] = true
		}

		targets[absPath] = change{path: absPath, config: isConfig}
		log.Printf("Watching %s for changes", absPath)
	}

	register(w.Glossary, false)
	register(w.Report, false)
	register(w.Config, true)

	fired := make(chan change, 16)
	debounceTimers := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range debounceTimers {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			c, watched := targets[absPath]
			if !watched {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer, exists := debounceTimers[absPath]; exists {
					timer.Stop()
				}

				debounceTimers[absPath] = time.AfterFunc(debounce, func() {
					select {
					case fired <- c:
					case <-ctx.Done():
					}
				})
			}

		case c := <-fired:
			log.Printf("File changed: %s", c.path)
			if c.config {
				if h.OnConfig != nil {
					h.OnConfig(c.path)
				}
			} else if h.OnInput != nil {
				h.OnInput(c.path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
