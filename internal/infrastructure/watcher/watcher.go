// Package watcher triggers batch runs when instruction files appear in the
// input directory.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher calls onChange after input files stop changing for the debounce
// delay. onChange runs on the watcher goroutine, so runs never overlap.
type Watcher struct {
	dir      string
	suffix   string
	debounce time.Duration
	logger   zerolog.Logger
	onChange func(context.Context)
}

// New creates a Watcher for files in dir ending in suffix, compared
// case-insensitively.
func New(dir, suffix string, debounce time.Duration, logger zerolog.Logger, onChange func(context.Context)) *Watcher {
	return &Watcher{
		dir:      dir,
		suffix:   strings.ToLower(suffix),
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}
}

// Run watches until ctx is done. With runFirst set, onChange is called once
// before any event so files already waiting are picked up.
func (w *Watcher) Run(ctx context.Context, runFirst bool) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info().Str("dir", w.dir).Msg("watching for input files")

	if runFirst {
		w.onChange(ctx)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("input changed")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// relevant ignores removals and renames, which include our own archive moves.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(filepath.Base(event.Name)), w.suffix)
}
