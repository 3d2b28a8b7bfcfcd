package config

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	defaultDebounce    = 250 * time.Millisecond
	restartBackoffBase = 250 * time.Millisecond
	restartBackoffMax  = 5 * time.Second
)

type watchOptions struct {
	log      zerolog.Logger
	debounce time.Duration
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

func WithWatchLogger(log zerolog.Logger) WatchOption {
	return func(o *watchOptions) { o.log = log }
}

// WithDebounce sets how long the file must be quiet before it is re-read.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watch calls fn with the re-read settings whenever the file at path changes
// to a new valid content. Unparseable edits are logged and skipped. Watch
// blocks until ctx is done; fn is never called after it returns.
func Watch(ctx context.Context, path string, fn func(Settings), opts ...WatchOption) error {
	o := watchOptions{log: zerolog.Nop(), debounce: defaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With().Str("component", "settings").Str("path", path).Logger()

	dir := filepath.Dir(path)
	file := filepath.Base(path)

	last, _ := LoadSettings(path)

	var (
		mu    sync.Mutex
		timer *time.Timer
		done  bool
	)
	reload := func() {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		if _, err := os.Stat(path); err != nil {
			log.Debug().Err(err).Msg("settings file gone; keeping current values")
			return
		}
		s, err := LoadSettings(path)
		if err != nil {
			log.Warn().Err(err).Msg("settings reload failed")
			return
		}
		if s == last {
			log.Debug().Msg("settings unchanged; skipping")
			return
		}
		last = s
		log.Debug().Msg("settings reloaded")
		fn(s)
	}
	debounce := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(o.debounce, reload)
	}
	defer func() {
		mu.Lock()
		done = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	backoff := restartBackoffBase
	sleep := func() bool {
		wait := backoff + rand.N(backoff/2+1)
		backoff = min(backoff*2, restartBackoffMax)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
			return true
		}
	}

	for ctx.Err() == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.Warn().Err(err).Msg("settings watch init failed")
			if !sleep() {
				break
			}
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			log.Warn().Err(err).Msg("settings watch add failed")
			if !sleep() {
				break
			}
			continue
		}

		backoff = restartBackoffBase
		log.Debug().Msg("settings watcher started")

		broken := false
		for !broken {
			select {
			case <-ctx.Done():
				_ = w.Close()
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					broken = true
					break
				}
				if strings.EqualFold(filepath.Base(ev.Name), file) &&
					ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					debounce()
				}
			case err, ok := <-w.Errors:
				if !ok {
					broken = true
					break
				}
				log.Warn().Err(err).Msg("settings watch error")
				debounce()
			}
		}

		_ = w.Close()
		log.Warn().Msg("settings watcher stopped; restarting")
		if !sleep() {
			break
		}
	}
	return nil
}
