package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const defaultWatchDebounce = 500 * time.Millisecond

// Watch runs Sync once and again after every change to the desired-state
// file until ctx is cancelled. Runs never overlap. A failed run is reported
// through OnRun and does not stop the watch.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	desiredPath := strings.TrimSpace(req.Sync.DesiredPath)
	if desiredPath == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("desired state file is required")
	}
	absPath, err := filepath.Abs(desiredPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve desired state path").
			WithCause(err)
	}
	req.Sync.DesiredPath = absPath

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()
	// Watch the directory so editors that replace the file are noticed.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to watch desired state directory").
			WithCause(err)
	}

	logger := log.Ctx(ctx)
	run := func() {
		result, err := s.Sync(ctx, req.Sync)
		if err != nil {
			logger.Error().Err(err).Msg("sync run failed")
		}
		if req.OnRun != nil {
			req.OnRun(result, err)
		}
	}

	debounce := req.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	logger.Info().Str("path", absPath).Dur("debounce", debounce).Msg("watching desired state for changes")
	run()

	filename := filepath.Base(absPath)
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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("desired state changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")
		case <-fire:
			fire = nil
			run()
		}
	}
}
