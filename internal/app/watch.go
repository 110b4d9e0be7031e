// # internal/app/watch.go
package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Watch re-runs the batch pipeline whenever a recognized file under the scan
// path changes. Events are debounced, and reruns are rate limited so a burst
// of saves (editor swap files, checkouts) triggers one analysis, not fifty.
// Each rerun is a fresh single-threaded batch; results go to onRun.
func (a *App) Watch(ctx context.Context, onRun func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(a.Config.ScanPath); err != nil {
		return err
	}
	slog.Info("watching for changes", "path", a.Config.ScanPath, "debounce", a.Config.Watch.Debounce)

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !a.Scanner.Recognizes(filepath.Base(event.Name)) {
				continue
			}
			slog.Debug("file event", "op", event.Op.String(), "name", event.Name)
			timer.Reset(a.Config.Watch.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)

		case <-timer.C:
			if !limiter.Allow() {
				// Too soon after the last rerun; try again after the debounce.
				timer.Reset(a.Config.Watch.Debounce)
				continue
			}
			result, err := a.Run()
			if err != nil {
				slog.Error("rescan failed", "error", err)
				continue
			}
			if onRun != nil {
				onRun(result)
			}
		}
	}
}
