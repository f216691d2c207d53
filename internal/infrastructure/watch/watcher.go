package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/doeshing/envsync/internal/ports"
)

// Watcher reports changes to a single file. It watches the parent
// directory so editors that save via rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	log      ports.Logger
}

// New returns a Watcher for path. Bursts of events closer together than
// debounce collapse into one notification.
func New(path string, debounce time.Duration, log ports.Logger) *Watcher {
	return &Watcher{path: filepath.Clean(path), debounce: debounce, log: log}
}

// Run blocks until ctx is cancelled, calling onChange after each settled
// burst of writes, creates or renames of the watched file.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.log.Debug("watch.started", map[string]interface{}{"path": w.path})

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watch.stopped", map[string]interface{}{"path": w.path})
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("watch.event", map[string]interface{}{"op": event.Op.String(), "path": event.Name})
			stopTimer(timer)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch.error", err, map[string]interface{}{"path": w.path})

		case <-timer.C:
			onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
