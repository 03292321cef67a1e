package usage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDebounce is the quiet period before a change is reported.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watcher reports writes to the counter's backing file made by any process,
// including other running instances.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch observes path (and its sqlite -wal/-journal siblings) and calls
// onChange once a burst of writes has been quiet for the given period.
// onChange runs on the watcher goroutine; a change still waiting out its
// quiet period when Close is called is dropped.
func Watch(path string, quiet time.Duration, logger *zap.Logger, onChange func()) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quiet <= 0 {
		quiet = DefaultWatchDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: the JSON backend replaces the file by rename.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	base := filepath.Base(path)

	go func() {
		defer close(w.done)

		var (
			quietTimer *time.Timer
			settled    <-chan time.Time
		)
		defer func() {
			if quietTimer != nil {
				quietTimer.Stop()
			}
		}()

		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Each write restarts the quiet period.
				if quietTimer == nil {
					quietTimer = time.NewTimer(quiet)
				} else {
					quietTimer.Reset(quiet)
				}
				settled = quietTimer.C

			case <-settled:
				settled = nil
				logger.Debug("counter store changed", zap.String("path", path))
				onChange()

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("counter watch error", zap.Error(err))
			}
		}
	}()

	return w, nil
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
