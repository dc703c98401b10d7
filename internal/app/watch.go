package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/chmouel/lazystatus/internal/git"
	log "github.com/chmouel/lazystatus/internal/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce is the debounce window for watcher events.
const watchDebounce = 600 * time.Millisecond

// watchService signals when the repository's git directory changes, so the
// status view can refresh without polling.
type watchService struct {
	started     bool
	events      chan struct{}
	done        chan struct{}
	watcher     *fsnotify.Watcher
	lastRefresh time.Time
	runner      *git.Runner
}

func newWatchService(runner *git.Runner) *watchService {
	return &watchService{runner: runner}
}

// Start watches the git common dir (index, HEAD, refs) of the repository
// rooted at gitRoot. Returns false without error when watching is not
// possible; the app then simply refreshes on demand only.
func (w *watchService) Start(ctx context.Context, gitRoot string) (bool, error) {
	if w.started || gitRoot == "" {
		return false, nil
	}
	commonDir := w.resolveGitCommonDir(ctx, gitRoot)
	if commonDir == "" {
		log.Printf("watch: unable to resolve git common dir")
		return false, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	for _, dir := range []string{commonDir, filepath.Join(commonDir, "refs", "heads")} {
		if err := watcher.Add(dir); err != nil {
			log.Printf("watch: add %s: %v", dir, err)
		}
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *watchService) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Next returns the event channel, or nil when the watcher never started.
func (w *watchService) Next() <-chan struct{} {
	return w.events
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *watchService) ShouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < watchDebounce {
		return false
	}
	w.lastRefresh = now
	return true
}

func (w *watchService) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *watchService) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *watchService) resolveGitCommonDir(ctx context.Context, gitRoot string) string {
	out, err := w.runner.Execute(ctx, []string{"rev-parse", "--git-common-dir"}, git.Options{Dir: gitRoot})
	if err != nil {
		return ""
	}
	commonDir := strings.TrimSpace(out)
	if commonDir == "" {
		return ""
	}
	if filepath.IsAbs(commonDir) {
		return commonDir
	}
	return filepath.Join(gitRoot, commonDir)
}
