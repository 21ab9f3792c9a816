package daemon

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	"git.home.luguber.info/inful/pybuilder/internal/logfields"
)

// BuildDirWatcher registers artifacts as build frontends write them into
// the build directory, so the registry stays current without waiting for
// the next rescan tick.
type BuildDirWatcher struct {
	bs      *buildsys.BuildSystem
	mu      *sync.Mutex
	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
}

// NewBuildDirWatcher creates a watcher over bs's build directory. mu must
// be the mutex serializing all registry mutations.
func NewBuildDirWatcher(bs *buildsys.BuildSystem, mu *sync.Mutex) (*BuildDirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &BuildDirWatcher{
		bs:      bs,
		mu:      mu,
		watcher: watcher,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. A missing build directory is created first so the
// watch can attach before the first build runs.
func (w *BuildDirWatcher) Start(ctx context.Context) error {
	dir := w.bs.BuildDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	slog.Info("Watching build directory", logfields.Dir(dir))
	go w.loop(ctx)
	return nil
}

func (w *BuildDirWatcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.register(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Build directory watch error", "error", err)
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *BuildDirWatcher) register(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	slog.Debug("Registering watched build output", logfields.Path(path))
	w.bs.RegisterArtifact(path)
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *BuildDirWatcher) Stop() {
	close(w.stop)
	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing build directory watcher", "error", err)
	}
	<-w.done
}
