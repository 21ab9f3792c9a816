package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
)

// RescanScheduler periodically re-registers the build directory contents,
// covering outputs the filesystem watcher missed (network mounts, editor
// rename tricks, events dropped under load).
type RescanScheduler struct {
	scheduler gocron.Scheduler
}

// NewRescanScheduler creates a scheduler that rescans bs every interval.
// mu must be the mutex serializing all registry mutations.
func NewRescanScheduler(bs *buildsys.BuildSystem, mu *sync.Mutex, interval time.Duration) (*RescanScheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			mu.Lock()
			defer mu.Unlock()
			if err := bs.RegisterBuildDir(); err != nil {
				slog.Warn("Periodic rescan failed", "error", err)
			}
		}),
		gocron.WithName("build-dir-rescan"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	return &RescanScheduler{scheduler: s}, nil
}

// Start begins periodic execution.
func (s *RescanScheduler) Start() {
	slog.Info("Starting rescan scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running rescan to finish.
func (s *RescanScheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		slog.Error("Error stopping rescan scheduler", "error", err)
	}
}
