package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
	"git.home.luguber.info/inful/pybuilder/internal/events"
	"git.home.luguber.info/inful/pybuilder/internal/logfields"
	"git.home.luguber.info/inful/pybuilder/internal/metrics"
	"git.home.luguber.info/inful/pybuilder/internal/pyenv"
)

// StageName labels the build stage in metrics and logs.
const StageName = "build"

// BuildStage runs the resolved backend's build frontend and registers its
// outputs. It owns no host state; all effects go through the build system
// and the injected collaborators.
type BuildStage struct {
	bs       *buildsys.BuildSystem
	launcher Launcher
	recorder metrics.Recorder
	emit     func(evt any)
}

// BuildStageOption configures a BuildStage.
type BuildStageOption func(*BuildStage)

// WithLauncher overrides the subprocess launcher (defaults to ExecLauncher).
func WithLauncher(l Launcher) BuildStageOption {
	return func(s *BuildStage) { s.launcher = l }
}

// WithRecorder injects a metrics recorder (defaults to NoopRecorder).
func WithRecorder(r metrics.Recorder) BuildStageOption {
	return func(s *BuildStage) { s.recorder = r }
}

// WithEventSink injects a callback for build lifecycle events.
func WithEventSink(emit func(evt any)) BuildStageOption {
	return func(s *BuildStage) { s.emit = emit }
}

// NewBuildStage creates the build stage for bs.
func NewBuildStage(bs *buildsys.BuildSystem, opts ...BuildStageOption) *BuildStage {
	s := &BuildStage{
		bs:       bs,
		launcher: ExecLauncher{},
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// argv prepares a backend command line: unisolated backends get the first
// token rewritten into the project's virtual environment so their frontend
// runs against the project interpreter. Isolated frontends manage their own
// environment and must not receive it.
func (s *BuildStage) argv(base []string) []string {
	b := s.bs.Backend()
	if b == nil || b.Isolated() {
		return base
	}
	return pyenv.BinPath(s.bs.EnvPath(), base)
}

// env returns the extra process environment for a backend invocation.
func (s *BuildStage) env() []string {
	b := s.bs.Backend()
	if b == nil || b.Isolated() {
		return nil
	}
	if path := s.bs.EnvPath(); path != pyenv.None {
		return []string{pyenv.EnvVar + "=" + path}
	}
	return nil
}

// Build implements Stage. On success every entry of the build directory is
// registered as an artifact. On cancellation the registry is left untouched
// and the outcome is reported as canceled, distinct from failure.
func (s *BuildStage) Build(ctx context.Context) error {
	b := s.bs.Backend()
	if b == nil {
		return pberrors.NoBackendResolved("build")
	}

	argv := s.argv(b.BuildArgv())
	jobID := uuid.NewString()
	started := time.Now()

	s.publish(events.BuildStarted{
		JobID:     jobID,
		Backend:   b.Name(),
		Argv:      argv,
		StartedAt: started,
	})
	slog.Info("Running backend build",
		logfields.JobID(jobID), logfields.Backend(b.Name()), logfields.Argv(argv))

	err := s.launcher.Launch(ctx, LaunchSpec{Argv: argv, Dir: s.bs.Root(), Env: s.env()})
	duration := time.Since(started)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil):
		s.recorder.IncStageResult(StageName, metrics.ResultCanceled)
		s.finish(jobID, b.Name(), "canceled", err, duration)
		return pberrors.BuildCancelled(b.Name(), err)

	case err != nil:
		s.recorder.IncStageResult(StageName, metrics.ResultFailed)
		s.finish(jobID, b.Name(), "failed", err, duration)
		return pberrors.BackendBuildFailed(b.Name(), err)
	}

	if err := s.bs.RegisterBuildDir(); err != nil {
		s.recorder.IncStageResult(StageName, metrics.ResultFailed)
		s.finish(jobID, b.Name(), "failed", err, duration)
		return err
	}

	s.recorder.IncStageResult(StageName, metrics.ResultSuccess)
	s.recorder.ObserveBuildDuration(duration)
	s.finish(jobID, b.Name(), "success", nil, duration)
	return nil
}

// Clean implements Stage. Backends with a clean command run it; otherwise
// the build directory contents are removed directly. The artifact registry
// is cleared in either case.
func (s *BuildStage) Clean(ctx context.Context) error {
	b := s.bs.Backend()
	if b == nil {
		return pberrors.NoBackendResolved("clean")
	}

	if cleanArgv := b.CleanArgv(); cleanArgv != nil {
		argv := s.argv(cleanArgv)
		slog.Info("Running backend clean", logfields.Backend(b.Name()), logfields.Argv(argv))
		if err := s.launcher.Launch(ctx, LaunchSpec{Argv: argv, Dir: s.bs.Root(), Env: s.env()}); err != nil {
			return pberrors.BackendBuildFailed(b.Name(), err)
		}
	} else if err := removeContents(s.bs.BuildDir()); err != nil {
		return err
	}

	s.bs.ClearRegistry()
	return nil
}

func (s *BuildStage) finish(jobID, backendName, outcome string, err error, d time.Duration) {
	evt := events.BuildFinished{
		JobID:      jobID,
		Backend:    backendName,
		Outcome:    outcome,
		Duration:   d,
		FinishedAt: time.Now(),
	}
	if err != nil {
		evt.Error = err.Error()
	}
	s.publish(evt)
}

func (s *BuildStage) publish(evt any) {
	if s.emit != nil {
		s.emit(evt)
	}
}

// removeContents deletes everything inside dir while keeping dir itself.
// A missing directory is not an error.
func removeContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return pberrors.Wrap(err, pberrors.CategoryFileSystem, pberrors.SeverityError, "build directory scan failed").
			WithContext("dir", dir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return pberrors.Wrap(err, pberrors.CategoryFileSystem, pberrors.SeverityError, "build directory cleanup failed").
				WithContext("dir", dir)
		}
	}
	return nil
}
