package lint

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"git.home.luguber.info/inful/pybuilder/internal/config"
	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
	"git.home.luguber.info/inful/pybuilder/internal/metrics"
	"git.home.luguber.info/inful/pybuilder/internal/pyenv"
)

// Runner executes the configured linter against project files.
//
// The linter runs as a subprocess and is I/O-bound; callers on an event
// loop should dispatch Run from a worker goroutine and rely on ctx for
// cancellation.
type Runner struct {
	root     string
	cfg      *config.Config
	env      string
	recorder metrics.Recorder
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRecorder injects a metrics recorder (defaults to NoopRecorder).
func WithRecorder(r metrics.Recorder) RunnerOption {
	return func(run *Runner) { run.recorder = r }
}

// WithEnv runs the linter from the given virtual environment.
func WithEnv(env string) RunnerOption {
	return func(run *Runner) { run.env = env }
}

// NewRunner creates a linter runner for the project rooted at root.
func NewRunner(root string, cfg *config.Config, opts ...RunnerOption) *Runner {
	run := &Runner{root: root, cfg: cfg, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(run)
	}
	return run
}

// Run lints path and returns its diagnostics. When content is non-nil it is
// piped to the linter in place of the on-disk file, so unsaved edits can be
// checked.
func (run *Runner) Run(ctx context.Context, path string, content []byte) ([]Diagnostic, error) {
	linter := run.cfg.Lint.Linter
	if linter != "pylint" {
		return nil, pberrors.ValidationFailed("lint.linter", "unsupported linter "+linter)
	}

	argv := pyenv.BinPath(run.env, PylintArgv(path, content != nil))
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = run.root
	cmd.Env = run.environ()
	if content != nil {
		cmd.Stdin = bytes.NewReader(content)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	slog.Debug("Running linter", "argv", argv, "path", path)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, pberrors.LintSpawnFailed(linter, err).
			WithContext("stderr", stderr.String())
	}
	run.recorder.ObserveLintDuration(time.Since(started))

	return DecodePylint(stdout.Bytes())
}

// environ builds the subprocess environment: the process environment plus a
// project-scoped PYLINTRC override and, when configured, the virtualenv.
func (run *Runner) environ() []string {
	env := os.Environ()
	if rc := run.cfg.Getenv("PYLINTRC"); rc != "" {
		env = append(env, "PYLINTRC="+rc)
	}
	if run.env != pyenv.None {
		env = append(env, pyenv.EnvVar+"="+run.env)
	}
	return env
}
