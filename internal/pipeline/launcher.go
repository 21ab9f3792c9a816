package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
)

// LaunchSpec describes one subprocess invocation.
type LaunchSpec struct {
	Argv []string
	Dir  string
	// Env entries are appended to the process environment.
	Env []string
}

// Launcher abstracts subprocess execution so stage orchestration can be
// tested without spawning real build frontends.
type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) error
}

// ExecLauncher runs commands with os/exec, streaming nothing: output is
// buffered and logged, and surfaced in the returned error on failure.
type ExecLauncher struct{}

// Launch implements Launcher.
func (ExecLauncher) Launch(ctx context.Context, spec LaunchSpec) error {
	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Launching build command", "argv", spec.Argv, "dir", spec.Dir)
	err := cmd.Run()

	if out := stdout.String(); out != "" {
		slog.Debug("build stdout", "output", out)
	}
	if errOut := stderr.String(); errOut != "" {
		slog.Warn("build stderr", "error_output", errOut)
	}

	if err != nil {
		return &LaunchError{Argv: spec.Argv, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// LaunchError carries the failed command and its captured stderr.
type LaunchError struct {
	Argv   []string
	Stderr string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Stderr != "" {
		return "command failed: " + e.Err.Error() + ": " + e.Stderr
	}
	return "command failed: " + e.Err.Error()
}

func (e *LaunchError) Unwrap() error { return e.Err }

// NoopLauncher performs no execution; useful in tests or dry runs.
type NoopLauncher struct{}

// Launch implements Launcher.
func (NoopLauncher) Launch(_ context.Context, spec LaunchSpec) error {
	slog.Debug("NoopLauncher skipping command", "argv", spec.Argv)
	return nil
}
