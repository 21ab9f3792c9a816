// Package pyenv locates and provisions the virtual environment used to run
// backend tooling and installed artifacts.
package pyenv

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pybuilder/internal/config"
)

// None is the sentinel for "no isolated environment". Callers must treat it
// as "run unisolated", never as an error.
const None = ""

// EnvVar is the conventional environment variable naming the virtualenv.
const EnvVar = "VIRTUAL_ENV"

// Resolve determines the virtual environment path for the project at root.
//
// Resolution order: explicit path from project configuration, then the
// project-scoped VIRTUAL_ENV lookup (config env map before process
// environment), then None. Relative paths are resolved against root.
func Resolve(root string, cfg *config.Config) string {
	path := cfg.Environment.Virtualenv
	if path == "" {
		path = cfg.Getenv(EnvVar)
	}
	if path == "" {
		return None
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return path
}

// Provisioner creates or upgrades a virtual environment at a path.
type Provisioner interface {
	// Provision ensures an environment exists at path. With upgrade set the
	// environment already exists and its tooling (including the package
	// installer) is brought current; otherwise a fresh environment with a
	// bundled installer is created.
	Provision(ctx context.Context, path string, upgrade bool) error
}

// Ensure resolves the environment and, when one is configured, provisions
// it: an existing directory is upgraded in place, a missing one is created.
//
// Provisioning is I/O-bound and runs synchronously under ctx; call it from a
// worker goroutine, not an event-dispatch path. Returns the resolved path,
// or None when the project runs unisolated.
func Ensure(ctx context.Context, root string, cfg *config.Config, prov Provisioner) (string, error) {
	path := Resolve(root, cfg)
	if path == None {
		return None, nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		slog.Info("Updating virtual environment", "path", path)
		if err := prov.Provision(ctx, path, true); err != nil {
			return None, err
		}
		return path, nil
	}

	slog.Info("Creating virtual environment", "path", path)
	if err := prov.Provision(ctx, path, false); err != nil {
		return None, err
	}
	return path, nil
}

// BinPath rewrites the first token of argv to the environment-scoped binary
// path (<env>/bin/<binary>). With env == None argv is returned verbatim.
func BinPath(env string, argv []string) []string {
	if env == None || len(argv) == 0 {
		return argv
	}
	rewritten := make([]string, len(argv))
	copy(rewritten, argv)
	rewritten[0] = filepath.Join(env, "bin", argv[0])
	return rewritten
}
