// Package logfields defines canonical log field names so attribute keys do
// not drift across packages.
package logfields

import "log/slog"

const (
	KeyJobID      = "job_id"
	KeyBackend    = "backend"
	KeyStage      = "stage"
	KeyArtifact   = "artifact"
	KeyKind       = "kind"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyArgv       = "argv"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func JobID(id string) slog.Attr        { return slog.String(KeyJobID, id) }
func Backend(name string) slog.Attr    { return slog.String(KeyBackend, name) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Artifact(name string) slog.Attr   { return slog.String(KeyArtifact, name) }
func Kind(kind string) slog.Attr       { return slog.String(KeyKind, kind) }
func Path(path string) slog.Attr       { return slog.String(KeyPath, path) }
func Dir(dir string) slog.Attr         { return slog.String(KeyDir, dir) }
func Argv(argv []string) slog.Attr     { return slog.Any(KeyArgv, argv) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
