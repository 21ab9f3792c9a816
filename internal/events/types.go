package events

import "time"

// BuildStarted is emitted when the pipeline build stage begins executing the
// backend's build procedure.
type BuildStarted struct {
	JobID     string
	Backend   string
	Argv      []string
	StartedAt time.Time
}

// BuildFinished is emitted when the backend build completes, fails, or is
// cancelled. Outcome is "success", "failed", or "canceled".
type BuildFinished struct {
	JobID      string
	Backend    string
	Outcome    string
	Error      string
	Duration   time.Duration
	FinishedAt time.Time
}

// ArtifactRegistered is emitted when a build output is accepted into the
// artifact registry.
type ArtifactRegistered struct {
	Name string
	Kind string
	Path string
}

// ArtifactRejected is emitted when a build output is dropped because the
// resolved backend does not declare support for its kind. Registration stays
// silent; this event is the observable trace of the drop.
type ArtifactRejected struct {
	Name string
	Kind string
	Path string
}

// RegistryCleared is emitted after a clean operation empties the artifact
// registry. No filesystem state is implied.
type RegistryCleared struct {
	ClearedAt time.Time
}
