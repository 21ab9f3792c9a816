// Package pipeline adapts the PEP 517 build system into a host build
// pipeline: it contributes a build stage that drives the backend frontend
// and feeds its outputs into the artifact registry.
package pipeline

import "context"

// Phase identifies a pipeline phase a stage can attach to.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseDownloads
	PhaseDependencies
	PhaseAutogen
	PhaseConfigure
	PhaseBuild
	PhaseInstall
	PhaseExport
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseDownloads:
		return "downloads"
	case PhaseDependencies:
		return "dependencies"
	case PhaseAutogen:
		return "autogen"
	case PhaseConfigure:
		return "configure"
	case PhaseBuild:
		return "build"
	case PhaseInstall:
		return "install"
	case PhaseExport:
		return "export"
	default:
		return "none"
	}
}

// BuildPriority is the advisory priority the build stage attaches with.
// Priorities order stages within a phase on hosts that honor them; the
// adapter itself never depends on priority-based ordering.
const BuildPriority = 100

// Stage is a unit of pipeline work. Build performs the stage's forward
// action; Clean undoes its observable effects. Both honor ctx cancellation.
type Stage interface {
	Build(ctx context.Context) error
	Clean(ctx context.Context) error
}

// Pipeline is the host-side attachment surface. The adapter holds it by
// reference and never mutates host state outside Attach/Detach.
type Pipeline interface {
	// Attach registers a stage in a phase with an advisory priority and
	// returns an identifier usable with Detach.
	Attach(phase Phase, priority int, stage Stage) int

	// Detach removes a previously attached stage.
	Detach(id int)
}

// Runner is a minimal in-process Pipeline for hosts (and tests) that run
// stages directly. Stages execute in attachment order within a phase;
// priorities are recorded but not used for ordering.
type Runner struct {
	nextID      int
	attachments []attachment
}

type attachment struct {
	id       int
	phase    Phase
	priority int
	stage    Stage
}

// NewRunner creates an empty Runner.
func NewRunner() *Runner {
	return &Runner{nextID: 1}
}

// Attach implements Pipeline.
func (r *Runner) Attach(phase Phase, priority int, stage Stage) int {
	id := r.nextID
	r.nextID++
	r.attachments = append(r.attachments, attachment{id: id, phase: phase, priority: priority, stage: stage})
	return id
}

// Detach implements Pipeline.
func (r *Runner) Detach(id int) {
	for i, a := range r.attachments {
		if a.id == id {
			r.attachments = append(r.attachments[:i], r.attachments[i+1:]...)
			return
		}
	}
}

// Build runs every stage attached to phase, stopping at the first error.
func (r *Runner) Build(ctx context.Context, phase Phase) error {
	for _, a := range r.attachments {
		if a.phase != phase {
			continue
		}
		if err := a.stage.Build(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Clean runs the clean action of every stage attached to phase in reverse
// attachment order, stopping at the first error.
func (r *Runner) Clean(ctx context.Context, phase Phase) error {
	for i := len(r.attachments) - 1; i >= 0; i-- {
		a := r.attachments[i]
		if a.phase != phase {
			continue
		}
		if err := a.stage.Clean(ctx); err != nil {
			return err
		}
	}
	return nil
}
