package pipeline

import (
	"log/slog"

	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
)

// Addin wires the PEP 517 build stage into a host pipeline. It attaches
// nothing when the project's manifest did not resolve to a supported
// backend, so foreign projects pass through untouched.
type Addin struct {
	bs      *buildsys.BuildSystem
	stageID int
}

// NewAddin creates an addin for bs. The build system must have completed
// Init before Load is called.
func NewAddin(bs *buildsys.BuildSystem) *Addin {
	return &Addin{bs: bs}
}

// Load attaches the build stage to pipe at the build phase. It is a no-op
// when no backend resolved; returns the created stage, or nil when nothing
// was attached.
func (a *Addin) Load(pipe Pipeline, opts ...BuildStageOption) *BuildStage {
	if a.bs.Backend() == nil {
		slog.Debug("Skipping pipeline attachment, no backend resolved", "root", a.bs.Root())
		return nil
	}

	stage := NewBuildStage(a.bs, opts...)
	a.stageID = pipe.Attach(PhaseBuild, BuildPriority, stage)
	slog.Debug("Attached build stage",
		"backend", a.bs.Backend().Name(), "phase", PhaseBuild.String(), "priority", BuildPriority)
	return stage
}

// Unload detaches the stage attached by Load, if any.
func (a *Addin) Unload(pipe Pipeline) {
	if a.stageID != 0 {
		pipe.Detach(a.stageID)
		a.stageID = 0
	}
}
