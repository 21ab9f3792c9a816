// Package target synthesizes runnable build targets from the installable
// artifacts of a project: wheel production, installation into the project
// environment, editable installs, and uninstallation.
package target

import (
	"git.home.luguber.info/inful/pybuilder/internal/pyenv"
)

// Action classifies what a target does when launched.
type Action string

const (
	ActionWheel           Action = "wheel"
	ActionInstall         Action = "install"
	ActionInstallEditable Action = "install editable"
	ActionUninstall       Action = "uninstall"
)

// Advisory priorities for hosts that group or order targets. Synthesis
// order itself follows the installable list and never sorts by priority.
const (
	PriorityWheel     = 100
	PriorityInstall   = 200
	PriorityUninstall = 400
)

// BuildTarget is one runnable command a host can offer for the project.
type BuildTarget struct {
	// Name is the human-readable target label.
	Name string
	// Action classifies the target.
	Action Action
	// Priority is advisory grouping metadata.
	Priority int
	// Env is the virtual environment the command runs against
	// (pyenv.None for unisolated execution).
	Env string
	// Cwd is the working directory for the command.
	Cwd string

	argv []string
}

// Argv returns the target's command line with the leading binary rewritten
// into the target environment. With Env unset the stored argv is returned
// as-is.
func (t BuildTarget) Argv() []string {
	return pyenv.BinPath(t.Env, t.argv)
}
