package target

import (
	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	"git.home.luguber.info/inful/pybuilder/internal/pyenv"
)

// Synthesize derives build targets from installables for the project rooted
// at root. env is the resolved virtual environment (pyenv.None when absent)
// and b the resolved backend, which may be nil.
//
// Targets appear in installable order; within one installable the order is
// wheel, install, uninstall. Priorities are advisory metadata only.
//
// Per installable kind:
//   - sdist: a wheel-production target running the backend's wheel command
//     (skipped without a backend; run outside the environment when the
//     backend isolates itself), then install and uninstall targets.
//   - wheel: install and uninstall targets.
//   - tree: an editable install of the source path.
//
// Every sdist and wheel installable gets an uninstall target, even when its
// name degraded to Unknown; hosts present such targets as-is.
func Synthesize(installables []buildsys.Installable, env string, b backend.Backend, root string) []BuildTarget {
	var targets []BuildTarget

	for _, inst := range installables {
		switch inst.Kind {
		case backend.KindSdist:
			if b != nil {
				wheelEnv := env
				if b.Isolated() {
					// Isolated frontends provision their own environment.
					wheelEnv = pyenv.None
				}
				targets = append(targets, BuildTarget{
					Name:     "Build wheel",
					Action:   ActionWheel,
					Priority: PriorityWheel,
					Env:      wheelEnv,
					Cwd:      root,
					argv:     b.WheelArgv(),
				})
			}
			targets = append(targets, installPair(inst, env, root)...)

		case backend.KindWheel:
			targets = append(targets, installPair(inst, env, root)...)

		case backend.KindTree:
			targets = append(targets, BuildTarget{
				Name:     "Install " + inst.Name + " (editable)",
				Action:   ActionInstallEditable,
				Priority: PriorityInstall,
				Env:      env,
				Cwd:      root,
				argv:     []string{"python", "-m", "pip", "install", "--editable", inst.Path},
			})
		}
	}
	return targets
}

func installPair(inst buildsys.Installable, env, root string) []BuildTarget {
	return []BuildTarget{{
		Name:     "Install " + inst.Name,
		Action:   ActionInstall,
		Priority: PriorityInstall,
		Env:      env,
		Cwd:      root,
		argv:     []string{"python", "-m", "pip", "install", inst.Path},
	}, {
		Name:     "Uninstall " + inst.Name,
		Action:   ActionUninstall,
		Priority: PriorityUninstall,
		Env:      env,
		Cwd:      root,
		argv:     []string{"python", "-m", "pip", "uninstall", "--yes", inst.Name},
	}}
}
