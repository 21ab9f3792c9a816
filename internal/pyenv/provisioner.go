package pyenv

import (
	"bytes"
	"context"
	"os/exec"

	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
)

// VenvProvisioner provisions environments with the `python3 -m venv` module.
type VenvProvisioner struct {
	// Python overrides the interpreter used to create environments
	// (default "python3").
	Python string
}

func (p *VenvProvisioner) python() string {
	if p.Python != "" {
		return p.Python
	}
	return "python3"
}

// Provision implements Provisioner.
func (p *VenvProvisioner) Provision(ctx context.Context, path string, upgrade bool) error {
	args := []string{"-m", "venv"}
	if upgrade {
		args = append(args, "--upgrade", "--upgrade-deps")
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, p.python(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return pberrors.EnvProvisionFailed(path, err).
			WithContext("stderr", stderr.String()).
			WithContext("upgrade", upgrade)
	}
	return nil
}
