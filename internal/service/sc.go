package service

import (
	"context"
	"fmt"

	"github.com/quickr-dev/labctl/internal/shell"
)

// SCManager drives the Windows Service Control Manager through sc.exe.
type SCManager struct {
	runner shell.Runner
}

func NewSCManager(runner shell.Runner) *SCManager {
	return &SCManager{runner: runner}
}

// Install runs sc create, sc description and sc start in that order. sc.exe
// wants each "option=" and its value as separate arguments.
func (m *SCManager) Install(ctx context.Context, spec Spec) error {
	if _, err := shell.Check(ctx, m.runner, "sc",
		"create", spec.Name,
		"binPath=", spec.BinaryPath,
		"start=", "auto",
		"DisplayName=", spec.DisplayName,
	); err != nil {
		return fmt.Errorf("creating service %s: %w", spec.Name, err)
	}

	if _, err := shell.Check(ctx, m.runner, "sc", "description", spec.Name, spec.Description); err != nil {
		return fmt.Errorf("setting description of service %s: %w", spec.Name, err)
	}

	if _, err := shell.Check(ctx, m.runner, "sc", "start", spec.Name); err != nil {
		return fmt.Errorf("starting service %s: %w", spec.Name, err)
	}

	return nil
}
