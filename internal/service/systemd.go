package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quickr-dev/labctl/internal/shell"
)

const DefaultUnitDir = "/etc/systemd/system"

// SystemdManager installs the agent as a systemd unit.
type SystemdManager struct {
	runner  shell.Runner
	unitDir string
}

func NewSystemdManager(runner shell.Runner, unitDir string) *SystemdManager {
	return &SystemdManager{runner: runner, unitDir: unitDir}
}

// UnitPath is where the unit file for spec is written.
func (m *SystemdManager) UnitPath(spec Spec) string {
	return filepath.Join(m.unitDir, spec.UnitName+".service")
}

// Install writes the unit file, reloads systemd, enables the unit and starts it.
func (m *SystemdManager) Install(ctx context.Context, spec Spec) error {
	if err := m.writeUnit(spec); err != nil {
		return err
	}

	if _, err := shell.Check(ctx, m.runner, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("reloading systemd daemon: %w", err)
	}

	if _, err := shell.Check(ctx, m.runner, "systemctl", "enable", spec.UnitName); err != nil {
		return fmt.Errorf("enabling systemd service %s: %w", spec.UnitName, err)
	}

	if _, err := shell.Check(ctx, m.runner, "systemctl", "start", spec.UnitName); err != nil {
		return fmt.Errorf("starting systemd service %s: %w", spec.UnitName, err)
	}

	return nil
}

func (m *SystemdManager) writeUnit(spec Spec) error {
	unitPath := m.UnitPath(spec)

	if err := os.MkdirAll(m.unitDir, 0755); err != nil {
		return fmt.Errorf("creating unit directory %s: %w", m.unitDir, err)
	}

	if err := os.WriteFile(unitPath, []byte(renderUnit(spec)), 0644); err != nil {
		return fmt.Errorf("writing systemd service file: %w", err)
	}

	return nil
}

func renderUnit(spec Spec) string {
	return fmt.Sprintf(`# %s
[Unit]
Description=%s
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart=%s
WorkingDirectory=%s
Restart=on-failure
RestartSec=10

[Install]
WantedBy=multi-user.target
`, spec.Description, spec.DisplayName, spec.BinaryPath, filepath.Dir(spec.BinaryPath))
}
