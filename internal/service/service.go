// Package service registers the agent binary with the OS service manager and
// starts it.
package service

import (
	"context"
	"runtime"

	"github.com/quickr-dev/labctl/internal/shell"
)

const (
	AgentServiceName = "ComputerAgent"
	AgentUnitName    = "computer-agent"
	AgentDisplayName = "Computer Management Agent"
	AgentDescription = "Allows remote management of this computer"
)

// Spec describes the service to create.
type Spec struct {
	Name        string
	UnitName    string // systemd unit name, without .service
	DisplayName string
	Description string
	BinaryPath  string
}

// AgentSpec is the lab agent service bound to binaryPath.
func AgentSpec(binaryPath string) Spec {
	return Spec{
		Name:        AgentServiceName,
		UnitName:    AgentUnitName,
		DisplayName: AgentDisplayName,
		Description: AgentDescription,
		BinaryPath:  binaryPath,
	}
}

// Manager creates, describes and starts a service. Every sub-step must
// succeed; the first failure stops the rest.
type Manager interface {
	Install(ctx context.Context, spec Spec) error
}

// NewManager picks sc.exe on Windows and systemd elsewhere.
func NewManager(runner shell.Runner) Manager {
	if runtime.GOOS == "windows" {
		return NewSCManager(runner)
	}
	return NewSystemdManager(runner, DefaultUnitDir)
}
