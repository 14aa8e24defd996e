package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickr-dev/labctl/internal/shell"
	"github.com/quickr-dev/labctl/internal/shell/shelltest"
)

const agentPath = `C:\Program Files\ComputerAgent\agent.exe`

func TestSCManagerInstall(t *testing.T) {
	runner := shelltest.NewRunner()

	err := NewSCManager(runner).Install(context.Background(), AgentSpec(agentPath))
	require.NoError(t, err)

	require.Len(t, runner.Calls, 3)
	assert.Equal(t, shelltest.Call{Name: "sc", Args: []string{
		"create", "ComputerAgent",
		"binPath=", agentPath,
		"start=", "auto",
		"DisplayName=", "Computer Management Agent",
	}}, runner.Calls[0])
	assert.Equal(t, shelltest.Call{Name: "sc", Args: []string{
		"description", "ComputerAgent", "Allows remote management of this computer",
	}}, runner.Calls[1])
	assert.Equal(t, shelltest.Call{Name: "sc", Args: []string{"start", "ComputerAgent"}}, runner.Calls[2])
}

func TestSCManagerCreateFailureAbortsRemainingSteps(t *testing.T) {
	runner := shelltest.NewRunner()
	runner.Default = shelltest.Response{Result: shell.Result{
		Stdout:   "[SC] CreateService FAILED 1073:\r\n\r\nThe specified service already exists.\r\n",
		ExitCode: 1073,
	}}

	err := NewSCManager(runner).Install(context.Background(), AgentSpec(agentPath))
	require.Error(t, err)

	var exitErr *shell.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1073, exitErr.Result.ExitCode)
	assert.Contains(t, err.Error(), "creating service ComputerAgent")
	assert.Contains(t, err.Error(), "already exists")
	assert.Len(t, runner.Calls, 1)
}

func TestSCManagerStartFailure(t *testing.T) {
	runner := shelltest.NewRunner().On("sc start ComputerAgent", shell.Result{ExitCode: 1053}, nil)

	err := NewSCManager(runner).Install(context.Background(), AgentSpec(agentPath))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting service ComputerAgent")
	assert.Len(t, runner.Calls, 3)
}

func TestSCManagerLaunchFailure(t *testing.T) {
	runner := shelltest.NewRunner()
	runner.Default = shelltest.Response{Err: &shell.LaunchError{Name: "sc", Err: errors.New("not found")}}

	err := NewSCManager(runner).Install(context.Background(), AgentSpec(agentPath))

	var launchErr *shell.LaunchError
	require.True(t, errors.As(err, &launchErr))
}

func TestSystemdManagerInstall(t *testing.T) {
	unitDir := t.TempDir()
	runner := shelltest.NewRunner()
	m := NewSystemdManager(runner, unitDir)
	spec := AgentSpec("/opt/ComputerAgent/agent")

	require.NoError(t, m.Install(context.Background(), spec))

	data, err := os.ReadFile(filepath.Join(unitDir, "computer-agent.service"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Description=Computer Management Agent")
	assert.Contains(t, string(data), "ExecStart=/opt/ComputerAgent/agent")
	assert.Contains(t, string(data), "WorkingDirectory=/opt/ComputerAgent")

	assert.Equal(t, []string{
		"systemctl daemon-reload",
		"systemctl enable computer-agent",
		"systemctl start computer-agent",
	}, runner.Rendered())
}

func TestSystemdManagerEnableFailure(t *testing.T) {
	runner := shelltest.NewRunner().On("systemctl enable computer-agent",
		shell.Result{Stderr: "Failed to enable unit", ExitCode: 1}, nil)

	err := NewSystemdManager(runner, t.TempDir()).Install(context.Background(), AgentSpec("/opt/ComputerAgent/agent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabling systemd service computer-agent")
	assert.Equal(t, []string{"systemctl daemon-reload", "systemctl enable computer-agent"}, runner.Rendered())
}
