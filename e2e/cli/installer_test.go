package e2e_cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallerVersion(t *testing.T) {
	output, code := runInstaller(t, nil, "version")
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, output)
}

func TestInstallerRenderThenRefuseWithoutPrivileges(t *testing.T) {
	// Geteuid is -1 on windows
	if os.Geteuid() <= 0 {
		t.Skip("needs an unprivileged unix user")
	}

	dir := t.TempDir()
	bootstrapFile := filepath.Join(dir, "agent-installer.yaml")
	installDir := filepath.Join(dir, "ComputerAgent")

	output, code := runInstaller(t, nil, "render", "--server-url", "http://127.0.0.1:1", "--room-id", "e2e", "--out", bootstrapFile)
	require.Equal(t, 0, code, output)
	requireFile(t, bootstrapFile)

	output, code = runInstaller(t, nil, "--config", bootstrapFile, "--install-dir", installDir)
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "This script must be run with administrator privileges.")
	assert.NoDirExists(t, installDir)
}

func TestInstallerMissingConfig(t *testing.T) {
	output, code := runInstaller(t, []string{"AGENT_INSTALLER_SERVER_URL=", "AGENT_INSTALLER_TOKEN="},
		"--install-dir", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, output, "is required")
}

// TestInstallerFullRun installs a real service; run it only on a disposable
// machine as root/administrator.
func TestInstallerFullRun(t *testing.T) {
	if !e2eEnabled("INSTALL") {
		t.Skip("set E2E_INSTALL=1 on a disposable machine to install the service")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/download/agent/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "#!/bin/sh\nsleep infinity\n")
	})
	mux.HandleFunc("/api/computers/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	installDir := filepath.Join(os.TempDir(), "ComputerAgent-e2e")
	output, code := runInstaller(t, nil,
		"--server-url", server.URL, "--room-id", "e2e", "--token", "e2e-token", "--install-dir", installDir)

	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Computer successfully registered!")
	requireAgentConfigValue(t, installDir, "server_url", server.URL+"/api")
	requireAgentConfigValue(t, installDir, "installation_token", "e2e-token")

	output, code = runInstaller(t, nil, "history", "--install-dir", installDir)
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "register")
}
