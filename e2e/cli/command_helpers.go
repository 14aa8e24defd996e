package e2e_cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func binaryPath(t *testing.T, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	path, err := filepath.Abs(filepath.Join("../../bin", name))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not built, run go build -o bin/ ./cmd/... first", path)
	}
	return path
}

// runCommand returns combined output and exit code.
func runCommand(t *testing.T, name string, env []string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath(t, name), args...)
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()

	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(output), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("running %s: %v", name, err)
	}
	return string(output), 0
}

func runFwctl(t *testing.T, args ...string) (string, int) {
	return runCommand(t, "fwctl", nil, args...)
}

func runInstaller(t *testing.T, env []string, args ...string) (string, int) {
	return runCommand(t, "agent-installer", env, args...)
}
