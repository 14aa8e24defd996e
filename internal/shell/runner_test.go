package shell

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestExecRunnerCapturesStreams(t *testing.T) {
	requirePosixShell(t)

	res, err := NewExecRunner(nil).Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, res.Success())
}

func TestExecRunnerNonZeroExitIsNotAnError(t *testing.T) {
	requirePosixShell(t)

	res, err := NewExecRunner(nil).Run(context.Background(), "sh", "-c", "echo denied >&2; exit 3")
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
	assert.Equal(t, "denied", res.Output())
}

func TestExecRunnerLaunchFailure(t *testing.T) {
	_, err := NewExecRunner(nil).Run(context.Background(), "labctl-no-such-binary")
	require.Error(t, err)

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "labctl-no-such-binary", launchErr.Name)
}

func TestExecRunnerLaunchFailureLogsBelowWarn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	_, err := NewExecRunner(zap.New(core)).Run(context.Background(), "labctl-no-such-binary")
	require.Error(t, err)
	assert.Zero(t, logs.Len())
}

func TestCheckWrapsNonZeroExit(t *testing.T) {
	requirePosixShell(t)

	_, err := Check(context.Background(), NewExecRunner(nil), "sh", "-c", "echo boom; exit 1")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Result.ExitCode)
	assert.Contains(t, err.Error(), "boom")
}

func TestResultOutputPrefersStderr(t *testing.T) {
	assert.Equal(t, "e", Result{Stdout: "o", Stderr: " e \n"}.Output())
	assert.Equal(t, "o", Result{Stdout: "o\r\n"}.Output())
}
