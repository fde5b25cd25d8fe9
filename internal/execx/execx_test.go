package execx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCapturesOutput(t *testing.T) {
	out, err := Local{}.Execute(context.Background(), Request{
		Name:    "sh",
		Args:    []string{"-c", "echo hello; echo oops >&2"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)
}

func TestLocalNonZeroIsNotAnError(t *testing.T) {
	out, err := Local{}.Execute(context.Background(), Request{
		Name:    "sh",
		Args:    []string{"-c", "exit 3"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
}

func TestLocalSpawnError(t *testing.T) {
	_, err := Local{}.Execute(context.Background(), Request{
		Name:    "definitely-not-a-real-binary-xyz",
		Capture: true,
	})
	require.Error(t, err)

	var spawnErr *SpawnError
	assert.True(t, errors.As(err, &spawnErr))
}

func TestLocalInteractiveInterruptIsGraceful(t *testing.T) {
	// kill -INT $$ makes the child die from SIGINT, which os/exec reports
	// as exit code -1.
	out, err := Local{}.Execute(context.Background(), Request{
		Name:        "sh",
		Args:        []string{"-c", "kill -INT $$"},
		Capture:     true,
		Interactive: true,
	})
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
}

func TestLocalInteractiveRealFailureStillFails(t *testing.T) {
	out, err := Local{}.Execute(context.Background(), Request{
		Name:        "sh",
		Args:        []string{"-c", "exit 1"},
		Capture:     true,
		Interactive: true,
	})
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
}

func TestLocalEnvOverride(t *testing.T) {
	out, err := Local{}.Execute(context.Background(), Request{
		Name:    "sh",
		Args:    []string{"-c", "echo $FSBUILD_TEST_VAR"},
		Env:     []string{"PATH=/usr/bin:/bin", "FSBUILD_TEST_VAR=42"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.Stdout)
}

func TestShell(t *testing.T) {
	out, err := Shell(context.Background(), Local{}, "echo a | tr a b", nil, true)
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, "b\n", out.Stdout)
}
