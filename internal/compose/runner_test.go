package compose

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureExec swaps the exec hook for one that records the engine invocation
// and runs a harmless command instead.
func captureExec(t *testing.T, gotName *string, gotArgs *[]string) {
	t.Helper()
	orig := execCommandContext
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		*gotName = name
		*gotArgs = args
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { execCommandContext = orig })
}

func TestUp_BuildsComposeCommand(t *testing.T) {
	var name string
	var args []string
	captureExec(t, &name, &args)

	r := NewRunner("docker", "qd-prod-sql-query")
	require.NoError(t, r.Up(context.Background(), "/state/prod-sql-query/docker-compose.yml", UpOptions{Pull: true}))

	assert.Equal(t, "docker", name)
	assert.Equal(t, []string{
		"compose", "--project-name", "qd-prod-sql-query",
		"--file", "/state/prod-sql-query/docker-compose.yml",
		"up", "--pull", "always",
	}, args)
}

func TestUp_NoPullOmitsFlag(t *testing.T) {
	var name string
	var args []string
	captureExec(t, &name, &args)

	r := NewRunner("podman", "qd")
	require.NoError(t, r.Up(context.Background(), "/tmp/f.yml", UpOptions{}))

	assert.Equal(t, "podman", name)
	assert.NotContains(t, args, "--pull")
}

func TestDown_BuildsComposeCommand(t *testing.T) {
	var name string
	var args []string
	captureExec(t, &name, &args)

	r := NewRunner("docker", "qd")
	require.NoError(t, r.Down(context.Background(), "/tmp/f.yml"))

	assert.Equal(t, []string{
		"compose", "--project-name", "qd",
		"--file", "/tmp/f.yml",
		"down", "--remove-orphans",
	}, args)
}

func TestUpStreaming_ForwardsCombinedOutput(t *testing.T) {
	orig := execCommandContext
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo one; echo two 1>&2")
	}
	t.Cleanup(func() { execCommandContext = orig })

	var lines []string
	r := NewRunner("docker", "qd")
	err := r.UpStreaming(context.Background(), "/tmp/f.yml", UpOptions{}, func(line string) {
		lines = append(lines, line)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestUpStreaming_ReportsExitError(t *testing.T) {
	orig := execCommandContext
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo failing; exit 3")
	}
	t.Cleanup(func() { execCommandContext = orig })

	var lines []string
	r := NewRunner("docker", "qd")
	err := r.UpStreaming(context.Background(), "/tmp/f.yml", UpOptions{}, func(line string) {
		lines = append(lines, line)
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"failing"}, lines)
}
