package compose

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Test hook.
var execCommandContext = exec.CommandContext

// Runner drives `<engine> compose` for a rendered compose file.
type Runner struct {
	engine  string
	project string
}

// NewRunner returns a runner for the given engine (docker or podman) and
// compose project name.
func NewRunner(engine, project string) *Runner {
	return &Runner{engine: engine, project: project}
}

// UpOptions controls how the services are started.
type UpOptions struct {
	// Pull forces pulling the image before starting. Off means the engine's
	// default policy (pull only when missing).
	Pull bool
}

func (r *Runner) command(ctx context.Context, file string, action string, extra ...string) *exec.Cmd {
	args := []string{"compose", "--project-name", r.project, "--file", file, action}
	args = append(args, extra...)
	return execCommandContext(ctx, r.engine, args...)
}

// Up runs `compose up` in the foreground with the terminal attached, for the
// CLI path. It blocks until the services stop or ctx is cancelled.
func (r *Runner) Up(ctx context.Context, file string, opts UpOptions) error {
	cmd := r.command(ctx, file, "up", upArgs(opts)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s compose up: %w", r.engine, err)
	}
	return nil
}

// UpStreaming runs `compose up` and forwards every combined stdout/stderr
// line to sink, for the TUI path where the terminal belongs to bubbletea.
func (r *Runner) UpStreaming(ctx context.Context, file string, opts UpOptions, sink func(line string)) error {
	cmd := r.command(ctx, file, "up", upArgs(opts)...)
	return runStreaming(cmd, sink)
}

// Down stops and removes the services of a previously rendered file.
func (r *Runner) Down(ctx context.Context, file string) error {
	cmd := r.command(ctx, file, "down", "--remove-orphans")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s compose down: %w", r.engine, err)
	}
	return nil
}

// DownStreaming is Down with the output forwarded to sink instead of the
// terminal.
func (r *Runner) DownStreaming(ctx context.Context, file string, sink func(line string)) error {
	cmd := r.command(ctx, file, "down", "--remove-orphans")
	return runStreaming(cmd, sink)
}

func upArgs(opts UpOptions) []string {
	if opts.Pull {
		return []string{"--pull", "always"}
	}
	return nil
}

func runStreaming(cmd *exec.Cmd, sink func(line string)) error {
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			sink(scanner.Text())
		}
	}()

	err := cmd.Wait()
	pw.Close()
	<-done
	if err != nil {
		return fmt.Errorf("%s exited: %w", cmd.Path, err)
	}
	return nil
}
