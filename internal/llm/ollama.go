// Package llm runs prompts through a locally installed language model
// process and post-processes its output.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoOutput is returned when the model process exits cleanly but
// produces nothing. Callers degrade the turn instead of failing it.
var ErrNoOutput = errors.New("llm: model produced no output")

// Runner executes the inference process: prompt on stdin, stdout captured.
// It exists so tests can substitute the external process.
type Runner func(ctx context.Context, command string, args []string, stdin string) (string, error)

// Client invokes the external model process, one blocking call per turn
type Client struct {
	command string
	args    []string
	runner  Runner
}

// NewClient creates a client for the given inference command
// (e.g. "ollama", ["run", "qwen2.5:7b"]).
func NewClient(command string, args []string) *Client {
	return &Client{
		command: command,
		args:    args,
		runner:  runProcess,
	}
}

// WithRunner replaces the process runner, for tests
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

// Infer sends the composed prompt to the model process and returns its
// whitespace-trimmed output. Launch failure, non-zero exit, and empty
// output are all reported as errors; the orchestrator converts them into
// a degraded response.
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	out, err := c.runner(ctx, c.command, c.args, prompt)
	if err != nil {
		return "", fmt.Errorf("inference process failed: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrNoOutput
	}
	return out, nil
}

// runProcess is the default Runner backed by os/exec
func runProcess(ctx context.Context, command string, args []string, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}

	return stdout.String(), nil
}
