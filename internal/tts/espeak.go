package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// EspeakEngine synthesizes speech by running the espeak-ng binary, one
// process per utterance. Playback goes straight to the system audio device,
// so driving two processes at once garbles output; the speech worker is the
// only caller.
type EspeakEngine struct {
	config Config
}

// NewEspeakEngine creates an espeak-ng backed engine
func NewEspeakEngine(config Config) (*EspeakEngine, error) {
	if config.Command == "" {
		config.Command = "espeak-ng"
	}
	if _, err := exec.LookPath(config.Command); err != nil {
		return nil, fmt.Errorf("synthesis binary not found: %w", err)
	}
	return &EspeakEngine{config: config}, nil
}

// Speak synthesizes and plays the text, blocking until playback ends
func (e *EspeakEngine) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	args := []string{}
	if e.config.Voice != "" {
		args = append(args, "-v", e.config.Voice)
	}
	if e.config.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(e.config.Rate))
	}
	// Text on stdin avoids argv length and quoting issues
	args = append(args, "--stdin")

	cmd := exec.CommandContext(ctx, e.config.Command, args...)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("synthesis failed: %w: %s", err, msg)
		}
		return fmt.Errorf("synthesis failed: %w", err)
	}
	return nil
}

// Close releases engine resources. Nothing is held between utterances.
func (e *EspeakEngine) Close() error {
	return nil
}
