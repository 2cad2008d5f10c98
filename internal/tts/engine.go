package tts

import "context"

// Engine defines the interface for speech synthesis engines. Engines of
// this kind are not reentrant: an Engine instance must only ever be driven
// by the single worker goroutine that owns it.
type Engine interface {
	// Speak synthesizes and plays the text, blocking until playback ends
	Speak(ctx context.Context, text string) error

	// Close releases engine resources
	Close() error
}

// Config holds synthesis settings
type Config struct {
	// Command is the synthesis binary
	Command string
	// Voice selects the synthesis voice
	Voice string
	// Rate is the speaking rate in words per minute
	Rate int
}

// DefaultConfig returns the synthesis settings used by the assistant
func DefaultConfig() Config {
	return Config{
		Command: "espeak-ng",
		Voice:   "en-us",
		Rate:    172,
	}
}

// EngineFactory creates the engine inside the worker that will own it
type EngineFactory func() (Engine, error)
