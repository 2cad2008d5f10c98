package audio

import (
	"context"
	"errors"
	"time"
)

// ErrDeviceUnavailable is returned when no usable capture device exists.
// The listen cycle converts it into a "no speech" outcome; it is never fatal.
var ErrDeviceUnavailable = errors.New("audio: no capture device available")

// CaptureConfig holds configuration for audio capture
type CaptureConfig struct {
	// SampleRate is the number of samples per second (Hz).
	// 16000 matches what the recognition model expects.
	SampleRate uint32

	// Channels is the number of audio channels (1 = mono, required for STT)
	Channels uint32

	// FrameSize is the number of samples per frame delivered to the recognizer
	FrameSize uint32

	// DeviceID is the audio device identifier ("" = default device)
	DeviceID string
}

// DefaultConfig returns the capture configuration used for tutoring turns
func DefaultConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate: 16000,
		Channels:   1,
		FrameSize:  4096, // 256ms at 16kHz
		DeviceID:   "",
	}
}

// Frame is one fixed-size block of signed 16-bit mono PCM samples.
// Frames live only for the duration of one listen cycle.
type Frame struct {
	Data      []byte    // Raw little-endian S16 audio data
	Timestamp time.Time // When the frame was captured
	Samples   uint32    // Number of audio samples in this frame
}

// Capturer is the interface for audio capture implementations
type Capturer interface {
	// Start begins audio capture
	Start(ctx context.Context) error

	// Stop stops audio capture and releases the device
	Stop() error

	// Frames returns a channel that receives captured frames
	Frames() <-chan Frame

	// Errors returns a channel that receives capture errors
	Errors() <-chan error

	// IsRunning returns true if capture is currently active
	IsRunning() bool
}

// NewCapturer creates a new audio capturer with the given configuration
func NewCapturer(config CaptureConfig) (Capturer, error) {
	return NewMalgoCapturer(config)
}
