package stt

// Result represents a speech recognition result
type Result struct {
	// Text is the recognized text
	Text string

	// Final indicates the decoder reached a stable segment boundary.
	// Non-final results are partial and will be superseded.
	Final bool
}

// Config holds configuration for the recognition model
type Config struct {
	// ModelPath is the path to the model directory
	ModelPath string

	// SampleRate is the audio sample rate in Hz
	SampleRate int
}

// DefaultConfig returns a default recognition configuration
func DefaultConfig(modelPath string) Config {
	return Config{
		ModelPath:  modelPath,
		SampleRate: 16000,
	}
}

// Recognizer is a streaming decoder for a single utterance. A recognizer is
// owned by exactly one in-flight listen cycle and must never be shared.
type Recognizer interface {
	// AcceptFrame feeds one audio frame (16-bit little-endian PCM) to the
	// decoder and returns the current partial or final result.
	AcceptFrame(data []byte) (Result, error)

	// FinalResult force-finalizes the decoder and returns whatever text it
	// accumulated. The decoder state is reset afterwards.
	FinalResult() (Result, error)

	// Close frees the decoder
	Close()
}

// RecognizerFactory allocates a fresh decoder per listen cycle. The loaded
// model behind the factory is read-only and safe to share across cycles.
type RecognizerFactory interface {
	NewRecognizer() (Recognizer, error)
}
