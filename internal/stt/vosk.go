package stt

import (
	"encoding/json"
	"fmt"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"
)

// Model wraps a Vosk model loaded once at process start. The underlying
// model is read-only; each listen cycle allocates its own recognizer from it.
type Model struct {
	model  *vosk.VoskModel
	config Config
	mu     sync.Mutex
	closed bool
}

// voskResult represents the JSON result from Vosk
type voskResult struct {
	Text    string `json:"text"`
	Partial string `json:"partial,omitempty"`
}

// LoadModel loads the Vosk model from the configured path. A missing or
// unreadable model is a startup error; callers are expected to abort.
func LoadModel(config Config) (*Model, error) {
	// Suppress Vosk's own logging
	vosk.SetLogLevel(-1)

	model, err := vosk.NewModel(config.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", config.ModelPath, err)
	}
	if model == nil {
		return nil, fmt.Errorf("failed to load model from %s: model returned nil", config.ModelPath)
	}

	return &Model{model: model, config: config}, nil
}

// NewRecognizer allocates a fresh decoder for one listen cycle
func (m *Model) NewRecognizer() (Recognizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("model is closed")
	}

	rec, err := vosk.NewRecognizer(m.model, float64(m.config.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create recognizer: %w", err)
	}
	rec.SetWords(1)

	return &voskRecognizer{rec: rec}, nil
}

// Close frees the model. Recognizers allocated from it must be closed first.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.model.Free()
	m.closed = true
}

// voskRecognizer implements Recognizer on top of a Vosk decoder
type voskRecognizer struct {
	rec    *vosk.VoskRecognizer
	closed bool
}

// AcceptFrame feeds audio to the decoder and returns the current result
func (r *voskRecognizer) AcceptFrame(data []byte) (Result, error) {
	if r.closed {
		return Result{}, fmt.Errorf("recognizer is closed")
	}

	state := r.rec.AcceptWaveform(data)

	if state > 0 {
		// Segment boundary reached
		var res voskResult
		if err := json.Unmarshal([]byte(r.rec.Result()), &res); err != nil {
			return Result{}, fmt.Errorf("failed to parse result: %w", err)
		}
		return Result{Text: res.Text, Final: true}, nil
	}

	var res voskResult
	if err := json.Unmarshal([]byte(r.rec.PartialResult()), &res); err != nil {
		return Result{}, fmt.Errorf("failed to parse partial result: %w", err)
	}
	return Result{Text: res.Partial, Final: false}, nil
}

// FinalResult force-finalizes the decoder
func (r *voskRecognizer) FinalResult() (Result, error) {
	if r.closed {
		return Result{}, fmt.Errorf("recognizer is closed")
	}

	var res voskResult
	if err := json.Unmarshal([]byte(r.rec.FinalResult()), &res); err != nil {
		return Result{}, fmt.Errorf("failed to parse final result: %w", err)
	}
	return Result{Text: res.Text, Final: true}, nil
}

// Close frees the decoder
func (r *voskRecognizer) Close() {
	if r.closed {
		return
	}
	r.rec.Free()
	r.closed = true
}
