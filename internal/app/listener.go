package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vision-27/Teachi/internal/audio"
	"github.com/vision-27/Teachi/internal/stt"
)

// micMu serializes microphone use across concurrent turns. The host audio
// device is a serially-contended resource: capture must be exclusive for
// the duration of a listen cycle.
var micMu sync.Mutex

// CapturerFactory opens a fresh capture stream per listen cycle
type CapturerFactory func() (audio.Capturer, error)

// ListenerConfig holds endpoint detection settings
type ListenerConfig struct {
	// Timeout is the maximum wait for speech to start
	Timeout time.Duration
	// PhraseTimeLimit is the silence window that finalizes an utterance
	PhraseTimeLimit time.Duration
}

// DefaultListenerConfig returns the detection settings used by the assistant
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		Timeout:         5 * time.Second,
		PhraseTimeLimit: 5 * time.Second,
	}
}

// Listener captures one utterance from the microphone and transcribes it.
// Each Listen call allocates its own decoder from the shared model, feeds it
// frames, and decides when the utterance is done. The wait is bounded: a
// cycle never lasts longer than Timeout + PhraseTimeLimit.
type Listener struct {
	config     ListenerConfig
	model      stt.RecognizerFactory
	newCapture CapturerFactory
	log        *slog.Logger
}

// NewListener creates a listener over the shared recognition model
func NewListener(config ListenerConfig, model stt.RecognizerFactory, capture CapturerFactory, log *slog.Logger) *Listener {
	if log == nil {
		log = slog.Default()
	}
	return &Listener{
		config:     config,
		model:      model,
		newCapture: capture,
		log:        log,
	}
}

// Listen runs one listen cycle and returns the final transcript, or "" when
// no speech was detected. Device and decoder failures are absorbed: they end
// the cycle with "no speech" and are never propagated, and the capture
// resources are released on every path.
func (l *Listener) Listen(ctx context.Context) string {
	micMu.Lock()
	defer micMu.Unlock()

	rec, err := l.model.NewRecognizer()
	if err != nil {
		l.log.Error("failed to create recognizer", "error", err)
		return ""
	}
	defer rec.Close()

	capturer, err := l.newCapture()
	if err != nil {
		l.log.Error("failed to create capturer", "error", err)
		return ""
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := capturer.Start(ctx); err != nil {
		l.log.Warn("microphone unavailable", "error", err)
		return ""
	}
	defer capturer.Stop()

	start := time.Now()
	lastVoice := start
	hardDeadline := start.Add(l.config.Timeout + l.config.PhraseTimeLimit)

	for {
		now := time.Now()
		if now.After(hardDeadline) {
			// Nothing finalized within the ceiling: no speech
			return ""
		}

		select {
		case <-ctx.Done():
			return ""

		case <-time.After(time.Until(hardDeadline)):
			return ""

		case frame, ok := <-capturer.Frames():
			if !ok {
				return ""
			}

			res, err := rec.AcceptFrame(frame.Data)
			if err != nil {
				l.log.Error("decoder error, abandoning listen cycle", "error", err)
				return ""
			}

			if res.Final && res.Text != "" {
				return res.Text
			}
			if res.Text != "" || res.Final {
				// Speech observed, or an empty segment boundary: the
				// speaker is (or just was) active
				lastVoice = time.Now()
			}

			if time.Since(lastVoice) > l.config.PhraseTimeLimit {
				// Silence window elapsed: force-finalize whatever the
				// decoder accumulated
				final, err := rec.FinalResult()
				if err != nil {
					l.log.Error("failed to finalize utterance", "error", err)
					return ""
				}
				return final.Text
			}

		case err, ok := <-capturer.Errors():
			if !ok {
				return ""
			}
			// Overflow and transient device errors: log and keep listening
			l.log.Warn("capture error", "error", err)
		}
	}
}
