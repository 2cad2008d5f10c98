package tts

import (
	"context"
	"log/slog"
	"sync"
)

// job is one queue entry. stop is the shutdown sentinel: because the queue
// is FIFO, every job enqueued before it is spoken first.
type job struct {
	text string
	stop bool
}

// Worker is the isolated speech output worker. It exclusively owns one
// synthesis Engine for its lifetime and consumes a FIFO job queue, so the
// engine is never driven from more than one goroutine. Enqueue never blocks
// the request path; playback latency is invisible to callers.
type Worker struct {
	newEngine EngineFactory
	queueSize int
	log       *slog.Logger

	mu   sync.Mutex
	jobs chan job
	done chan struct{} // closed when the worker loop exits
}

// NewWorker creates a speech worker. The engine is not created until the
// first Enqueue starts the worker goroutine.
func NewWorker(factory EngineFactory, queueSize int, log *slog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 32
	}
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		newEngine: factory,
		queueSize: queueSize,
		log:       log,
	}
}

// Enqueue appends a speech job and returns immediately. The worker is
// lazily started on first use and restarted if it died. When the queue is
// full the job is dropped: audio output is best-effort and must never stall
// a turn.
func (w *Worker) Enqueue(text string) {
	if text == "" {
		return
	}

	w.mu.Lock()
	w.ensureRunningLocked()
	jobs := w.jobs
	w.mu.Unlock()

	select {
	case jobs <- job{text: text}:
	default:
		w.log.Warn("speech queue full, dropping job")
	}
}

// Shutdown enqueues the stop sentinel and waits for the worker to drain
// the remaining jobs and release the engine. Safe to call when the worker
// never started.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	jobs, done := w.jobs, w.done
	w.mu.Unlock()

	if jobs == nil {
		return
	}

	select {
	case jobs <- job{stop: true}:
	case <-done:
		return
	}
	<-done
}

// IsAlive reports whether the worker goroutine is currently running
func (w *Worker) IsAlive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.jobs == nil {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// ensureRunningLocked starts the worker goroutine if it is not running.
// Caller holds w.mu.
func (w *Worker) ensureRunningLocked() {
	if w.jobs != nil {
		select {
		case <-w.done:
			// Worker died; fall through and start a fresh one
		default:
			return
		}
	}

	w.jobs = make(chan job, w.queueSize)
	w.done = make(chan struct{})
	go w.run(w.jobs, w.done)
}

// run is the worker loop. It is the only goroutine that ever touches the
// engine it creates.
func (w *Worker) run(jobs chan job, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("speech worker panicked", "panic", r)
		}
	}()

	engine, err := w.newEngine()
	if err != nil {
		w.log.Error("failed to create synthesis engine", "error", err)
		return
	}
	defer engine.Close()

	for j := range jobs {
		if j.stop {
			return
		}
		if err := engine.Speak(context.Background(), j.text); err != nil {
			// One failed utterance never kills the worker
			w.log.Error("speech synthesis failed", "error", err)
		}
	}
}
