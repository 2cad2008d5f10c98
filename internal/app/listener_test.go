package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vision-27/Teachi/internal/audio"
	"github.com/vision-27/Teachi/internal/stt"
)

// scriptedRecognizer replays a fixed sequence of decode results
type scriptedRecognizer struct {
	results   []stt.Result
	i         int
	acceptErr error
	final     stt.Result
	closed    bool
}

func (r *scriptedRecognizer) AcceptFrame(data []byte) (stt.Result, error) {
	if r.acceptErr != nil {
		return stt.Result{}, r.acceptErr
	}
	if r.i < len(r.results) {
		res := r.results[r.i]
		r.i++
		return res, nil
	}
	return stt.Result{}, nil
}

func (r *scriptedRecognizer) FinalResult() (stt.Result, error) {
	return r.final, nil
}

func (r *scriptedRecognizer) Close() { r.closed = true }

type fakeFactory struct {
	rec    *scriptedRecognizer
	newErr error
}

func (f *fakeFactory) NewRecognizer() (stt.Recognizer, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	return f.rec, nil
}

// fakeCapturer emits frames on a fixed interval until stopped
type fakeCapturer struct {
	frames   chan audio.Frame
	errs     chan error
	startErr error
	interval time.Duration
	cancel   context.CancelFunc
	stopped  bool
}

func newFakeCapturer(interval time.Duration) *fakeCapturer {
	return &fakeCapturer{
		frames:   make(chan audio.Frame, 16),
		errs:     make(chan error, 4),
		interval: interval,
	}
}

func (c *fakeCapturer) Start(ctx context.Context) error {
	if c.startErr != nil {
		return c.startErr
	}
	ctx, c.cancel = context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case c.frames <- audio.Frame{Data: make([]byte, 8), Timestamp: time.Now(), Samples: 4}:
				default:
				}
			}
		}
	}()
	return nil
}

func (c *fakeCapturer) Stop() error {
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

func (c *fakeCapturer) Frames() <-chan audio.Frame { return c.frames }
func (c *fakeCapturer) Errors() <-chan error       { return c.errs }
func (c *fakeCapturer) IsRunning() bool            { return !c.stopped }

var _ audio.Capturer = (*fakeCapturer)(nil)

func shortConfig() ListenerConfig {
	return ListenerConfig{
		Timeout:         50 * time.Millisecond,
		PhraseTimeLimit: 50 * time.Millisecond,
	}
}

func TestListenReturnsFinalTranscript(t *testing.T) {
	rec := &scriptedRecognizer{
		results: []stt.Result{
			{Text: "what is", Final: false},
			{Text: "what is evaporation", Final: true},
		},
	}
	capturer := newFakeCapturer(time.Millisecond)
	l := NewListener(shortConfig(), &fakeFactory{rec: rec}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	got := l.Listen(context.Background())
	if got != "what is evaporation" {
		t.Fatalf("Listen() = %q, want %q", got, "what is evaporation")
	}
	if !rec.closed {
		t.Fatal("decoder not released after the cycle")
	}
	if !capturer.stopped {
		t.Fatal("capture stream not released after the cycle")
	}
}

func TestListenSilenceReturnsEmpty(t *testing.T) {
	// Decoder never produces text; the cycle must end within the hard
	// ceiling and report no speech.
	rec := &scriptedRecognizer{}
	capturer := newFakeCapturer(time.Millisecond)
	l := NewListener(shortConfig(), &fakeFactory{rec: rec}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	start := time.Now()
	got := l.Listen(context.Background())
	elapsed := time.Since(start)

	if got != "" {
		t.Fatalf("Listen() = %q, want empty transcript", got)
	}
	ceiling := shortConfig().Timeout + shortConfig().PhraseTimeLimit + 500*time.Millisecond
	if elapsed > ceiling {
		t.Fatalf("listen cycle took %v, ceiling is %v", elapsed, ceiling)
	}
}

func TestListenForceFinalizesAfterSilenceWindow(t *testing.T) {
	// Speech observed early, then silence: the phrase limit elapses and
	// whatever the decoder accumulated comes back via FinalResult.
	rec := &scriptedRecognizer{
		results: []stt.Result{
			{Text: "tell me about friction", Final: false},
		},
		final: stt.Result{Text: "tell me about friction", Final: true},
	}
	capturer := newFakeCapturer(time.Millisecond)
	l := NewListener(ListenerConfig{
		Timeout:         200 * time.Millisecond,
		PhraseTimeLimit: 20 * time.Millisecond,
	}, &fakeFactory{rec: rec}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	got := l.Listen(context.Background())
	if got != "tell me about friction" {
		t.Fatalf("Listen() = %q, want force-finalized transcript", got)
	}
}

func TestListenCapturerStartFailure(t *testing.T) {
	capturer := newFakeCapturer(time.Millisecond)
	capturer.startErr = audio.ErrDeviceUnavailable
	l := NewListener(shortConfig(), &fakeFactory{rec: &scriptedRecognizer{}}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	if got := l.Listen(context.Background()); got != "" {
		t.Fatalf("Listen() = %q, want empty on device failure", got)
	}
}

func TestListenCapturerFactoryFailure(t *testing.T) {
	l := NewListener(shortConfig(), &fakeFactory{rec: &scriptedRecognizer{}}, func() (audio.Capturer, error) {
		return nil, fmt.Errorf("no such device")
	}, nil)

	if got := l.Listen(context.Background()); got != "" {
		t.Fatalf("Listen() = %q, want empty on capturer failure", got)
	}
}

func TestListenDecoderFailure(t *testing.T) {
	rec := &scriptedRecognizer{acceptErr: fmt.Errorf("decode fault")}
	capturer := newFakeCapturer(time.Millisecond)
	l := NewListener(shortConfig(), &fakeFactory{rec: rec}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	if got := l.Listen(context.Background()); got != "" {
		t.Fatalf("Listen() = %q, want empty on decoder failure", got)
	}
}

// trackedCapturer flags any overlap between capture windows
type trackedCapturer struct {
	*fakeCapturer
	active  *atomic.Int32
	overlap *atomic.Bool
}

func (c *trackedCapturer) Start(ctx context.Context) error {
	if c.active.Add(1) > 1 {
		c.overlap.Store(true)
	}
	return c.fakeCapturer.Start(ctx)
}

func (c *trackedCapturer) Stop() error {
	c.active.Add(-1)
	return c.fakeCapturer.Stop()
}

type factoryFunc func() (stt.Recognizer, error)

func (f factoryFunc) NewRecognizer() (stt.Recognizer, error) { return f() }

func TestListenSerializesMicrophone(t *testing.T) {
	// The device is exclusive: a second voice turn must wait for the
	// first listen cycle to release the microphone.
	var active atomic.Int32
	var overlap atomic.Bool

	factory := factoryFunc(func() (stt.Recognizer, error) {
		// A few silent frames before the utterance lands, so each
		// cycle holds the device for a while.
		return &scriptedRecognizer{
			results: []stt.Result{
				{}, {}, {}, {},
				{Text: "hello there", Final: true},
			},
		}, nil
	})
	newCapture := func() (audio.Capturer, error) {
		return &trackedCapturer{
			fakeCapturer: newFakeCapturer(time.Millisecond),
			active:       &active,
			overlap:      &overlap,
		}, nil
	}

	cfg := ListenerConfig{Timeout: time.Second, PhraseTimeLimit: time.Second}
	l := NewListener(cfg, factory, newCapture, nil)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = l.Listen(context.Background())
		}(i)
	}
	wg.Wait()

	if overlap.Load() {
		t.Fatal("two listen cycles held the capture device at the same time")
	}
	for i, got := range results {
		if got != "hello there" {
			t.Fatalf("turn %d transcript = %q, want %q", i, got, "hello there")
		}
	}
}

func TestListenRespectsCancellation(t *testing.T) {
	rec := &scriptedRecognizer{}
	capturer := newFakeCapturer(time.Millisecond)
	l := NewListener(ListenerConfig{
		Timeout:         10 * time.Second,
		PhraseTimeLimit: 10 * time.Second,
	}, &fakeFactory{rec: rec}, func() (audio.Capturer, error) {
		return capturer, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	got := l.Listen(ctx)
	if got != "" {
		t.Fatalf("Listen() = %q, want empty on cancellation", got)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("cancellation did not end the listen cycle promptly")
	}
}
