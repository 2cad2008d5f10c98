package audio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// MalgoCapturer implements the Capturer interface using malgo
type MalgoCapturer struct {
	config       CaptureConfig
	device       *malgo.Device
	malgoContext *malgo.AllocatedContext
	frames       chan Frame
	errors       chan error
	running      bool
	mu           sync.RWMutex
	stopChan     chan struct{}
}

// NewMalgoCapturer creates a new malgo-based audio capturer
func NewMalgoCapturer(config CaptureConfig) (*MalgoCapturer, error) {
	return &MalgoCapturer{
		config:   config,
		frames:   make(chan Frame, 10),
		errors:   make(chan error, 10),
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins audio capture. The device and backend context are released
// on every failure path so a failed open never leaks the microphone.
func (m *MalgoCapturer) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("capturer is already running")
	}
	m.running = true
	m.mu.Unlock()

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	m.malgoContext = malgoCtx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = m.config.Channels
	deviceConfig.SampleRate = m.config.SampleRate
	deviceConfig.PeriodSizeInFrames = m.config.FrameSize

	// A configured device name selects a specific microphone; otherwise the
	// backend default is used.
	if m.config.DeviceID != "" {
		infos, err := malgoCtx.Devices(malgo.Capture)
		if err != nil {
			m.malgoContext.Uninit()
			m.malgoContext.Free()
			m.mu.Lock()
			m.running = false
			m.mu.Unlock()
			return fmt.Errorf("%w: enumerate devices: %v", ErrDeviceUnavailable, err)
		}
		want := strings.ToLower(m.config.DeviceID)
		found := false
		for _, info := range infos {
			if strings.Contains(strings.ToLower(info.Name()), want) {
				id := info.ID
				deviceConfig.Capture.DeviceID = id.Pointer()
				found = true
				break
			}
		}
		if !found {
			m.malgoContext.Uninit()
			m.malgoContext.Free()
			m.mu.Lock()
			m.running = false
			m.mu.Unlock()
			return fmt.Errorf("%w: no capture device matching %q", ErrDeviceUnavailable, m.config.DeviceID)
		}
	}

	// Data callback - called when audio data is available
	var dataCallback malgo.DeviceCallbacks
	dataCallback.Data = func(pOutputSample, pInputSamples []byte, framecount uint32) {
		// Copy the input samples to avoid data races
		dataCopy := make([]byte, len(pInputSamples))
		copy(dataCopy, pInputSamples)

		frame := Frame{
			Data:      dataCopy,
			Timestamp: time.Now(),
			Samples:   framecount,
		}

		// Non-blocking send to the frame channel
		select {
		case m.frames <- frame:
		default:
			// Channel is full, report overflow
			select {
			case m.errors <- fmt.Errorf("frame buffer overflow, dropping audio"):
			default:
			}
		}
	}

	device, err := malgo.InitDevice(m.malgoContext.Context, deviceConfig, dataCallback)
	if err != nil {
		m.malgoContext.Uninit()
		m.malgoContext.Free()
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		return fmt.Errorf("%w: init device: %v", ErrDeviceUnavailable, err)
	}
	m.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		m.malgoContext.Uninit()
		m.malgoContext.Free()
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		return fmt.Errorf("%w: start device: %v", ErrDeviceUnavailable, err)
	}

	// Release the device when the listen cycle's context ends
	go m.watchContext(ctx)

	return nil
}

// watchContext stops the capturer when ctx ends before Stop is called. It
// must not be joined by Stop: it calls Stop itself on the cancellation path,
// so waiting on it there would deadlock.
func (m *MalgoCapturer) watchContext(ctx context.Context) {
	select {
	case <-ctx.Done():
		m.Stop()
	case <-m.stopChan:
	}
}

// Stop stops audio capture
func (m *MalgoCapturer) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	// Signal stop
	close(m.stopChan)

	// Stop the device
	if m.device != nil {
		err := m.device.Stop()
		if err != nil {
			return fmt.Errorf("failed to stop device: %w", err)
		}
		m.device.Uninit()
	}

	// Uninitialize malgo context
	if m.malgoContext != nil {
		m.malgoContext.Uninit()
		m.malgoContext.Free()
	}

	// The device is torn down, so the data callback cannot fire anymore and
	// the channels can be closed.
	close(m.frames)
	close(m.errors)

	return nil
}

// Frames returns a channel that receives captured frames
func (m *MalgoCapturer) Frames() <-chan Frame {
	return m.frames
}

// Errors returns a channel that receives capture errors
func (m *MalgoCapturer) Errors() <-chan error {
	return m.errors
}

// IsRunning returns true if capture is currently active
func (m *MalgoCapturer) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}
