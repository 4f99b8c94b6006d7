//go:build portaudio

package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"voxnote/internal/config"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// micRecorder captures mono PCM frames from portaudio into a Session.
type micRecorder struct {
	cfg    *config.Config
	logger *logrus.Logger

	mu      sync.Mutex
	active  bool
	session *Session
	stream  *portaudio.Stream
	stopCh  chan struct{}
	frames  chan []int16
	doneCh  chan struct{}
}

// NewRecorder validates audio settings and returns an idle recorder.
func NewRecorder(cfg *config.Config, logger *logrus.Logger) (Recorder, error) {
	if cfg.Audio.Channels != 1 {
		return nil, fmt.Errorf("only mono input supported; set audio.channels = 1")
	}
	if cfg.Audio.FrameMS != 10 && cfg.Audio.FrameMS != 20 && cfg.Audio.FrameMS != 30 {
		return nil, fmt.Errorf("audio.frame_ms must be 10, 20, or 30 (got %d)", cfg.Audio.FrameMS)
	}
	switch cfg.Audio.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("sample_rate must be 8k/16k/32k/48k (got %d)", cfg.Audio.SampleRate)
	}
	return &micRecorder{cfg: cfg, logger: logger}, nil
}

func (r *micRecorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *micRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return ErrAlreadyCapturing
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	dev, err := selectDevice(r.cfg.Audio.DeviceName)
	if err != nil {
		_ = portaudio.Terminate()
		return err
	}

	frameSamples := r.cfg.Audio.SampleRate * r.cfg.Audio.FrameMS / 1000
	buf := make([]int16, frameSamples)
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: r.cfg.Audio.Channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(r.cfg.Audio.SampleRate),
		FramesPerBuffer: frameSamples,
	}, &buf)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("start stream: %w", err)
	}

	r.session = NewSession(r.cfg.Audio.SampleRate, r.cfg.Audio.Channels)
	r.stream = stream
	r.stopCh = make(chan struct{})
	r.frames = make(chan []int16, 16)
	r.doneCh = make(chan struct{})
	r.active = true

	go r.readLoop(ctx, stream, buf)
	go r.collect()

	r.logger.Infof("recording on mic: %s @ %d Hz", dev.Name, r.cfg.Audio.SampleRate)
	return nil
}

// readLoop produces fragment events until stopped, then closes the fragment
// channel so the collector sees all fragments before finalization.
func (r *micRecorder) readLoop(ctx context.Context, stream *portaudio.Stream, buf []int16) {
	defer close(r.frames)
	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}
		if err := stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				r.logger.Warn("input overflow")
				continue
			}
			r.logger.Errorf("stream read: %v", err)
			return
		}
		cpy := make([]int16, len(buf))
		copy(cpy, buf)
		select {
		case r.frames <- cpy:
		default:
			r.logger.Warn("fragment queue full, dropping fragment")
		}
	}
}

func (r *micRecorder) collect() {
	defer close(r.doneCh)
	for f := range r.frames {
		r.session.Append(f)
	}
}

func (r *micRecorder) Stop() (Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return Clip{}, ErrNotCapturing
	}
	close(r.stopCh)
	<-r.doneCh

	// Release the device no matter how finalization goes.
	if err := r.stream.Stop(); err != nil {
		r.logger.Warnf("stream stop: %v", err)
	}
	if err := r.stream.Close(); err != nil {
		r.logger.Warnf("stream close: %v", err)
	}
	if err := portaudio.Terminate(); err != nil {
		r.logger.Warnf("portaudio terminate: %v", err)
	}
	r.stream = nil
	r.active = false

	var trim TrimFunc
	if r.cfg.VAD.TrimSilence {
		trim = r.trimFunc()
	}
	clip, err := r.session.Finalize(r.cfg.Paths.ClipDir, trim)
	r.session = nil
	if err != nil {
		return Clip{}, err
	}
	r.logger.Infof("clip finalized: %s (%.1fs)", clip.Path, clip.Duration.Seconds())
	return clip, nil
}

func selectDevice(preferred string) (*portaudio.DeviceInfo, error) {
	devs, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if preferred != "" {
		for _, d := range devs {
			if d.MaxInputChannels > 0 && strings.Contains(strings.ToLower(d.Name), strings.ToLower(preferred)) {
				return d, nil
			}
		}
	}
	if def := portaudio.DefaultInputDevice(); def != nil {
		return def, nil
	}
	for _, d := range devs {
		if d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no input devices found")
}
