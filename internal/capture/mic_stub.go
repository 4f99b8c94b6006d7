//go:build !portaudio

package capture

import (
	"context"
	"errors"

	"voxnote/internal/config"

	"github.com/sirupsen/logrus"
)

type stubRecorder struct{}

var errNoPortaudio = errors.New("built without microphone support; rebuild with '-tags portaudio' (PortAudio required)")

// NewRecorder returns a recorder that rejects capture in builds without
// PortAudio. File and URL submission still work.
func NewRecorder(_ *config.Config, _ *logrus.Logger) (Recorder, error) {
	return &stubRecorder{}, nil
}

func (s *stubRecorder) Start(context.Context) error { return errNoPortaudio }
func (s *stubRecorder) Stop() (Clip, error)         { return Clip{}, ErrNotCapturing }
func (s *stubRecorder) Active() bool                { return false }
