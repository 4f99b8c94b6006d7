// Package capture records microphone audio into a single WAV clip per
// session.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrAlreadyCapturing = errors.New("recording already in progress")
	ErrNotCapturing     = errors.New("no active recording session")
	ErrNoAudio          = errors.New("no audio captured")
)

// Clip is one finalized recording on disk.
type Clip struct {
	Path       string
	MIME       string
	SampleRate int
	Samples    int
	Duration   time.Duration
}

// TrimFunc optionally shortens the merged samples before encoding.
type TrimFunc func([]int16) []int16

// Session accumulates audio fragments between a start and the matching stop.
// Fragments are only meaningful inside that window; Finalize clears them.
type Session struct {
	rate      int
	channels  int
	fragments [][]int16
}

func NewSession(rate, channels int) *Session {
	return &Session{rate: rate, channels: channels}
}

// Append stores a copy of one captured fragment.
func (s *Session) Append(frame []int16) {
	cpy := make([]int16, len(frame))
	copy(cpy, frame)
	s.fragments = append(s.fragments, cpy)
}

// FragmentCount reports how many fragments are pending finalization.
func (s *Session) FragmentCount() int {
	return len(s.fragments)
}

// Finalize merges all fragments into one WAV file under dir and clears the
// fragment buffer. trim may be nil.
func (s *Session) Finalize(dir string, trim TrimFunc) (Clip, error) {
	total := 0
	for _, f := range s.fragments {
		total += len(f)
	}
	if total == 0 {
		s.fragments = nil
		return Clip{}, ErrNoAudio
	}
	merged := make([]int16, 0, total)
	for _, f := range s.fragments {
		merged = append(merged, f...)
	}
	s.fragments = nil

	if trim != nil {
		merged = trim(merged)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Clip{}, err
	}
	path := filepath.Join(dir, fmt.Sprintf("clip-%d.wav", time.Now().UnixMilli()))
	if err := writeWAV(path, merged, s.rate, s.channels); err != nil {
		return Clip{}, fmt.Errorf("encode clip: %w", err)
	}
	frames := len(merged) / s.channels
	return Clip{
		Path:       path,
		MIME:       "audio/wav",
		SampleRate: s.rate,
		Samples:    len(merged),
		Duration:   time.Duration(frames) * time.Second / time.Duration(s.rate),
	}, nil
}

// Recorder owns the input device for the lifetime of one session.
// Start moves Idle to Capturing; Stop moves back to Idle, releasing the
// device on every exit path, and hands back the finalized clip.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (Clip, error)
	Active() bool
}
