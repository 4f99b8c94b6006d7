// Package transcribe sends finished audio clips to a remote speech
// recognition service. No recognition happens locally.
package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"voxnote/internal/config"

	"github.com/sirupsen/logrus"
)

// Backend turns one audio clip into text. A failed call is terminal: no
// retries, no partial results.
type Backend interface {
	Transcribe(ctx context.Context, audioPath, hint string) (string, error)
}

// New builds the configured backend.
func New(cfg *config.Config, logger *logrus.Logger) (Backend, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("no API key: set asr.api_key in %s or export GEMINI_API_KEY / OPENAI_API_KEY", cfg.Paths.ConfigPath)
	}
	switch cfg.ASR.Provider {
	case "", "gemini":
		return newGeminiBackend(key, cfg.ASR.Model, logger), nil
	case "openai":
		return newOpenAIBackend(key, cfg.ASR.Model, logger), nil
	}
	return nil, fmt.Errorf("unknown asr.provider %q (want gemini or openai)", cfg.ASR.Provider)
}

// Instruction is the natural-language request sent alongside the audio. The
// hint is the human-readable language name, forwarded verbatim.
func Instruction(hint string) string {
	h := strings.TrimSpace(hint)
	if h == "" {
		h = "the spoken language"
	}
	return fmt.Sprintf("Transcribe the following audio recording. The speech is in %s. Return only the transcribed text, with no commentary.", h)
}

// MIMEType maps a clip's file extension to the media type sent with it.
func MIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	case ".m4a", ".mp4":
		return "audio/mp4"
	case ".aac":
		return "audio/aac"
	}
	return "application/octet-stream"
}
