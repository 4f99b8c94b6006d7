package transcribe

import (
	"strings"
	"testing"

	"voxnote/internal/config"
	"voxnote/internal/logging"
)

func TestInstructionEmbedsHint(t *testing.T) {
	got := Instruction("Arabic")
	if !strings.Contains(got, "Arabic") {
		t.Fatalf("instruction missing hint: %q", got)
	}
	got = Instruction("  ")
	if !strings.Contains(got, "the spoken language") {
		t.Fatalf("blank hint fallback missing: %q", got)
	}
}

func TestMIMEType(t *testing.T) {
	cases := map[string]string{
		"clip-1.wav":  "audio/wav",
		"a/b/X.MP3":   "audio/mpeg",
		"note.ogg":    "audio/ogg",
		"note.webm":   "audio/webm",
		"note.flac":   "audio/flac",
		"note.m4a":    "audio/mp4",
		"mystery.bin": "application/octet-stream",
	}
	for path, want := range cases {
		if got := MIMEType(path); got != want {
			t.Fatalf("MIMEType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNewRequiresKey(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New(cfg, logging.NewTestLogger()); err == nil {
		t.Fatalf("expected error without key")
	}
}

func TestNewSelectsProvider(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.ASR.APIKey = "k"

	b, err := New(cfg, logging.NewTestLogger())
	if err != nil {
		t.Fatalf("gemini: %v", err)
	}
	if _, ok := b.(*geminiBackend); !ok {
		t.Fatalf("expected gemini backend, got %T", b)
	}

	cfg.ASR.Provider = "openai"
	b, err = New(cfg, logging.NewTestLogger())
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, ok := b.(*openAIBackend); !ok {
		t.Fatalf("expected openai backend, got %T", b)
	}

	cfg.ASR.Provider = "nope"
	if _, err := New(cfg, logging.NewTestLogger()); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
