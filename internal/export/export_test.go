package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"voxnote/internal/i18n"
	"voxnote/internal/logging"
)

func TestCopyNoOpOnBlankText(t *testing.T) {
	called := false
	orig := writeClipboard
	writeClipboard = func(string) error { called = true; return nil }
	defer func() { writeClipboard = orig }()

	for _, text := range []string{"", "   ", "\n\t"} {
		msg := CopyToClipboard(text, i18n.English, logging.NewTestLogger())
		if msg != i18n.English.T("nothing_to_copy") {
			t.Fatalf("blank copy message %q", msg)
		}
	}
	if called {
		t.Fatalf("clipboard must not be touched for blank text")
	}
}

func TestCopySuccessAndSilentFailure(t *testing.T) {
	orig := writeClipboard
	defer func() { writeClipboard = orig }()

	var got string
	writeClipboard = func(s string) error { got = s; return nil }
	msg := CopyToClipboard("hello world", i18n.Arabic, logging.NewTestLogger())
	if got != "hello world" {
		t.Fatalf("copied %q", got)
	}
	if msg != i18n.Arabic.T("copied") {
		t.Fatalf("copy confirmation %q", msg)
	}

	writeClipboard = func(string) error { return errors.New("no display") }
	msg = CopyToClipboard("hello", i18n.English, logging.NewTestLogger())
	if msg != "" {
		t.Fatalf("failure must stay silent, got %q", msg)
	}
}

func TestSaveNoOpOnBlankText(t *testing.T) {
	dir := t.TempDir()
	msg, path, err := SaveTranscript("  ", dir, i18n.English)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != "" {
		t.Fatalf("no file expected, got %q", path)
	}
	if msg != i18n.English.T("nothing_to_export") {
		t.Fatalf("blank save message %q", msg)
	}
	if _, err := os.Stat(filepath.Join(dir, Filename)); !os.IsNotExist(err) {
		t.Fatalf("file must not exist")
	}
}

func TestSaveWritesFixedFilename(t *testing.T) {
	dir := t.TempDir()
	msg, path, err := SaveTranscript("some text", dir, i18n.English)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != Filename {
		t.Fatalf("filename %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "some text" {
		t.Fatalf("content %q", data)
	}
	if msg != i18n.English.T("exported") {
		t.Fatalf("save message %q", msg)
	}
}
