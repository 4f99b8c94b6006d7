// Package export implements the output actions over the current transcript:
// clipboard copy and plain-text file export.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"voxnote/internal/i18n"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// Filename is the fixed name of the exported transcript file.
const Filename = "transcription.txt"

// swapped out in tests
var writeClipboard = clipboard.WriteAll

// CopyToClipboard writes the transcript to the system clipboard and returns
// the localized confirmation. Blank text returns the localized no-op notice
// without touching the clipboard. A clipboard failure is logged and returns
// "" so the caller stays quiet.
func CopyToClipboard(text string, lang i18n.Language, logger *logrus.Logger) string {
	if strings.TrimSpace(text) == "" {
		return lang.T("nothing_to_copy")
	}
	if err := writeClipboard(text); err != nil {
		logger.Errorf("clipboard write: %v", err)
		return ""
	}
	return lang.T("copied")
}

// SaveTranscript writes the transcript to dir/transcription.txt. Blank text
// is a no-op with the localized notice and no file touched.
func SaveTranscript(text, dir string, lang i18n.Language) (msg, path string, err error) {
	if strings.TrimSpace(text) == "" {
		return lang.T("nothing_to_export"), "", nil
	}
	path = filepath.Join(dir, Filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", "", err
	}
	return lang.T("exported"), path, nil
}
