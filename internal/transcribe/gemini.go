package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// geminiBackend sends the instruction plus the clip as an inline blob in a
// single GenerateContent call. The SDK handles the wire encoding of the
// audio bytes.
type geminiBackend struct {
	key    string
	model  string
	logger *logrus.Logger
}

func newGeminiBackend(key, model string, logger *logrus.Logger) Backend {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiBackend{key: key, model: model, logger: logger}
}

func (g *geminiBackend) Transcribe(ctx context.Context, audioPath, hint string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.key))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	g.logger.Debugf("gemini request: model=%s mime=%s bytes=%d", g.model, MIMEType(audioPath), len(data))
	resp, err := model.GenerateContent(ctx,
		genai.Text(Instruction(hint)),
		genai.Blob{MIMEType: MIMEType(audioPath), Data: data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("gemini transcribe: empty response")
	}
	return text, nil
}
