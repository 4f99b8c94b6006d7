package transcribe

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// openAIBackend uses the audio transcriptions endpoint. The language hint
// rides in the prompt since that endpoint takes free text there.
type openAIBackend struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func newOpenAIBackend(key, model string, logger *logrus.Logger) Backend {
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = openai.Whisper1
	}
	return &openAIBackend{client: openai.NewClient(key), model: model, logger: logger}
}

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath, hint string) (string, error) {
	o.logger.Debugf("openai request: model=%s file=%s", o.model, audioPath)
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
		Prompt:   Instruction(hint),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("openai transcribe: empty response")
	}
	return text, nil
}
