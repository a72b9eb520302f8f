package transcribe

import (
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"

	"github.com/mockmate/interview-cli/internal/config"
	"github.com/mockmate/interview-cli/internal/scoring"
)

// Whisper transcribes audio through the OpenAI audio API.
type Whisper struct {
	client *openai.Client
	model  string
}

// NewWhisper creates the Whisper-backed provider.
func NewWhisper(cfg config.OpenAIConfig, model string) *Whisper {
	clientCfg := openai.DefaultConfig(cfg.Key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Whisper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audio io.Reader, filename string) (Result, error) {
	if audio == nil {
		return Result{}, eris.New("transcribe: no audio received")
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "transcribe: whisper request")
	}

	return Result{
		Transcript: strings.TrimSpace(resp.Text),
		Feedback:   scoring.RandomFeedback(),
	}, nil
}
