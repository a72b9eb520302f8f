// Package transcribe turns recorded audio into text. The default provider
// returns a canned transcript; a Whisper-backed provider is available when an
// OpenAI key is configured. Per-answer feedback always comes from the fixed
// pool either way.
package transcribe

import (
	"context"
	"io"

	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/config"
)

// ErrUnavailable reports that no transcription capability is configured.
var ErrUnavailable = eris.New("transcribe: no provider available")

// Result is one processed utterance.
type Result struct {
	Transcript string `json:"transcript"`
	Feedback   string `json:"feedback"`
}

// Transcriber converts one audio recording into a transcript with feedback.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (Result, error)
}

// New selects the provider from config.
func New(cfg config.TranscribeConfig, openAICfg config.OpenAIConfig) (Transcriber, error) {
	switch cfg.Provider {
	case "static":
		return NewStatic(), nil
	case "openai":
		if openAICfg.Key == "" {
			return nil, eris.Wrap(ErrUnavailable, "transcribe: openai provider needs a key")
		}
		return NewWhisper(openAICfg, cfg.Model), nil
	default:
		return nil, eris.Errorf("transcribe: unknown provider %q", cfg.Provider)
	}
}
