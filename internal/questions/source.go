// Package questions supplies the interview questions for a role.
package questions

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/config"
)

// Source returns the ordered question list for a role. An empty list is a
// valid response; the session treats it as an immediately-complete run.
type Source interface {
	ForRole(ctx context.Context, role string) ([]string, error)
}

// New selects the provider from config.
func New(cfg config.QuestionsConfig, openAICfg config.OpenAIConfig) (Source, error) {
	bank, err := LoadBank(cfg.BankPath)
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "static":
		return bank, nil
	case "openai":
		if openAICfg.Key == "" {
			return nil, eris.New("questions: openai provider needs a key")
		}
		return NewGenerator(openAICfg, cfg.Count, bank), nil
	default:
		return nil, eris.Errorf("questions: unknown provider %q", cfg.Provider)
	}
}
