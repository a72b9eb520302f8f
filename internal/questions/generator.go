package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mockmate/interview-cli/internal/config"
)

// Generator produces role-specific questions with a chat completion and
// falls back to the bank on any failure. The failure is logged, not retried.
type Generator struct {
	client   *openai.Client
	model    string
	count    int
	fallback *Bank
}

// NewGenerator creates the OpenAI-backed question source.
func NewGenerator(cfg config.OpenAIConfig, count int, fallback *Bank) *Generator {
	clientCfg := openai.DefaultConfig(cfg.Key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if count <= 0 {
		count = 5
	}
	return &Generator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		count:    count,
		fallback: fallback,
	}
}

func (g *Generator) ForRole(ctx context.Context, role string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Write %d interview questions for a %s candidate. One question per line, no numbering, no commentary.",
		g.count, role,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		zap.L().Warn("question generation failed, using bank",
			zap.String("role", role),
			zap.Error(err),
		)
		return g.fallback.ForRole(ctx, role)
	}

	questions := splitLines(resp.Choices[0].Message.Content)
	if len(questions) == 0 {
		return g.fallback.ForRole(ctx, role)
	}
	if len(questions) > g.count {
		questions = questions[:g.count]
	}
	return questions, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
