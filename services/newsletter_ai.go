package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/sundai-club/sundai-backend/models"
)

// llmDrafter asks an OpenAI model for the digest intro. Failures fall
// back to the static intro in NewsletterService, so this is purely
// best-effort polish.
type llmDrafter struct {
	llm llms.Model
}

// NewLLMDrafter builds an IntroDrafter backed by the given OpenAI
// model. The API key is read from OPENAI_API_KEY by the client.
func NewLLMDrafter(model string) (IntroDrafter, error) {
	llm, err := openai.New(openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	return llmDrafter{llm: llm}, nil
}

func (d llmDrafter) DraftIntro(ctx context.Context, week models.Week, projects []models.Project) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a warm, two-sentence intro for the Sundai Club weekly newsletter, week %d.", week.Number)
	if week.Theme != nil {
		fmt.Fprintf(&sb, " The week's theme was %q.", *week.Theme)
	}
	if len(projects) > 0 {
		sb.WriteString(" Projects shipped this week:")
		for _, p := range projects {
			fmt.Fprintf(&sb, " %s (%s);", p.Title, p.Preview)
		}
	}
	sb.WriteString(" Plain text only, no greetings like 'Dear reader'.")

	out, err := llms.GenerateFromSinglePrompt(ctx, d.llm, sb.String(),
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
