// Package copilot phrases a finished menu report as advice a restaurant
// owner can read. Strictly presentational: every number comes from the
// deterministic analysis, the model only rewords it. Without an API key the
// narrator falls back to a deterministic template, so the copilot surface
// works in every deployment.
package copilot

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

// Narrator produces the copilot summaries.
type Narrator struct {
	client *openai.Client
	model  string
}

// NewNarrator builds a narrator. An empty API key disables the LLM and
// keeps the template fallback.
func NewNarrator(apiKey, model string) *Narrator {
	n := &Narrator{model: model}
	if apiKey != "" {
		n.client = openai.NewClient(apiKey)
	}
	return n
}

const systemPrompt = `You are a concise advisor for restaurant owners.
Rephrase the provided menu analysis summary in 3-5 plain sentences.
Never change, add or round any number. Do not invent recommendations.`

// Narrate returns a prose summary of the report. The deterministic digest is
// both the LLM input and the fallback output.
func (n *Narrator) Narrate(ctx context.Context, report models.MenuReport) (string, error) {
	digest := Digest(report)
	if n.client == nil {
		return digest, nil
	}

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: digest},
		},
		Temperature: 0.2,
	})
	if err != nil {
		// Degrade to the digest rather than failing the copilot surface.
		return digest, apperrors.NewExternal("copilot.Narrate", "openai", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return digest, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Digest renders the deterministic summary the narrator works from.
func Digest(report models.MenuReport) string {
	var b strings.Builder

	counts := map[models.Classification]int{}
	for _, r := range report.Reports {
		counts[r.Classification]++
	}
	fmt.Fprintf(&b, "Menu of %d dishes: %d star, %d good, %d to optimize, %d to remove.\n",
		len(report.Reports),
		counts[models.ClassStar], counts[models.ClassGood],
		counts[models.ClassOptimize], counts[models.ClassRemove])

	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", rec.Priority, rec.Title, rec.Message)
	}
	for _, alert := range report.Alerts {
		if alert.Category == "seasonal" || alert.Category == "competitive-pricing" {
			fmt.Fprintf(&b, "- [%s] %s\n", alert.Severity, alert.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
