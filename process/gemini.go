package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Gemini is the primary summarizer.
type Gemini struct {
	model *genai.GenerativeModel
}

func NewGemini(client *genai.Client, modelName string) *Gemini {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(800)
	model.SetTopP(0.8)
	model.SetTopK(40)

	return &Gemini{model: model}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Summarize(ctx context.Context, text string, contentType ContentType) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(text, contentType)))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", emptyResponseErr(g.Name())
	}

	return summary, nil
}
