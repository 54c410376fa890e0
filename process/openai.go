package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAISummarizer is the fallback summarizer, used when Gemini fails.
type OpenAISummarizer struct {
	client *openai.Client
}

func NewOpenAISummarizer(client *openai.Client) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: client,
	}
}

func (sum *OpenAISummarizer) Name() string { return "openai" }

func (sum *OpenAISummarizer) Summarize(ctx context.Context, text string, contentType ContentType) (string, error) {
	resp, err := sum.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert content summarizer specializing in YouTube videos.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildPrompt(text, contentType),
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	summary := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	if summary == "" {
		return "", emptyResponseErr(sum.Name())
	}

	return summary, nil
}
