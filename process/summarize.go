// Package process turns acquired video content into stored summaries. It
// holds the LLM clients, the prompt templates and the per-request Processor
// that orchestrates store check, acquisition, summarization and persistence.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// maxPromptChars caps the text handed to the LLM to stay under its token
// ceiling.
const maxPromptChars = 30000

// ContentType selects the prompt template: transcripts and descriptions get
// different instructions.
type ContentType string

const (
	ContentTranscript  ContentType = "transcript"
	ContentDescription ContentType = "description"
)

const transcriptPrompt = `You are an expert content summarizer specializing in YouTube videos. Create a comprehensive, well-structured summary that captures the key information, main arguments, and important details from the video content.

Your summary should:
- Begin with a brief overview of the video's main topic
- Organize content into clear, logical sections with headers
- Use bullet points for key takeaways and important facts
- Include any specific examples, statistics, or quotes that are particularly noteworthy
- Maintain the original context and meaning
- Be detailed enough to be valuable while remaining concise

YouTube video transcript to summarize:

%s

Please provide a detailed, structured summary:`

const descriptionPrompt = `You are an expert content summarizer. Create a comprehensive summary based on the YouTube video description provided. Extract key information, main topics, and important details mentioned in the description.

Your summary should:
- Identify the main topic and purpose of the video
- Extract key points and important information
- Organize content clearly with headers if needed
- Include any specific details, links, or resources mentioned
- Maintain context and meaning from the description

YouTube video description to summarize:

%s

Please provide a detailed, structured summary:`

type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, text string, contentType ContentType) (string, error)
}

// Chain tries each summarizer in order and returns the first result. The
// configured order is Gemini first, OpenAI as the single fallback; there are
// no retries beyond that.
type Chain struct {
	summarizers []Summarizer
	logger      *slog.Logger
}

func NewChain(logger *slog.Logger, summarizers ...Summarizer) *Chain {
	return &Chain{
		summarizers: summarizers,
		logger:      logger,
	}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Summarize(ctx context.Context, text string, contentType ContentType) (string, error) {
	text = Truncate(text)

	var lastErr error
	for _, s := range c.summarizers {
		summary, err := s.Summarize(ctx, text, contentType)
		if err != nil {
			c.logger.Warn("summarizer failed",
				slog.String("summarizer", s.Name()),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		return summary, nil
	}

	return "", fmt.Errorf("all summarizers failed: %w", lastErr)
}

// Truncate limits text to the prompt character budget, marking the cut.
func Truncate(text string) string {
	if len(text) <= maxPromptChars {
		return text
	}

	return text[:maxPromptChars] + "..."
}

func buildPrompt(text string, contentType ContentType) string {
	if contentType == ContentDescription {
		return fmt.Sprintf(descriptionPrompt, text)
	}

	return fmt.Sprintf(transcriptPrompt, text)
}

func emptyResponseErr(name string) error {
	return errors.New(name + " returned an empty response")
}
