package process

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
)

// Comprehend's DetectSentiment accepts at most 5000 bytes.
const maxSentimentChars = 5000

// SentimentDetector classifies the overall sentiment of the content a
// summary was generated from.
type SentimentDetector interface {
	Detect(ctx context.Context, text string) (string, error)
}

type Comprehend struct {
	client *comprehend.Client
}

func NewComprehend(client *comprehend.Client) *Comprehend {
	return &Comprehend{client: client}
}

func (c *Comprehend) Detect(ctx context.Context, text string) (string, error) {
	if len(text) > maxSentimentChars {
		text = text[:maxSentimentChars]
	}

	out, err := c.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCodeEn,
	})
	if err != nil {
		return "", fmt.Errorf("detect sentiment: %w", err)
	}

	return string(out.Sentiment), nil
}
