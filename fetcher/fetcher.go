// Package fetcher acquires the text content of a video through an ordered
// list of strategies, most-preferred first. A strategy failure is logged and
// means "try the next one"; only exhausting the whole list is an error.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vidsummarize.online/backend/model"
)

var ErrNoContent = errors.New("no accessible content found")

const (
	minCaptionChars     = 100
	minDescriptionChars = 50
)

// Acquisition is the outcome of a strategy: either usable text with the
// method that produced it, or the name of a transcription job that will
// deliver the text later.
type Acquisition struct {
	Text    string
	Method  model.Method
	JobName string
}

// Pending reports whether the content is still being produced by an
// external job.
func (a Acquisition) Pending() bool {
	return a.JobName != ""
}

type Strategy interface {
	Name() string
	Acquire(ctx context.Context, video *model.Video) (Acquisition, error)
}

type Acquirer struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewAcquirer(logger *slog.Logger, strategies ...Strategy) *Acquirer {
	return &Acquirer{
		strategies: strategies,
		logger:     logger,
	}
}

func (a *Acquirer) Acquire(ctx context.Context, video *model.Video) (Acquisition, error) {
	for _, strategy := range a.strategies {
		acq, err := strategy.Acquire(ctx, video)
		if err != nil {
			a.logger.Info("strategy failed, falling through",
				slog.String("strategy", strategy.Name()),
				slog.String("video", string(video.ID)),
				slog.String("error", err.Error()))
			continue
		}

		a.logger.Info("content acquired",
			slog.String("strategy", strategy.Name()),
			slog.String("video", string(video.ID)))

		return acq, nil
	}

	return Acquisition{}, ErrNoContent
}

func usable(text string, min int) bool {
	return len(strings.TrimSpace(text)) > min
}
