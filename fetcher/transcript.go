package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	ytdl "github.com/kkdai/youtube/v2"

	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/storage"
)

const transcriptAttempts = 3

// TranscriptLibrary fetches the transcript through the youtube client
// library. YouTube rate-limits this endpoint aggressively, so each attempt
// after the first is preceded by a 1-3s jittered sleep.
type TranscriptLibrary struct {
	client    *ytdl.Client
	artifacts storage.ArtifactStore
	logger    *slog.Logger
	sleep     func(time.Duration)
}

func NewTranscriptLibrary(client *ytdl.Client, artifacts storage.ArtifactStore, logger *slog.Logger) *TranscriptLibrary {
	return &TranscriptLibrary{
		client:    client,
		artifacts: artifacts,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

func (t *TranscriptLibrary) Name() string { return "transcript library" }

func (t *TranscriptLibrary) Acquire(ctx context.Context, video *model.Video) (Acquisition, error) {
	var lastErr error
	for attempt := 1; attempt <= transcriptAttempts; attempt++ {
		if attempt > 1 {
			t.sleep(time.Second + time.Duration(rand.Intn(2000))*time.Millisecond)
		}

		text, err := t.fetch(ctx, video.ID)
		if err != nil {
			t.logger.Info("transcript fetch attempt failed",
				slog.String("video", string(video.ID)),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if !usable(text, minCaptionChars) {
			lastErr = errors.New("transcript too short")
			continue
		}

		if err := t.artifacts.SaveCaptions(ctx, video.ID, text); err != nil {
			t.logger.Warn("failed to store captions",
				slog.String("video", string(video.ID)),
				slog.String("error", err.Error()))
		}

		return Acquisition{Text: text, Method: model.MethodCaptions}, nil
	}

	return Acquisition{}, fmt.Errorf("transcript fetch exhausted %d attempts: %w", transcriptAttempts, lastErr)
}

func (t *TranscriptLibrary) fetch(ctx context.Context, id model.VideoID) (string, error) {
	video, err := t.client.GetVideoContext(ctx, string(id))
	if err != nil {
		return "", fmt.Errorf("resolve video: %w", err)
	}

	transcript, err := t.client.GetTranscriptCtx(ctx, video, "en")
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}

	var sb strings.Builder
	for _, segment := range transcript {
		if segment.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(segment.Text)
	}

	return sb.String(), nil
}
