package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/api/youtube/v3"

	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/storage"
)

var (
	srtTimingRE = regexp.MustCompile(`\d+\s*\n\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}\s*\n`)
	markupRE    = regexp.MustCompile(`<[^>]+>`)
	newlinesRE  = regexp.MustCompile(`\n+`)
)

// CaptionsAPI fetches the English caption track through the YouTube Data API.
// Caption downloads are quota-limited and require elevated credentials, so in
// practice this stage often falls through to the transcript library.
type CaptionsAPI struct {
	client    *youtube.Service
	artifacts storage.ArtifactStore
	logger    *slog.Logger
}

func NewCaptionsAPI(client *youtube.Service, artifacts storage.ArtifactStore, logger *slog.Logger) *CaptionsAPI {
	return &CaptionsAPI{
		client:    client,
		artifacts: artifacts,
		logger:    logger,
	}
}

func (c *CaptionsAPI) Name() string { return "captions api" }

func (c *CaptionsAPI) Acquire(ctx context.Context, video *model.Video) (Acquisition, error) {
	list, err := c.client.Captions.
		List([]string{"snippet"}, string(video.ID)).
		Context(ctx).
		Do()
	if err != nil {
		return Acquisition{}, fmt.Errorf("list captions: %w", err)
	}

	var captionID string
	for _, item := range list.Items {
		if item.Snippet.Language == "en" {
			captionID = item.Id
			break
		}
	}
	if captionID == "" {
		return Acquisition{}, errors.New("no english caption track")
	}

	response, err := c.client.Captions.
		Download(captionID).
		Tfmt("srt").
		Context(ctx).
		Download()
	if err != nil {
		return Acquisition{}, fmt.Errorf("download caption track: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Acquisition{}, fmt.Errorf("read caption track: %w", err)
	}

	text := CleanCaptions(string(body))
	if !usable(text, minCaptionChars) {
		return Acquisition{}, errors.New("caption text too short")
	}

	if err := c.artifacts.SaveCaptions(ctx, video.ID, text); err != nil {
		c.logger.Warn("failed to store captions",
			slog.String("video", string(video.ID)),
			slog.String("error", err.Error()))
	}

	return Acquisition{Text: text, Method: model.MethodCaptions}, nil
}

// CleanCaptions strips SRT sequence numbers, timing lines and inline markup,
// collapsing the remainder into a single line of text.
func CleanCaptions(raw string) string {
	text := srtTimingRE.ReplaceAllString(raw, "")
	text = markupRE.ReplaceAllString(text, "")
	text = newlinesRE.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
