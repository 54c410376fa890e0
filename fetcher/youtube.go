package fetcher

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"

	"vidsummarize.online/backend/model"
)

// Youtube fetches video metadata through the YouTube Data API.
type Youtube struct {
	client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{client: client}
}

func (y *Youtube) FetchMetadata(ctx context.Context, id model.VideoID) (*model.Video, error) {
	call := y.client.Videos.
		List([]string{"snippet"}).
		Id(string(id)).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	snippet := response.Items[0].Snippet

	return &model.Video{
		ID:          id,
		Title:       snippet.Title,
		Description: snippet.Description,
		Channel:     snippet.ChannelTitle,
		PublishedAt: snippet.PublishedAt,
	}, nil
}
