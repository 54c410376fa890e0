package fetcher

import (
	"context"
	"errors"

	"vidsummarize.online/backend/model"
)

var ErrVideoNotFound = errors.New("video not found or unavailable")

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, id model.VideoID) (*model.Video, error)
}
