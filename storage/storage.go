package storage

import (
	"context"
	"errors"
	"io"

	"vidsummarize.online/backend/model"
)

var ErrNotFound = errors.New("not found")

// SummaryRepository stores one SummaryRecord per video ID.
type SummaryRepository interface {
	FindSummary(ctx context.Context, id model.VideoID) (model.SummaryRecord, error)
	SaveSummary(ctx context.Context, rec model.SummaryRecord) error
}

// JobRepository stores one JobRecord per video ID while a transcription job
// is running.
type JobRepository interface {
	FindJob(ctx context.Context, id model.VideoID) (model.JobRecord, error)
	SaveJob(ctx context.Context, rec model.JobRecord) error
}

// ArtifactStore keeps the intermediate blobs of the pipeline: extracted
// captions, transcripts and downloaded audio. UploadAudio returns a media URI
// that can be handed to the transcription service.
type ArtifactStore interface {
	SaveCaptions(ctx context.Context, id model.VideoID, text string) error
	SaveTranscript(ctx context.Context, id model.VideoID, text string) error
	UploadAudio(ctx context.Context, id model.VideoID, body io.Reader) (string, error)
}
