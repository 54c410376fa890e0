package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	ytdl "github.com/kkdai/youtube/v2"

	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/storage"
)

// TranscriptionStarter dispatches an asynchronous speech-to-text job for an
// uploaded media object and returns the job name.
type TranscriptionStarter interface {
	Start(ctx context.Context, id model.VideoID, mediaURI string) (string, error)
}

// AudioTranscription downloads the audio track, uploads it to the
// transcriptions bucket and dispatches a transcription job. It never yields
// text directly: a successful acquisition is a pending job the client polls
// for.
type AudioTranscription struct {
	client      *ytdl.Client
	artifacts   storage.ArtifactStore
	transcriber TranscriptionStarter
	tempDir     string
	logger      *slog.Logger
}

func NewAudioTranscription(client *ytdl.Client, artifacts storage.ArtifactStore, transcriber TranscriptionStarter, tempDir string, logger *slog.Logger) *AudioTranscription {
	return &AudioTranscription{
		client:      client,
		artifacts:   artifacts,
		transcriber: transcriber,
		tempDir:     tempDir,
		logger:      logger,
	}
}

func (a *AudioTranscription) Name() string { return "audio transcription" }

func (a *AudioTranscription) Acquire(ctx context.Context, video *model.Video) (Acquisition, error) {
	audioFile, err := a.download(ctx, video.ID)
	if err != nil {
		return Acquisition{}, err
	}
	defer os.Remove(audioFile.Name())
	defer audioFile.Close()

	mediaURI, err := a.artifacts.UploadAudio(ctx, video.ID, audioFile)
	if err != nil {
		return Acquisition{}, fmt.Errorf("upload audio: %w", err)
	}

	jobName, err := a.transcriber.Start(ctx, video.ID, mediaURI)
	if err != nil {
		return Acquisition{}, fmt.Errorf("dispatch transcription: %w", err)
	}

	a.logger.Info("transcription job dispatched",
		slog.String("video", string(video.ID)),
		slog.String("job", jobName))

	return Acquisition{JobName: jobName}, nil
}

// download streams the smallest mp4 audio track to a temp file and rewinds it
// for upload. The caller removes the file.
func (a *AudioTranscription) download(ctx context.Context, id model.VideoID) (*os.File, error) {
	video, err := a.client.GetVideoContext(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}

	formats := video.Formats.Type("audio/mp4").WithAudioChannels()
	if len(formats) == 0 {
		formats = video.Formats.WithAudioChannels()
	}
	if len(formats) == 0 {
		return nil, errors.New("no audio format available")
	}
	formats.Sort()
	format := &formats[len(formats)-1]

	stream, _, err := a.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("open audio stream: %w", err)
	}
	defer stream.Close()

	file, err := os.CreateTemp(a.tempDir, string(id)+"-*.mp4")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(file, stream); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, fmt.Errorf("download audio: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}

	return file, nil
}
