package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vidsummarize.online/backend/fetcher"
	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/storage"
	"vidsummarize.online/backend/transcribe"
)

var (
	ErrInvalidVideoID = errors.New("invalid video id")
	ErrInvalidJobID   = errors.New("invalid job id")
)

const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
	StatusInProgress = "in_progress"
	StatusFailed     = "failed"
)

const descriptionNote = "Summary generated from video description as captions were not available"

// Result is what a summarize or status request resolves to. Completed
// results carry the summary; processing results carry the job name the
// client polls with.
type Result struct {
	Status    string
	VideoID   model.VideoID
	Title     string
	Summary   string
	Method    model.Method
	Sentiment string
	JobName   string
	Note      string
}

type ContentAcquirer interface {
	Acquire(ctx context.Context, video *model.Video) (fetcher.Acquisition, error)
}

// TranscriptionWatcher resolves dispatched transcription jobs.
type TranscriptionWatcher interface {
	Status(ctx context.Context, jobName string) (transcribe.Job, error)
	FetchTranscript(ctx context.Context, uri string) (string, error)
}

// Processor runs the whole pipeline for one video per call. There is no
// shared mutable state: every invocation is request-scoped.
type Processor struct {
	metadata    fetcher.MetadataFetcher
	acquirer    ContentAcquirer
	summarizer  Summarizer
	sentiment   SentimentDetector
	transcriber TranscriptionWatcher
	summaries   storage.SummaryRepository
	jobs        storage.JobRepository
	artifacts   storage.ArtifactStore
	logger      *slog.Logger
}

func NewProcessor(metadata fetcher.MetadataFetcher, acquirer ContentAcquirer, summarizer Summarizer, sentiment SentimentDetector, transcriber TranscriptionWatcher, summaries storage.SummaryRepository, jobs storage.JobRepository, artifacts storage.ArtifactStore, logger *slog.Logger) *Processor {
	return &Processor{
		metadata:    metadata,
		acquirer:    acquirer,
		summarizer:  summarizer,
		sentiment:   sentiment,
		transcriber: transcriber,
		summaries:   summaries,
		jobs:        jobs,
		artifacts:   artifacts,
		logger:      logger,
	}
}

// Process summarizes one video. A stored summary short-circuits everything;
// a pending transcription job is reported without being re-dispatched.
func (p *Processor) Process(ctx context.Context, id model.VideoID) (Result, error) {
	if !id.Valid() {
		return Result{}, ErrInvalidVideoID
	}

	if rec, err := p.summaries.FindSummary(ctx, id); err == nil {
		return resultFromRecord(rec), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		p.logger.Warn("summary lookup failed, reprocessing",
			slog.String("video", string(id)),
			slog.String("error", err.Error()))
	}

	if job, err := p.jobs.FindJob(ctx, id); err == nil {
		return Result{
			Status:  StatusProcessing,
			VideoID: id,
			Title:   job.VideoTitle,
			JobName: job.JobName,
		}, nil
	}

	video, err := p.metadata.FetchMetadata(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("fetch metadata: %w", err)
	}

	acq, err := p.acquirer.Acquire(ctx, video)
	if err != nil {
		return Result{}, err
	}

	if acq.Pending() {
		rec := model.JobRecord{
			VideoID:    id,
			VideoTitle: video.Title,
			JobName:    acq.JobName,
			Timestamp:  time.Now().Unix(),
		}
		if err := p.jobs.SaveJob(ctx, rec); err != nil {
			p.logger.Warn("failed to store job record",
				slog.String("video", string(id)),
				slog.String("error", err.Error()))
		}

		return Result{
			Status:  StatusProcessing,
			VideoID: id,
			Title:   video.Title,
			JobName: acq.JobName,
		}, nil
	}

	return p.summarizeAndStore(ctx, id, video.Title, acq.Text, acq.Method)
}

// Lookup reports what is already known about a video without starting any
// work: a stored summary, a pending job, or storage.ErrNotFound.
func (p *Processor) Lookup(ctx context.Context, id model.VideoID) (Result, error) {
	if !id.Valid() {
		return Result{}, ErrInvalidVideoID
	}

	if rec, err := p.summaries.FindSummary(ctx, id); err == nil {
		return resultFromRecord(rec), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Result{}, fmt.Errorf("summary lookup: %w", err)
	}

	job, err := p.jobs.FindJob(ctx, id)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Status:  StatusProcessing,
		VideoID: id,
		Title:   job.VideoTitle,
		JobName: job.JobName,
	}, nil
}

// ResolveJob checks a transcription job and, when it has completed, finishes
// the pipeline: store the transcript, summarize it, persist the record.
func (p *Processor) ResolveJob(ctx context.Context, jobName string) (Result, error) {
	id, ok := transcribe.VideoIDFromJob(jobName)
	if !ok {
		return Result{}, ErrInvalidJobID
	}

	job, err := p.transcriber.Status(ctx, jobName)
	if err != nil {
		return Result{}, fmt.Errorf("job status: %w", err)
	}

	switch job.State {
	case transcribe.StateCompleted:
		// a second poll may arrive after the summary was stored
		if rec, err := p.summaries.FindSummary(ctx, id); err == nil {
			return resultFromRecord(rec), nil
		}

		transcript, err := p.transcriber.FetchTranscript(ctx, job.TranscriptURI)
		if err != nil {
			return Result{}, fmt.Errorf("fetch transcript: %w", err)
		}
		if err := p.artifacts.SaveTranscript(ctx, id, transcript); err != nil {
			p.logger.Warn("failed to store transcript",
				slog.String("video", string(id)),
				slog.String("error", err.Error()))
		}

		title := "YouTube Video"
		if jrec, err := p.jobs.FindJob(ctx, id); err == nil {
			title = jrec.VideoTitle
		}

		return p.summarizeAndStore(ctx, id, title, transcript, model.MethodAudioTranscription)

	case transcribe.StateFailed:
		return Result{
			Status:  StatusFailed,
			VideoID: id,
			JobName: jobName,
			Note:    job.FailureReason,
		}, nil

	default:
		return Result{
			Status:  StatusInProgress,
			VideoID: id,
			JobName: jobName,
		}, nil
	}
}

func (p *Processor) summarizeAndStore(ctx context.Context, id model.VideoID, title, text string, method model.Method) (Result, error) {
	contentType := ContentTranscript
	if method == model.MethodDescription {
		contentType = ContentDescription
	}

	summary, err := p.summarizer.Summarize(ctx, text, contentType)
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	sentiment := "NEUTRAL"
	if p.sentiment != nil {
		if detected, err := p.sentiment.Detect(ctx, text); err == nil {
			sentiment = detected
		} else {
			p.logger.Warn("sentiment detection failed",
				slog.String("video", string(id)),
				slog.String("error", err.Error()))
		}
	}

	rec := model.SummaryRecord{
		VideoID:    id,
		VideoTitle: title,
		Summary:    summary,
		Method:     method,
		Sentiment:  sentiment,
		Timestamp:  time.Now().Unix(),
	}
	if err := p.summaries.SaveSummary(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("store summary: %w", err)
	}

	p.logger.Info("video summarized",
		slog.String("video", string(id)),
		slog.String("method", string(method)))

	return resultFromRecord(rec), nil
}

func resultFromRecord(rec model.SummaryRecord) Result {
	result := Result{
		Status:    StatusCompleted,
		VideoID:   rec.VideoID,
		Title:     rec.VideoTitle,
		Summary:   rec.Summary,
		Method:    rec.Method,
		Sentiment: rec.Sentiment,
	}
	if rec.Method == model.MethodDescription {
		result.Note = descriptionNote
	}

	return result
}
