// Package transcribe wraps AWS Transcribe for the audio fallback of the
// acquisition chain. Jobs are fire-and-forget: the caller stores the job name
// and resolves it later through Status and FetchTranscript.
package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/google/uuid"

	"vidsummarize.online/backend/model"
)

type State string

const (
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateInProgress State = "in_progress"
)

const jobPrefix = "transcribe-"

// Job is the reduced view of a transcription job the rest of the service
// cares about. TranscriptURI is only set when the state is completed.
type Job struct {
	Name          string
	State         State
	TranscriptURI string
	FailureReason string
}

type Transcriber struct {
	client     *awstranscribe.Client
	httpClient *http.Client
}

func New(client *awstranscribe.Client) *Transcriber {
	return &Transcriber{
		client:     client,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// JobName builds a unique job name that still allows recovering the video ID,
// shaped transcribe-{videoId}-{uuid8}.
func JobName(id model.VideoID) string {
	return fmt.Sprintf("%s%s-%s", jobPrefix, id, uuid.NewString()[:8])
}

// VideoIDFromJob recovers the video ID from a job name. It strips the fixed
// prefix and takes the next 11 characters instead of splitting on dashes,
// since video IDs may contain dashes themselves.
func VideoIDFromJob(name string) (model.VideoID, bool) {
	rest, ok := strings.CutPrefix(name, jobPrefix)
	if !ok || len(rest) < 12 || rest[11] != '-' {
		return "", false
	}

	id := model.VideoID(rest[:11])
	if !id.Valid() {
		return "", false
	}

	return id, true
}

func (t *Transcriber) Start(ctx context.Context, id model.VideoID, mediaURI string) (string, error) {
	name := JobName(id)
	_, err := t.client.StartTranscriptionJob(ctx, &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(name),
		Media:                &types.Media{MediaFileUri: aws.String(mediaURI)},
		MediaFormat:          types.MediaFormatMp4,
		LanguageCode:         types.LanguageCodeEnUs,
	})
	if err != nil {
		return "", fmt.Errorf("start transcription job: %w", err)
	}

	return name, nil
}

func (t *Transcriber) Status(ctx context.Context, name string) (Job, error) {
	out, err := t.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(name),
	})
	if err != nil {
		return Job{}, fmt.Errorf("get transcription job: %w", err)
	}

	job := Job{Name: name}
	switch out.TranscriptionJob.TranscriptionJobStatus {
	case types.TranscriptionJobStatusCompleted:
		job.State = StateCompleted
		if out.TranscriptionJob.Transcript != nil {
			job.TranscriptURI = aws.ToString(out.TranscriptionJob.Transcript.TranscriptFileUri)
		}
	case types.TranscriptionJobStatusFailed:
		job.State = StateFailed
		job.FailureReason = aws.ToString(out.TranscriptionJob.FailureReason)
	default:
		job.State = StateInProgress
	}

	return job, nil
}

// FetchTranscript downloads the transcript document a completed job points at
// and extracts the plain transcript text.
func (t *Transcriber) FetchTranscript(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch transcript: unexpected status %s", resp.Status)
	}

	return ParseTranscriptDoc(resp.Body)
}

// ParseTranscriptDoc pulls the transcript text out of the JSON document AWS
// Transcribe writes, shaped {"results":{"transcripts":[{"transcript":"..."}]}}.
func ParseTranscriptDoc(r io.Reader) (string, error) {
	var doc struct {
		Results struct {
			Transcripts []struct {
				Transcript string `json:"transcript"`
			} `json:"transcripts"`
		} `json:"results"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode transcript document: %w", err)
	}
	if len(doc.Results.Transcripts) == 0 {
		return "", errors.New("transcript document holds no transcripts")
	}

	return doc.Results.Transcripts[0].Transcript, nil
}
