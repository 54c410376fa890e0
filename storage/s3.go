package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"vidsummarize.online/backend/model"
)

// S3Info holds the names of the three buckets the pipeline writes to.
type S3Info struct {
	CaptionsBucket       string
	TranscriptionsBucket string
	SummariesBucket      string
}

// S3 persists records and artifacts as opaque objects keyed by video ID:
//
//	captions:       {videoId}/captions.txt
//	transcriptions: {videoId}/audio.mp4, {videoId}/job_info.json, {videoId}/transcript.txt
//	summaries:      {videoId}/summary.txt, {videoId}/metadata.json
type S3 struct {
	client  *s3.Client
	buckets S3Info
}

func NewS3(client *s3.Client, buckets S3Info) *S3 {
	return &S3{
		client:  client,
		buckets: buckets,
	}
}

func (s *S3) FindSummary(ctx context.Context, id model.VideoID) (model.SummaryRecord, error) {
	summary, err := s.get(ctx, s.buckets.SummariesBucket, summaryKey(id))
	if err != nil {
		return model.SummaryRecord{}, err
	}

	rec := model.SummaryRecord{
		VideoID:    id,
		VideoTitle: "YouTube Video",
	}
	if meta, err := s.get(ctx, s.buckets.SummariesBucket, metadataKey(id)); err == nil {
		// metadata is optional, a bare summary object is still a valid record
		_ = json.Unmarshal(meta, &rec)
	}
	rec.Summary = string(summary)

	return rec, nil
}

func (s *S3) SaveSummary(ctx context.Context, rec model.SummaryRecord) error {
	if err := s.put(ctx, s.buckets.SummariesBucket, summaryKey(rec.VideoID), []byte(rec.Summary), "text/plain"); err != nil {
		return fmt.Errorf("store summary: %w", err)
	}

	meta := rec
	meta.Summary = "" // the summary text lives in its own object

	body, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := s.put(ctx, s.buckets.SummariesBucket, metadataKey(rec.VideoID), body, "application/json"); err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}

	return nil
}

func (s *S3) FindJob(ctx context.Context, id model.VideoID) (model.JobRecord, error) {
	body, err := s.get(ctx, s.buckets.TranscriptionsBucket, jobInfoKey(id))
	if err != nil {
		return model.JobRecord{}, err
	}

	var rec model.JobRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return model.JobRecord{}, fmt.Errorf("unmarshal job record: %w", err)
	}

	return rec, nil
}

func (s *S3) SaveJob(ctx context.Context, rec model.JobRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal job record: %w", err)
	}

	return s.put(ctx, s.buckets.TranscriptionsBucket, jobInfoKey(rec.VideoID), body, "application/json")
}

func (s *S3) SaveCaptions(ctx context.Context, id model.VideoID, text string) error {
	return s.put(ctx, s.buckets.CaptionsBucket, captionsKey(id), []byte(text), "text/plain")
}

func (s *S3) SaveTranscript(ctx context.Context, id model.VideoID, text string) error {
	return s.put(ctx, s.buckets.TranscriptionsBucket, transcriptKey(id), []byte(text), "text/plain")
}

func (s *S3) UploadAudio(ctx context.Context, id model.VideoID, body io.Reader) (string, error) {
	key := audioKey(id)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.buckets.TranscriptionsBucket),
		Key:                  aws.String(key),
		Body:                 body,
		ContentType:          aws.String("audio/mp4"),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.buckets.TranscriptionsBucket, key), nil
}

func (s *S3) get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}

	return body, nil
}

func (s *S3) put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(body),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}

	return nil
}

func summaryKey(id model.VideoID) string    { return string(id) + "/summary.txt" }
func metadataKey(id model.VideoID) string   { return string(id) + "/metadata.json" }
func jobInfoKey(id model.VideoID) string    { return string(id) + "/job_info.json" }
func transcriptKey(id model.VideoID) string { return string(id) + "/transcript.txt" }
func captionsKey(id model.VideoID) string   { return string(id) + "/captions.txt" }
func audioKey(id model.VideoID) string      { return string(id) + "/audio.mp4" }
