package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"vidsummarize.online/backend/model"
)

type stubStrategy struct {
	name   string
	acq    Acquisition
	err    error
	called int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Acquire(_ context.Context, _ *model.Video) (Acquisition, error) {
	s.called++
	if s.err != nil {
		return Acquisition{}, s.err
	}
	return s.acq, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAcquirerStopsAtFirstSuccess(t *testing.T) {
	captions := &stubStrategy{name: "captions", acq: Acquisition{Text: "some captions", Method: model.MethodCaptions}}
	audio := &stubStrategy{name: "audio"}

	acquirer := NewAcquirer(discardLogger(), captions, audio)

	acq, err := acquirer.Acquire(context.Background(), &model.Video{ID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acq.Text != "some captions" {
		t.Errorf("expected captions text, got %q", acq.Text)
	}
	if audio.called != 0 {
		t.Errorf("expected later strategy to be skipped, it was called %d times", audio.called)
	}
}

func TestAcquirerFallsThrough(t *testing.T) {
	captions := &stubStrategy{name: "captions", err: errors.New("no caption track")}
	transcript := &stubStrategy{name: "transcript", err: errors.New("rate limited")}
	description := &stubStrategy{name: "description", acq: Acquisition{Text: "a description", Method: model.MethodDescription}}

	acquirer := NewAcquirer(discardLogger(), captions, transcript, description)

	acq, err := acquirer.Acquire(context.Background(), &model.Video{ID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acq.Method != model.MethodDescription {
		t.Errorf("expected description method, got %q", acq.Method)
	}
	if captions.called != 1 || transcript.called != 1 {
		t.Errorf("expected every earlier strategy to be tried once, got %d and %d", captions.called, transcript.called)
	}
}

func TestAcquirerPropagatesPendingJob(t *testing.T) {
	captions := &stubStrategy{name: "captions", err: errors.New("no caption track")}
	audio := &stubStrategy{name: "audio", acq: Acquisition{JobName: "transcribe-dQw4w9WgXcQ-ab12cd34"}}

	acquirer := NewAcquirer(discardLogger(), captions, audio)

	acq, err := acquirer.Acquire(context.Background(), &model.Video{ID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acq.Pending() {
		t.Fatal("expected a pending acquisition")
	}
	if acq.JobName != "transcribe-dQw4w9WgXcQ-ab12cd34" {
		t.Errorf("unexpected job name %q", acq.JobName)
	}
}

func TestAcquirerAllStrategiesFail(t *testing.T) {
	first := &stubStrategy{name: "first", err: errors.New("nope")}
	second := &stubStrategy{name: "second", err: errors.New("also nope")}

	acquirer := NewAcquirer(discardLogger(), first, second)

	if _, err := acquirer.Acquire(context.Background(), &model.Video{ID: "dQw4w9WgXcQ"}); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestUsable(t *testing.T) {
	if usable("  short  ", 10) {
		t.Error("expected short text to be unusable")
	}
	if !usable(strings.Repeat("a", 11), 10) {
		t.Error("expected text over the threshold to be usable")
	}
	if usable(strings.Repeat("a", 10), 10) {
		t.Error("expected text exactly at the threshold to be unusable")
	}
}
