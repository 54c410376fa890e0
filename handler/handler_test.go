package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"vidsummarize.online/backend/fetcher"
	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/process"
	"vidsummarize.online/backend/storage"
)

type stubProcessor struct {
	result       process.Result
	err          error
	lookupResult process.Result
	lookupErr    error
	lastVideoID  model.VideoID
	lastJobName  string
}

func (s *stubProcessor) Process(_ context.Context, id model.VideoID) (process.Result, error) {
	s.lastVideoID = id
	return s.result, s.err
}

func (s *stubProcessor) Lookup(_ context.Context, id model.VideoID) (process.Result, error) {
	s.lastVideoID = id
	return s.lookupResult, s.lookupErr
}

func (s *stubProcessor) ResolveJob(_ context.Context, jobName string) (process.Result, error) {
	s.lastJobName = jobName
	return s.result, s.err
}

func newTestServer(processor SummaryProcessor) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := NewGoogleAuth(&oauth2.Config{ClientID: "client", ClientSecret: "secret"}, logger)

	return NewServer(processor, auth, logger)
}

func doRequest(t *testing.T, server *Server, method, path, body string) (*http.Response, SummaryResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	resp := rec.Result()
	var parsed SummaryResponse
	json.NewDecoder(resp.Body).Decode(&parsed)

	return resp, parsed
}

func TestSummarizeCompletedVideo(t *testing.T) {
	processor := &stubProcessor{result: process.Result{
		Status:    process.StatusCompleted,
		VideoID:   "dQw4w9WgXcQ",
		Title:     "A Video",
		Summary:   "the summary",
		Method:    model.MethodCaptions,
		Sentiment: "POSITIVE",
	}}
	server := newTestServer(processor)

	resp, body := doRequest(t, server, http.MethodPost, "/summarize", `{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Status != "completed" || body.Summary != "the summary" || body.Method != "captions" {
		t.Errorf("unexpected response %+v", body)
	}
	if processor.lastVideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected the extracted video id, got %q", processor.lastVideoID)
	}
}

func TestSummarizeAcceptsBareVideoID(t *testing.T) {
	processor := &stubProcessor{result: process.Result{Status: process.StatusCompleted, VideoID: "dQw4w9WgXcQ"}}
	server := newTestServer(processor)

	resp, _ := doRequest(t, server, http.MethodPost, "/summarize", `{"videoId":"dQw4w9WgXcQ"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSummarizeProcessingReturns202(t *testing.T) {
	processor := &stubProcessor{result: process.Result{
		Status:  process.StatusProcessing,
		VideoID: "dQw4w9WgXcQ",
		JobName: "transcribe-dQw4w9WgXcQ-ab12cd34",
	}}
	server := newTestServer(processor)

	resp, body := doRequest(t, server, http.MethodPost, "/summarize", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	if body.JobID != "transcribe-dQw4w9WgXcQ-ab12cd34" {
		t.Errorf("expected the job id in the response, got %q", body.JobID)
	}
}

func TestSummarizeRejectsBadInput(t *testing.T) {
	server := newTestServer(&stubProcessor{})

	for name, body := range map[string]string{
		"invalid url":  `{"url":"https://example.com/nothing"}`,
		"missing body": `{}`,
		"not json":     `not json`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := doRequest(t, server, http.MethodPost, "/summarize", body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestSummarizeMapsPipelineErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		err  error
		want int
	}{
		"invalid id":  {process.ErrInvalidVideoID, http.StatusBadRequest},
		"not found":   {fetcher.ErrVideoNotFound, http.StatusNotFound},
		"no content":  {fetcher.ErrNoContent, http.StatusNotFound},
		"llm failure": {io.ErrUnexpectedEOF, http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			server := newTestServer(&stubProcessor{err: tc.err})
			resp, _ := doRequest(t, server, http.MethodPost, "/summarize", `{"videoId":"dQw4w9WgXcQ"}`)
			if resp.StatusCode != tc.want {
				t.Errorf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestSummarizeByPathVideoID(t *testing.T) {
	processor := &stubProcessor{result: process.Result{Status: process.StatusCompleted, VideoID: "dQw4w9WgXcQ"}}
	server := newTestServer(processor)

	resp, _ := doRequest(t, server, http.MethodPost, "/summary/dQw4w9WgXcQ", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if processor.lastVideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected the path video id, got %q", processor.lastVideoID)
	}
}

func TestGetSummaryStates(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		processor := &stubProcessor{lookupResult: process.Result{Status: process.StatusCompleted, Summary: "done"}}
		resp, body := doRequest(t, newTestServer(processor), http.MethodGet, "/summary/dQw4w9WgXcQ", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if body.Summary != "done" {
			t.Errorf("unexpected body %+v", body)
		}
	})

	t.Run("processing", func(t *testing.T) {
		processor := &stubProcessor{lookupResult: process.Result{Status: process.StatusProcessing, JobName: "transcribe-dQw4w9WgXcQ-ab12cd34"}}
		resp, _ := doRequest(t, newTestServer(processor), http.MethodGet, "/summary/dQw4w9WgXcQ", "")
		if resp.StatusCode != http.StatusAccepted {
			t.Errorf("expected 202, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown video", func(t *testing.T) {
		processor := &stubProcessor{lookupErr: storage.ErrNotFound}
		resp, body := doRequest(t, newTestServer(processor), http.MethodGet, "/summary/dQw4w9WgXcQ", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if body.Status != "not_found" {
			t.Errorf("expected not_found status, got %q", body.Status)
		}
	})
}

func TestStatusEndpoint(t *testing.T) {
	t.Run("missing job id", func(t *testing.T) {
		resp, _ := doRequest(t, newTestServer(&stubProcessor{}), http.MethodGet, "/status", "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("in progress", func(t *testing.T) {
		processor := &stubProcessor{result: process.Result{Status: process.StatusInProgress, JobName: "transcribe-dQw4w9WgXcQ-ab12cd34"}}
		resp, body := doRequest(t, newTestServer(processor), http.MethodGet, "/status?jobId=transcribe-dQw4w9WgXcQ-ab12cd34", "")
		if resp.StatusCode != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", resp.StatusCode)
		}
		if body.Status != "in_progress" {
			t.Errorf("unexpected status %q", body.Status)
		}
		if processor.lastJobName != "transcribe-dQw4w9WgXcQ-ab12cd34" {
			t.Errorf("unexpected job name %q", processor.lastJobName)
		}
	})

	t.Run("invalid job id", func(t *testing.T) {
		processor := &stubProcessor{err: process.ErrInvalidJobID}
		resp, _ := doRequest(t, newTestServer(processor), http.MethodGet, "/status?jobId=nonsense", "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("failed job", func(t *testing.T) {
		processor := &stubProcessor{result: process.Result{Status: process.StatusFailed, Note: "unsupported audio"}}
		resp, body := doRequest(t, newTestServer(processor), http.MethodGet, "/status?jobId=transcribe-dQw4w9WgXcQ-ab12cd34", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if body.Status != "failed" || body.Note != "unsupported audio" {
			t.Errorf("unexpected body %+v", body)
		}
	})
}

func TestAuthRejectsMissingCode(t *testing.T) {
	resp, _ := doRequest(t, newTestServer(&stubProcessor{}), http.MethodPost, "/auth", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAuthRejectsUnconfiguredClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(&stubProcessor{}, NewGoogleAuth(&oauth2.Config{}, logger), logger)

	resp, _ := doRequest(t, server, http.MethodPost, "/auth", `{"code":"abc"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	newTestServer(&stubProcessor{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/summarize", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	newTestServer(&stubProcessor{}).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Errorf("expected POST to be allowed, got %q", got)
	}
}
