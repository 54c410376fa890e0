package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"vidsummarize.online/backend/fetcher"
	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/process"
	"vidsummarize.online/backend/storage"
)

type SummaryAPI struct {
	processor SummaryProcessor
	logger    *slog.Logger
}

func NewSummaryAPI(processor SummaryProcessor, logger *slog.Logger) *SummaryAPI {
	return &SummaryAPI{
		processor: processor,
		logger:    logger,
	}
}

// Summarize handles POST /summarize. The body carries either a full YouTube
// URL or a bare video id.
func (s *SummaryAPI) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL     string `json:"url"`
		VideoID string `json:"videoId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "could not decode request body", err)
		return
	}

	raw := req.URL
	if raw == "" {
		raw = req.VideoID
	}
	if raw == "" {
		Error(w, http.StatusBadRequest, "missing video reference", errors.New("request needs a url or videoId field"))
		return
	}

	id, ok := fetcher.ExtractVideoID(raw)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid video reference", fmt.Errorf("could not extract a video id from %q", raw))
		return
	}

	s.process(w, r, id)
}

// SummarizeByID handles POST /summary/{videoId}.
func (s *SummaryAPI) SummarizeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := fetcher.ExtractVideoID(mux.Vars(r)["videoId"])
	if !ok {
		Error(w, http.StatusBadRequest, "invalid video id", process.ErrInvalidVideoID)
		return
	}

	s.process(w, r, id)
}

// GetSummary handles GET /summary/{videoId}. Unlike the POST variant it never
// starts a new pipeline run, it only reports what is already known.
func (s *SummaryAPI) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := model.VideoID(mux.Vars(r)["videoId"])
	if !id.Valid() {
		Error(w, http.StatusBadRequest, "invalid video id", process.ErrInvalidVideoID)
		return
	}

	result, err := s.processor.Lookup(r.Context(), id)
	switch {
	case err == nil:
		JSON(w, statusCode(result), responseFromResult(result))
	case errors.Is(err, storage.ErrNotFound):
		// not an error to the polling client, just "nothing here yet"
		JSON(w, http.StatusOK, SummaryResponse{
			Status:  "not_found",
			VideoID: string(id),
		})
	default:
		s.returnErr(w, id, err)
	}
}

func (s *SummaryAPI) process(w http.ResponseWriter, r *http.Request, id model.VideoID) {
	result, err := s.processor.Process(r.Context(), id)
	if err != nil {
		s.returnErr(w, id, err)
		return
	}

	JSON(w, statusCode(result), responseFromResult(result))
}

func (s *SummaryAPI) returnErr(w http.ResponseWriter, id model.VideoID, err error) {
	s.logger.Error("could not process video",
		slog.String("video", string(id)),
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, process.ErrInvalidVideoID):
		Error(w, http.StatusBadRequest, "invalid video id", err)
	case errors.Is(err, fetcher.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video not found", err)
	case errors.Is(err, fetcher.ErrNoContent):
		Error(w, http.StatusNotFound, "no content available for video", err)
	default:
		Error(w, http.StatusInternalServerError, "could not process video", err)
	}
}
