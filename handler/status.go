package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"vidsummarize.online/backend/process"
)

type StatusAPI struct {
	processor SummaryProcessor
	logger    *slog.Logger
}

func NewStatusAPI(processor SummaryProcessor, logger *slog.Logger) *StatusAPI {
	return &StatusAPI{
		processor: processor,
		logger:    logger,
	}
}

// Status handles GET /status?jobId=... polling for a dispatched
// transcription job.
func (s *StatusAPI) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		Error(w, http.StatusBadRequest, "missing job id", errors.New("request needs a jobId query parameter"))
		return
	}

	result, err := s.processor.ResolveJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error("could not resolve job",
			slog.String("job", jobID),
			slog.String("error", err.Error()))

		if errors.Is(err, process.ErrInvalidJobID) {
			Error(w, http.StatusBadRequest, "invalid job id", err)
			return
		}
		Error(w, http.StatusInternalServerError, "could not resolve job", err)
		return
	}

	JSON(w, statusCode(result), responseFromResult(result))
}
