package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vidsummarize.online/backend/process"
)

// SummaryResponse is the JSON shape shared by the summarize and status
// endpoints. Zero fields are omitted, so a processing response only carries
// the job id and a completed one only the summary fields.
type SummaryResponse struct {
	Status    string `json:"status"`
	VideoID   string `json:"video_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Method    string `json:"method,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	JobID     string `json:"job_id,omitempty"`
	Note      string `json:"note,omitempty"`
}

func responseFromResult(result process.Result) SummaryResponse {
	return SummaryResponse{
		Status:    result.Status,
		VideoID:   string(result.VideoID),
		Title:     result.Title,
		Summary:   result.Summary,
		Method:    string(result.Method),
		Sentiment: result.Sentiment,
		JobID:     result.JobName,
		Note:      result.Note,
	}
}

// statusCode picks the HTTP status for a pipeline result: completed
// summaries are 200, everything still being worked on is 202.
func statusCode(result process.Result) int {
	switch result.Status {
	case process.StatusProcessing, process.StatusInProgress:
		return http.StatusAccepted
	default:
		return http.StatusOK
	}
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	raw, err := json.Marshal(body)
	if err != nil {
		fmt.Fprintf(w, `{"error": %q}`, err.Error())
		return
	}
	w.Write(raw)
}

func Error(w http.ResponseWriter, status int, message string, err error) {
	JSON(w, status, struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{
		Message: message,
		Error:   err.Error(),
	})
}
