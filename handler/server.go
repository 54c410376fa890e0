package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"vidsummarize.online/backend/model"
	"vidsummarize.online/backend/process"
)

// SummaryProcessor runs the summarization pipeline for the HTTP layer.
type SummaryProcessor interface {
	Process(ctx context.Context, id model.VideoID) (process.Result, error)
	Lookup(ctx context.Context, id model.VideoID) (process.Result, error)
	ResolveJob(ctx context.Context, jobName string) (process.Result, error)
}

type Server struct {
	router http.Handler
	logger *slog.Logger
}

func NewServer(processor SummaryProcessor, auth *GoogleAuth, logger *slog.Logger) *Server {
	summaryAPI := NewSummaryAPI(processor, logger)
	statusAPI := NewStatusAPI(processor, logger)

	router := mux.NewRouter()
	router.HandleFunc("/", Index).Methods(http.MethodGet)
	router.HandleFunc("/health", Health).Methods(http.MethodGet)
	router.HandleFunc("/summarize", summaryAPI.Summarize).Methods(http.MethodPost)
	router.HandleFunc("/summary/{videoId}", summaryAPI.SummarizeByID).Methods(http.MethodPost)
	router.HandleFunc("/summary/{videoId}", summaryAPI.GetSummary).Methods(http.MethodGet)
	router.HandleFunc("/status", statusAPI.Status).Methods(http.MethodGet)
	router.HandleFunc("/auth", auth.Exchange).Methods(http.MethodPost)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Amz-Date", "X-Api-Key", "X-Requested-With"},
		MaxAge:         3600,
	})

	return &Server{
		router: corsWrapper.Handler(router),
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodOptions {
		w.Header().Set("Content-Type", "application/json")
	}
	s.router.ServeHTTP(w, r)
	s.logger.Info("request served",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
}

func Index(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, struct {
		Service   string            `json:"service"`
		Endpoints map[string]string `json:"endpoints"`
	}{
		Service: "youtube video summarizer",
		Endpoints: map[string]string{
			"POST /summarize":          "summarize a video by url or id",
			"POST /summary/{videoId}":  "summarize a video by id",
			"GET /summary/{videoId}":   "look up a stored summary",
			"GET /status?jobId={name}": "poll a transcription job",
			"POST /auth":               "exchange a google oauth code",
			"GET /health":              "health check",
		},
	})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}
