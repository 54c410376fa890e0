package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	ytdl "github.com/kkdai/youtube/v2"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"vidsummarize.online/backend/fetcher"
	"vidsummarize.online/backend/handler"
	"vidsummarize.online/backend/process"
	"vidsummarize.online/backend/storage"
	"vidsummarize.online/backend/transcribe"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(getParam("AWS_REGION", "us-east-1")))
	if err != nil {
		logger.Error("unable to load aws config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := storage.NewS3(s3.NewFromConfig(awsCfg), storage.S3Info{
		CaptionsBucket:       getParam("CAPTIONS_BUCKET", "video-captions-bucket-youtube-video-summarizer"),
		TranscriptionsBucket: getParam("TRANSCRIPTIONS_BUCKET", "video-transcriptions-bucket-youtube-video-summarizer"),
		SummariesBucket:      getParam("SUMMARIES_BUCKET", "video-summaries-bucket-youtube-video-summarizer"),
	})

	transcriber := transcribe.New(awstranscribe.NewFromConfig(awsCfg))

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(getParam("YOUTUBE_API_KEY", "")))
	if err != nil {
		logger.Error("unable to create youtube service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(getParam("GEMINI_API_KEY", "")))
	if err != nil {
		logger.Error("unable to create gemini client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer geminiClient.Close()

	downloader := &ytdl.Client{}

	acquirer := fetcher.NewAcquirer(logger,
		fetcher.NewCaptionsAPI(ytClient, store, logger),
		fetcher.NewTranscriptLibrary(downloader, store, logger),
		fetcher.NewAudioTranscription(downloader, store, transcriber, os.TempDir(), logger),
		fetcher.NewDescription(),
	)

	summarizer := process.NewChain(logger,
		process.NewGemini(geminiClient, getParam("GEMINI_MODEL", "gemini-1.5-flash-latest")),
		process.NewOpenAISummarizer(openai.NewClient(getParam("OPENAI_API_KEY", ""))),
	)

	sentiment := process.NewComprehend(comprehend.NewFromConfig(awsCfg))

	processor := process.NewProcessor(
		fetcher.NewYoutube(ytClient),
		acquirer,
		summarizer,
		sentiment,
		transcriber,
		store,
		store,
		store,
		logger,
	)

	auth := handler.NewGoogleAuth(&oauth2.Config{
		ClientID:     getParam("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getParam("GOOGLE_CLIENT_SECRET", ""),
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeForceSslScope},
	}, logger)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", slog.String("error", err.Error()))
		os.Exit(1)
	}
	go http.ListenAndServe(fmt.Sprintf(":%d", port), handler.NewServer(processor, auth, logger))
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
