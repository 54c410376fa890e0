package model

// SummaryRecord is written once per video on the first successful
// summarization and treated as immutable afterwards. Its presence takes
// precedence over any JobRecord for the same video.
type SummaryRecord struct {
	VideoID    VideoID `json:"videoId"`
	VideoTitle string  `json:"videoTitle"`
	Summary    string  `json:"summary,omitempty"`
	Method     Method  `json:"method,omitempty"`
	Sentiment  string  `json:"sentiment,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

// JobRecord is written when audio transcription is dispatched to an external
// job runner. It is never mutated, only superseded by a SummaryRecord.
type JobRecord struct {
	VideoID    VideoID `json:"videoId"`
	VideoTitle string  `json:"videoTitle"`
	JobName    string  `json:"jobName"`
	Timestamp  int64   `json:"timestamp"`
}
