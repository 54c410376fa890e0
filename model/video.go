package model

// VideoID is the 11-character token YouTube assigns to a video.
type VideoID string

func (id VideoID) Valid() bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}

// Method names the content source a summary was generated from.
type Method string

const (
	MethodCaptions           Method = "captions"
	MethodAudioTranscription Method = "audio_transcription"
	MethodDescription        Method = "description"
)

type Video struct {
	ID          VideoID
	Title       string
	Description string
	Channel     string
	PublishedAt string
}
