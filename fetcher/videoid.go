package fetcher

import (
	"net/url"
	"regexp"
	"strings"

	"vidsummarize.online/backend/model"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/.*[?&]v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
}

// ExtractVideoID parses the video ID out of the URL shapes YouTube uses:
// watch?v=, youtu.be short links, /embed/, /shorts/ and bare 11-character
// IDs. Structured parsing is tried first, then a regex search over the raw
// string. It reports false for anything it cannot place.
func ExtractVideoID(raw string) (model.VideoID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if u, err := url.Parse(raw); err == nil {
		if id, ok := idFromURL(u); ok {
			return id, true
		}
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(raw); len(m) == 2 {
			if id := model.VideoID(m[1]); id.Valid() {
				return id, true
			}
		}
	}

	return "", false
}

func idFromURL(u *url.URL) (model.VideoID, bool) {
	var candidate string
	switch {
	case u.Path == "/watch":
		candidate = u.Query().Get("v")
	case u.Host == "youtu.be":
		candidate = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(u.Path, "/embed/"):
		candidate = strings.TrimPrefix(u.Path, "/embed/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		candidate = strings.TrimPrefix(u.Path, "/shorts/")
	}

	id := model.VideoID(candidate)

	return id, id.Valid()
}
