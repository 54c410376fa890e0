package fetcher

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"vidsummarize.online/backend/model"
)

var (
	urlRE        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	handleRE     = regexp.MustCompile(`[@#][\w.]+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Description is the last stage of the chain: the video's own description
// text, stripped of links, handles and hashtags.
type Description struct{}

func NewDescription() *Description {
	return &Description{}
}

func (d *Description) Name() string { return "description" }

func (d *Description) Acquire(_ context.Context, video *model.Video) (Acquisition, error) {
	text := CleanDescription(video.Description)
	if !usable(text, minDescriptionChars) {
		return Acquisition{}, errors.New("no usable description")
	}

	return Acquisition{Text: text, Method: model.MethodDescription}, nil
}

// CleanDescription removes URLs, @handles and #hashtags and collapses
// whitespace.
func CleanDescription(raw string) string {
	text := urlRE.ReplaceAllString(raw, "")
	text = handleRE.ReplaceAllString(text, "")
	text = whitespaceRE.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
