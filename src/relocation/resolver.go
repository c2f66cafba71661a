package relocation

import (
	"net/url"
	"strings"

	"git.tidepool.community/tidepool/tidepool/src/models"
)

var sourcePrefixes = map[string]models.ContentType{
	"forum":    models.ContentTypeForumThread,
	"projects": models.ContentTypeProject,
	"music":    models.ContentTypeMusicPost,
	"timeline": models.ContentTypeTimelineUpdate,
	"events":   models.ContentTypeEvent,
	"devlog":   models.ContentTypeDevLog,
}

// ResolveSourceUrl extracts a content reference from a site URL or bare
// path like "/forum/abc123" or "https://tidepool.community/music/xyz/edit".
// Only the first two path segments matter; anything after the id is ignored.
func ResolveSourceUrl(rawUrl string) (models.ContentRef, bool) {
	rawUrl = strings.TrimSpace(rawUrl)
	if rawUrl == "" {
		return models.ContentRef{}, false
	}

	path := rawUrl
	if parsed, err := url.Parse(rawUrl); err == nil && parsed.Path != "" {
		path = parsed.Path
	}

	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 2 {
		return models.ContentRef{}, false
	}

	contentType, ok := sourcePrefixes[segments[0]]
	if !ok {
		return models.ContentRef{}, false
	}
	return models.ContentRef{Type: contentType, ID: segments[1]}, true
}

// ResolveSource picks the move's source item. A parseable source URL wins
// over an explicit type/id pair; the pair is the fallback for admin tools
// that already know exactly what they are moving.
func ResolveSource(rawUrl string, explicit models.ContentRef) (models.ContentRef, bool) {
	if ref, ok := ResolveSourceUrl(rawUrl); ok {
		return ref, true
	}
	if explicit.Type.Valid() && explicit.ID != "" {
		return explicit, true
	}
	return models.ContentRef{}, false
}
