package tpurl

import (
	"regexp"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
)

var RegexHomepage = regexp.MustCompile("^/$")

func BuildHomepage() string {
	return Url("/", nil)
}

var RegexLogin = regexp.MustCompile("^/login$")

func BuildLogin() string {
	return Url("/login", nil)
}

var RegexLogout = regexp.MustCompile("^/logout$")

func BuildLogout() string {
	return Url("/logout", nil)
}

var RegexUpload = regexp.MustCompile("^/upload$")

func BuildUpload() string {
	return Url("/upload", nil)
}

// Content pages. The first path segment doubles as the source prefix the
// move endpoint accepts in free-text source URLs, so the two tables must
// stay in sync (see relocation.ResolveSource).

var RegexForumThread = regexp.MustCompile(`^/forum/(?P<id>[^/]+)$`)

func BuildForumThread(id string) string {
	return Url("/forum/"+id, nil)
}

var RegexProject = regexp.MustCompile(`^/projects/(?P<id>[^/]+)$`)

func BuildProject(id string) string {
	return Url("/projects/"+id, nil)
}

var RegexMusicPost = regexp.MustCompile(`^/music/(?P<id>[^/]+)$`)

func BuildMusicPost(id string) string {
	return Url("/music/"+id, nil)
}

var RegexTimelineUpdate = regexp.MustCompile(`^/timeline/(?P<id>[^/]+)$`)

func BuildTimelineUpdate(id string) string {
	return Url("/timeline/"+id, nil)
}

var RegexEvent = regexp.MustCompile(`^/events/(?P<id>[^/]+)$`)

func BuildEvent(id string) string {
	return Url("/events/"+id, nil)
}

var RegexDevLog = regexp.MustCompile(`^/devlog/(?P<id>[^/]+)$`)

func BuildDevLog(id string) string {
	return Url("/devlog/"+id, nil)
}

// The canonical URL for any content item.
func BuildContent(ref models.ContentRef) string {
	switch ref.Type {
	case models.ContentTypeForumThread:
		return BuildForumThread(ref.ID)
	case models.ContentTypeProject:
		return BuildProject(ref.ID)
	case models.ContentTypeMusicPost:
		return BuildMusicPost(ref.ID)
	case models.ContentTypeTimelineUpdate:
		return BuildTimelineUpdate(ref.ID)
	case models.ContentTypeEvent:
		return BuildEvent(ref.ID)
	case models.ContentTypeDevLog:
		return BuildDevLog(ref.ID)
	default:
		panic(oops.New(nil, "can't build a url for unknown content type '%s'", ref.Type))
	}
}

var RegexAdminMove = regexp.MustCompile("^/admin/move$")

func BuildAdminMove() string {
	return Url("/admin/move", nil)
}

var RegexAdminMoveList = regexp.MustCompile("^/admin/moves$")

func BuildAdminMoveList() string {
	return Url("/admin/moves", nil)
}

var RegexCatchAll = regexp.MustCompile("^")
