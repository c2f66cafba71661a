package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkdown(t *testing.T) {
	html := ParseMarkdown("Hello *world*")
	assert.Contains(t, html, "<em>world</em>")

	html = ParseMarkdown("~~struck~~")
	assert.Contains(t, html, "<del>struck</del>")
}

func TestCodeBlockWrapper(t *testing.T) {
	html := ParseMarkdown("```go\npackage main\n```")
	assert.Contains(t, html, `<pre class="tp-code">`)
}

func TestIsUrl(t *testing.T) {
	assert.True(t, IsUrl("https://example.com/track/123"))
	assert.False(t, IsUrl("not a url"))
	assert.False(t, IsUrl(""))
	assert.False(t, IsUrl("check out https://example.com please"))
}

func TestExtractUrls(t *testing.T) {
	urls := ExtractUrls("first https://a.example.com then https://b.example.com/x")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com/x"}, urls)
}
