package parsing

import (
	"mvdan.cc/xurls/v2"
)

var urlRegex = xurls.Strict()

// Reports whether the whole string is a single well-formed URL with a
// scheme. Used to validate external links on music posts.
func IsUrl(s string) bool {
	return urlRegex.FindString(s) == s && s != ""
}

// Returns all URLs found in a block of text, in order of appearance.
func ExtractUrls(text string) []string {
	return urlRegex.FindAllString(text, -1)
}
