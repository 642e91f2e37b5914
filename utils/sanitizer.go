package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy strips every tag, leaving plain text
	StrictPolicy *bluemonday.Policy
	// BodyPolicy keeps the safe subset of HTML allowed in stored bodies
	BodyPolicy *bluemonday.Policy
)

func init() {
	StrictPolicy = bluemonday.StrictPolicy()

	BodyPolicy = bluemonday.UGCPolicy()

	// Additional safe elements common in mail bodies
	BodyPolicy.AllowElements("p", "br", "div", "span", "h1", "h2", "h3", "h4", "h5", "h6")
	BodyPolicy.AllowElements("strong", "em", "u", "s", "code", "pre")
	BodyPolicy.AllowElements("ul", "ol", "li")
	BodyPolicy.AllowElements("blockquote")

	BodyPolicy.AllowAttrs("href").OnElements("a")
	BodyPolicy.RequireParseableURLs(true)
	BodyPolicy.AllowURLSchemes("http", "https", "mailto")
}

// SanitizeBody sanitizes a composed message body before it is stored.
func SanitizeBody(body string) string {
	return BodyPolicy.Sanitize(body)
}

// StripHTML removes all HTML tags from content
func StripHTML(html string) string {
	return StrictPolicy.Sanitize(html)
}
