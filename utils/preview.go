package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// PreviewLength is the maximum rune length of a message preview.
const PreviewLength = 100

// Preview derives the short list-view text for a message body. HTML is
// parsed and reduced to its text content; whitespace runs collapse to a
// single space.
func Preview(body string) string {
	text := body
	if strings.Contains(body, "<") {
		if node, err := html.Parse(strings.NewReader(body)); err == nil {
			var sb strings.Builder
			collectText(node, &sb)
			text = sb.String()
		}
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return strings.TrimSpace(string(runes[:PreviewLength])) + "..."
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	case html.ElementNode:
		// Skip non-content elements
		if n.Data == "script" || n.Data == "style" || n.Data == "head" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
