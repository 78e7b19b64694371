package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Text extracts the visible text of an HTML page. Markup, scripts, and styles
// are stripped; text nodes come back entity-decoded. Unlike a readability
// pass, nothing else is dropped: contact numbers tend to live in headers,
// footers, and sidebars, so the whole tree is kept.
func Text(input []byte) string {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		// html.Parse recovers from malformed markup; a hard error leaves us
		// with nothing recoverable.
		return ""
	}
	var b strings.Builder
	collectText(&b, node)
	return normalizeWhitespace(b.String())
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "iframe", "template":
			return
		case "br", "hr":
			b.WriteString("\n")
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "td", "th":
			// Block boundaries separate text so adjacent cells or paragraphs
			// never fuse into one digit run.
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "td", "th":
			b.WriteString("\n")
		}
	}
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		// U+00A0 shows up wherever markup used &nbsp;, including inside
		// phone numbers; fold it into a plain space.
		if r == ' ' || r == '\t' || r == '\r' || r == ' ' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
