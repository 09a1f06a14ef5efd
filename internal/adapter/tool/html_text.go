package tool

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type TextConfig struct {
	TagsToSkip    []string
	MaxOutputSize int
}

var DefaultTextConfig = TextConfig{
	TagsToSkip: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "template", "nav", "footer",
	},
	MaxOutputSize: 20_000,
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "pre": true, "table": true,
}

// ExtractReadableText returns the visible text of an HTML document, one
// block element per line. Unparsable input is returned as is.
func ExtractReadableText(rawHTML string, cfg *TextConfig) string {
	if cfg == nil {
		cfg = &DefaultTextConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return truncateText(rawHTML, cfg.MaxOutputSize)
	}

	root := findNode(doc, "body")
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	if title := findNode(doc, "title"); title != nil && title.FirstChild != nil {
		sb.WriteString(strings.TrimSpace(title.FirstChild.Data))
		sb.WriteString("\n\n")
	}
	collectText(root, cfg, &sb)

	return truncateText(normalizeLines(sb.String()), cfg.MaxOutputSize)
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, cfg *TextConfig, sb *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
			sb.WriteString(text)
			sb.WriteByte(' ')
		}
		return
	case html.ElementNode:
		if isOneOf(n.Data, cfg.TagsToSkip...) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, cfg, sb)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteByte('\n')
	}
}

func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func truncateText(s string, maxSize int) string {
	if maxSize <= 0 || len(s) <= maxSize {
		return s
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
