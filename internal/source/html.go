package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// HTMLSource handles HTML documents. h1-h6 elements become heading
// lines; paragraph-like blocks contribute body lines, flagged bold when
// their subtree carries a b or strong span.
type HTMLSource struct{}

func (s *HTMLSource) Extract(r io.Reader, filename string) ([]layout.Line, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var b lineBuilder
	row := 0
	addLine := func(content string, size float64, bold bool) {
		b.add(layout.Line{
			Text:     content,
			Page:     1,
			Top:      float64(row),
			FontSize: size,
			Bold:     bold,
		})
		row++
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					addLine(t, syntheticHeadingSize(level), true)
				}
				return
			}

			// Skip page chrome.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				bold := containsBold(n)
				for _, line := range strings.Split(textContent(n), "\n") {
					line = strings.TrimSpace(line)
					if line != "" {
						addLine(line, syntheticBodySize, bold)
					}
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.lines, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func containsBold(n *html.Node) bool {
	if n.Type == html.ElementNode && (n.Data == "b" || n.Data == "strong") {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsBold(c) {
			return true
		}
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
