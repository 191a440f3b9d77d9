package llmtag

import (
	"fmt"
	"strings"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// DefaultPagesPerWindow balances context size against call count for
// typical schedule layouts.
const DefaultPagesPerWindow = 10

// Window is one contiguous page range sent in a single API call.
type Window struct {
	Index     int
	StartPage int
	EndPage   int
	Text      string
}

// Windows splits extracted lines into page windows. Each page is
// rendered with a page header so the model can keep page boundaries in
// its output.
func Windows(lines []layout.Line, pagesPerWindow int) []Window {
	if pagesPerWindow <= 0 {
		pagesPerWindow = DefaultPagesPerWindow
	}

	pages := layout.Pages(lines)
	var windows []Window
	for start := 0; start < len(pages); start += pagesPerWindow {
		end := start + pagesPerWindow
		if end > len(pages) {
			end = len(pages)
		}
		group := pages[start:end]

		blocks := make([]string, 0, len(group))
		for _, page := range group {
			blocks = append(blocks, renderPage(page))
		}
		windows = append(windows, Window{
			Index:     len(windows),
			StartPage: group[0].Number,
			EndPage:   group[len(group)-1].Number,
			Text:      strings.Join(blocks, "\n\n"),
		})
	}
	return windows
}

func renderPage(page layout.PageLines) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Page %d ---\n", page.Number)
	for i, line := range page.Lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text)
	}
	return sb.String()
}
