// Package layout defines the annotated line model shared by the
// extraction backends and the marking engine.
package layout

// Line is one visual text line from a source document, annotated with
// the layout signals the classification rules read.
type Line struct {
	Text     string
	Page     int     // 1-based page number
	Top      float64 // vertical offset from the top of the page
	Left     float64 // horizontal offset from the left edge
	FontSize float64 // average font size across the line (0 when unknown)
	Bold     bool    // true when any run on the line uses a bold face
	Seq      int     // monotonically increasing reading-order index
}

// PageLines is the slice of lines belonging to one page, in reading order.
type PageLines struct {
	Number int
	Lines  []Line
}

// Pages groups lines by page, preserving reading order. Lines are
// expected page-ascending, so each page appears once, in order.
func Pages(lines []Line) []PageLines {
	var pages []PageLines
	for _, line := range lines {
		if n := len(pages); n == 0 || pages[n-1].Number != line.Page {
			pages = append(pages, PageLines{Number: line.Page})
		}
		last := &pages[len(pages)-1]
		last.Lines = append(last.Lines, line)
	}
	return pages
}
