package source

import (
	"io"
	"strings"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// TextSource handles plain text, including pdftotext-style dumps where
// form feeds separate pages.
type TextSource struct{}

func (s *TextSource) Extract(r io.Reader, filename string) ([]layout.Line, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var b lineBuilder
	for pageIdx, page := range strings.Split(string(data), "\f") {
		rows := strings.Split(page, "\n")
		if n := len(rows); n > 0 && rows[n-1] == "" {
			rows = rows[:n-1]
		}
		for rowIdx, row := range rows {
			b.add(layout.Line{
				Text: strings.TrimRight(row, "\r"),
				Page: pageIdx + 1,
				Top:  float64(rowIdx),
			})
		}
	}
	return b.lines, nil
}
