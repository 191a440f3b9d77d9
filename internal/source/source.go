// Package source extracts layout-annotated lines from schedule
// documents. Each supported format has its own Source implementation;
// the marking engine depends only on the produced lines, never on which
// backend produced them.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// Source extracts the ordered line sequence from one document.
// Implementations must yield lines in reading order: page ascending,
// then top to bottom, then left to right.
type Source interface {
	Extract(r io.Reader, filename string) ([]layout.Line, error)
}

// SupportedExtensions lists the file extensions a Source exists for.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the Source for a filename. PDF files come back with
// the auto backend; callers with an explicit backend set it on the
// returned *PDFSource.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{Backend: BackendAuto}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension has a Source.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// lineBuilder assembles lines in reading order, assigning the global
// sequence index.
type lineBuilder struct {
	lines []layout.Line
}

func (b *lineBuilder) add(line layout.Line) {
	line.Seq = len(b.lines)
	b.lines = append(b.lines, line)
}

// Synthetic layout attributes for formats without measured glyphs,
// chosen against the default thresholds: h1/h2 clear the L1 threshold,
// h3 clears L2, and body text clears none.
const syntheticBodySize = 10.0

func syntheticHeadingSize(level int) float64 {
	switch level {
	case 1:
		return 16.0
	case 2:
		return 13.0
	case 3:
		return 11.5
	default:
		return 10.5
	}
}
