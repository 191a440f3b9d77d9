package source

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// Backend selects the PDF extraction strategy.
type Backend string

const (
	// BackendAuto tries the native reader and falls back to pdftotext
	// when the tool is installed.
	BackendAuto Backend = "auto"
	// BackendNative uses the in-process reader, which supplies font
	// sizes and positions.
	BackendNative Backend = "native"
	// BackendPoppler shells out to pdftotext -layout; lines carry no
	// font metrics.
	BackendPoppler Backend = "poppler"
)

// ResolveBackend validates a backend name, checking the poppler
// capability when it is explicitly requested.
func ResolveBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendNative:
		return BackendNative, nil
	case BackendPoppler:
		if !HasPdftotext() {
			return "", fmt.Errorf("pdf backend poppler requires pdftotext in PATH")
		}
		return BackendPoppler, nil
	default:
		return "", fmt.Errorf("unknown pdf backend %q", name)
	}
}

// HasPdftotext reports whether the poppler pdftotext tool is installed.
func HasPdftotext() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

// PDFSource handles PDF files.
type PDFSource struct {
	Backend Backend
}

func (s *PDFSource) Extract(r io.Reader, filename string) ([]layout.Line, error) {
	// The native reader requires a ReadSeeker+size and pdftotext wants a
	// path, so stage the bytes in a temp file.
	tmp, err := os.CreateTemp("", "schedmark-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	switch s.Backend {
	case BackendNative:
		return extractNativeLines(tmpPath)
	case BackendPoppler:
		return extractPdftotextLines(tmpPath)
	default:
		lines, err := extractNativeLines(tmpPath)
		if err != nil && HasPdftotext() {
			lines, err = extractPdftotextLines(tmpPath)
		}
		if err != nil {
			return nil, fmt.Errorf("extract pdf: %w", err)
		}
		return lines, nil
	}
}

// Grouping thresholds, in PDF points: runs within lineTolerance
// vertically belong to the same visual line; a horizontal gap wider
// than wordGap between adjacent runs reads as a space.
const (
	lineTolerance = 3.0
	wordGap       = 3.0
)

func extractNativeLines(path string) ([]layout.Line, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b lineBuilder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := pageContent(page)
		if err != nil {
			continue
		}
		for _, line := range groupPageLines(content.Text, pageTopY(page)) {
			line.Page = i
			b.add(line)
		}
	}
	if len(b.lines) == 0 {
		return nil, fmt.Errorf("no extractable text")
	}
	return b.lines, nil
}

// pageContent isolates the content-stream decode: the underlying reader
// panics on malformed streams.
func pageContent(page pdflib.Page) (content pdflib.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode page content: %v", r)
		}
	}()
	return page.Content(), nil
}

// pageTopY returns the Y coordinate of the page's top edge, used to
// flip the bottom-origin run positions into top offsets.
func pageTopY(page pdflib.Page) float64 {
	mb := page.V.Key("MediaBox")
	if !mb.IsNull() && mb.Len() == 4 {
		return mb.Index(3).Float64()
	}
	// US Letter height when the MediaBox is inherited.
	return 792.0
}

// groupPageLines assembles positioned text runs into visual lines:
// runs whose baselines sit within lineTolerance belong to one line,
// read left to right. The line's font size is the run average weighted
// by length, and the line is bold when any run uses a bold face.
func groupPageLines(runs []pdflib.Text, topY float64) []layout.Line {
	kept := make([]pdflib.Text, 0, len(runs))
	for _, run := range runs {
		if run.S != "" {
			kept = append(kept, run)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Y > kept[j].Y
	})

	var lines []layout.Line
	for start := 0; start < len(kept); {
		end := start + 1
		for end < len(kept) && kept[start].Y-kept[end].Y <= lineTolerance {
			end++
		}
		row := make([]pdflib.Text, end-start)
		copy(row, kept[start:end])
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
		lines = append(lines, assembleLine(row, topY))
		start = end
	}
	return lines
}

func assembleLine(row []pdflib.Text, topY float64) layout.Line {
	var text strings.Builder
	var sizeSum float64
	var sizeWeight int
	bold := false

	for i, run := range row {
		if i > 0 {
			prev := row[i-1]
			if run.X-(prev.X+prev.W) > wordGap {
				text.WriteString(" ")
			}
		}
		text.WriteString(run.S)

		n := utf8.RuneCountInString(run.S)
		sizeSum += run.FontSize * float64(n)
		sizeWeight += n
		if strings.Contains(strings.ToLower(run.Font), "bold") {
			bold = true
		}
	}

	line := layout.Line{
		Text: text.String(),
		Top:  topY - row[0].Y,
		Left: row[0].X,
		Bold: bold,
	}
	if sizeWeight > 0 {
		line.FontSize = sizeSum / float64(sizeWeight)
	}
	return line
}

func extractPdftotextLines(path string) ([]layout.Line, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	var b lineBuilder
	for pageIdx, page := range strings.Split(string(out), "\f") {
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
	if len(b.lines) == 0 {
		return nil, fmt.Errorf("pdftotext produced no text")
	}
	return b.lines, nil
}
