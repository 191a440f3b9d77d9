package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// MarkdownSource handles Markdown using goldmark. Headings become lines
// with synthetic size and bold so the layout rules see them; other
// blocks contribute body lines.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(r io.Reader, filename string) ([]layout.Line, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

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

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title != "" {
				addLine(title, syntheticHeadingSize(node.Level), true)
			}
		default:
			for _, line := range strings.Split(nodeText(n, src), "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					addLine(line, syntheticBodySize, false)
				}
			}
		}
	}
	return b.lines, nil
}

// nodeText flattens a goldmark node into plain text, one block per
// line. Inline markup is dropped; code blocks keep their raw lines.
func nodeText(n ast.Node, src []byte) string {
	switch t := n.(type) {
	case *ast.Text:
		s := string(t.Value(src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			s += "\n"
		}
		return s
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		return rawBlockLines(n, src)
	}

	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s := nodeText(c, src)
		if s == "" {
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(s)
	}
	return buf.String()
}

func rawBlockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
