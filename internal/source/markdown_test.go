package source

import (
	"strings"
	"testing"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

func extractMarkdown(t *testing.T, input string) []layout.Line {
	t.Helper()
	s := &MarkdownSource{}
	lines, err := s.Extract(strings.NewReader(input), "schedule.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lines
}

func TestMarkdownSource_HeadingSizesByLevel(t *testing.T) {
	input := "# SURGERY\n\n## Incisions\n\n### Excision\n\n#### Notes\n"
	lines := extractMarkdown(t, input)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	wantSizes := []float64{16.0, 13.0, 11.5, 10.5}
	for i, want := range wantSizes {
		if lines[i].FontSize != want {
			t.Errorf("heading %d: FontSize = %v, want %v", i+1, lines[i].FontSize, want)
		}
		if !lines[i].Bold {
			t.Errorf("heading %d: not bold", i+1)
		}
	}
}

func TestMarkdownSource_ParagraphLines(t *testing.T) {
	input := "First line of text.\nSecond line of text.\n\nNext paragraph.\n"
	lines := extractMarkdown(t, input)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	want := []string{"First line of text.", "Second line of text.", "Next paragraph."}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
		}
		if lines[i].FontSize != syntheticBodySize {
			t.Errorf("line %d: FontSize = %v, want body size", i, lines[i].FontSize)
		}
		if lines[i].Bold {
			t.Errorf("line %d: body text marked bold", i)
		}
	}
}

func TestMarkdownSource_InlineMarkupFlattened(t *testing.T) {
	lines := extractMarkdown(t, "Fee is **payable** to the *attending* physician.\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := "Fee is payable to the attending physician."
	if lines[0].Text != want {
		t.Errorf("got %q, want %q", lines[0].Text, want)
	}
}

func TestMarkdownSource_ListItemsBecomeLines(t *testing.T) {
	input := "- 0171 Consultation\n- 8540 Biopsy of skin\n"
	lines := extractMarkdown(t, input)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "0171 Consultation" {
		t.Errorf("item 0 = %q", lines[0].Text)
	}
	if lines[1].Text != "8540 Biopsy of skin" {
		t.Errorf("item 1 = %q", lines[1].Text)
	}
}

func TestMarkdownSource_CodeBlockLinesKeptRaw(t *testing.T) {
	input := "Tariffs:\n\n```\n0171  Consultation  $31.50\n8540  Biopsy        $45.00\n```\n"
	lines := extractMarkdown(t, input)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1].Text, "0171") || !strings.Contains(lines[2].Text, "8540") {
		t.Errorf("code block rows lost: %q, %q", lines[1].Text, lines[2].Text)
	}
}

func TestMarkdownSource_ReadingOrder(t *testing.T) {
	input := "# A\n\nbody one\n\n## B\n\nbody two\n"
	lines := extractMarkdown(t, input)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if line.Seq != i {
			t.Errorf("line %d: Seq = %d", i, line.Seq)
		}
		if line.Top != float64(i) {
			t.Errorf("line %d: Top = %v", i, line.Top)
		}
		if line.Page != 1 {
			t.Errorf("line %d: Page = %d", i, line.Page)
		}
	}
}

func TestMarkdownSource_EmptyInput(t *testing.T) {
	lines := extractMarkdown(t, "")
	if len(lines) != 0 {
		t.Errorf("expected 0 lines, got %d", len(lines))
	}
}
