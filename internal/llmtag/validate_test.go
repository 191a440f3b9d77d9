package llmtag

import (
	"strings"
	"testing"
)

func TestLintMarkers_CleanOutput(t *testing.T) {
	text := strings.Join([]string{
		"«L1:NEUROLOGY011»",
		"NEUROLOGY (01-1)",
		"«CODE:~0171*»",
		"0171  Consultation",
		"Plain body text without markers.",
	}, "\n")

	if findings := LintMarkers(text); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestLintMarkers_UnknownType(t *testing.T) {
	findings := LintMarkers("«L7:MYSTERY»\nbody\n«CODE:0171»")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if findings[0].Line != 1 || !strings.Contains(findings[0].Problem, "unknown marker type") {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestLintMarkers_UnbalancedDelimiters(t *testing.T) {
	findings := LintMarkers("«CODE:0171\nbody\n«L1:SURGERY»")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if findings[0].Problem != "unbalanced marker delimiters" {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestLintMarkers_MalformedCodeValue(t *testing.T) {
	findings := LintMarkers("«CODE:017»\n«CODE:banana»\n«L1:OK»")
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", findings)
	}
	for _, f := range findings {
		if !strings.Contains(f.Problem, "malformed code marker") {
			t.Errorf("finding = %+v", f)
		}
	}
}

func TestLintMarkers_MissingValue(t *testing.T) {
	findings := LintMarkers("«L1:»\n«CODE:0171»")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if !strings.Contains(findings[0].Problem, "has no value") {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestLintMarkers_NoMarkersAtAll(t *testing.T) {
	findings := LintMarkers("just plain text\nno markers anywhere")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if findings[0].Line != 0 || !strings.Contains(findings[0].Problem, "no markers") {
		t.Errorf("finding = %+v", findings[0])
	}
}
