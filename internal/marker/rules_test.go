package marker

import (
	"strings"
	"testing"
)

func TestCompile_DefaultsAreValid(t *testing.T) {
	rs, err := Compile(DefaultPatterns())
	if err != nil {
		t.Fatalf("default patterns must compile: %v", err)
	}
	if got := rs.FormatHierarchyMarker(LevelL1, "ANESTHESIA"); got != "«L1:ANESTHESIA»" {
		t.Errorf("unexpected hierarchy marker: %q", got)
	}
	if got := rs.FormatCodeMarker(CodeInfo{Code: "8540"}); got != "«CODE:8540»" {
		t.Errorf("unexpected code marker: %q", got)
	}
	if got := rs.FormatCodeMarker(CodeInfo{Code: "0171", Provisional: true, Asterisked: true}); got != "«CODE:~0171*»" {
		t.Errorf("unexpected flagged code marker: %q", got)
	}
}

func TestCompile_BadPatternNamesOffender(t *testing.T) {
	p := DefaultPatterns()
	p.L2Patterns = append(p.L2Patterns, `([`)

	_, err := Compile(p)
	if err == nil {
		t.Fatal("expected compile error for unbalanced pattern")
	}
	if !strings.Contains(err.Error(), "l2_patterns") {
		t.Errorf("error does not name the field: %v", err)
	}
	if !strings.Contains(err.Error(), "([") {
		t.Errorf("error does not name the offending pattern: %v", err)
	}
}

func TestCompile_BadCodePattern(t *testing.T) {
	p := DefaultPatterns()
	p.CodePattern = `(\d{4}`

	_, err := Compile(p)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "code_pattern") {
		t.Errorf("error does not name the field: %v", err)
	}
}

func TestCompile_UnanchoredCodePatternStillAnchors(t *testing.T) {
	p := DefaultPatterns()
	// Without the explicit caret the pattern must still only match at the
	// start of the line: a code cited mid-sentence is not a code line.
	p.CodePattern = `[~]?(\d{4})[\*]?\s+`
	rs, err := Compile(p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	c := NewClassifier(rs)

	line := textLine("see code 8540 for the complete examination fee", 10.0, false)
	if got := c.DetectLevel(line, nil); got == LevelCode {
		t.Fatal("mid-line code reference misread as a code line")
	}
}

func TestLevel_StringAndDepth(t *testing.T) {
	cases := []struct {
		level Level
		name  string
		depth int
	}{
		{LevelNone, "NONE", 0},
		{LevelL1, "L1", 1},
		{LevelL2, "L2", 2},
		{LevelL3, "L3", 3},
		{LevelL4, "L4", 4},
		{LevelCode, "CODE", 0},
	}
	for _, tc := range cases {
		if tc.level.String() != tc.name {
			t.Errorf("expected %q, got %q", tc.name, tc.level.String())
		}
		if tc.level.Depth() != tc.depth {
			t.Errorf("%s: expected depth %d, got %d", tc.name, tc.depth, tc.level.Depth())
		}
	}
}

func TestRuleset_ParseMarkersRoundTrip(t *testing.T) {
	rs := MustCompile(DefaultPatterns())

	for _, level := range []Level{LevelL1, LevelL2, LevelL3, LevelL4} {
		rendered := rs.FormatHierarchyMarker(level, "CARDIOLOGY")
		got, value, ok := rs.ParseHierarchyMarker(rendered)
		if !ok {
			t.Fatalf("%s marker not recognized: %q", level, rendered)
		}
		if got != level || value != "CARDIOLOGY" {
			t.Errorf("parsed %q as %s %q", rendered, got, value)
		}
	}

	codes := []CodeInfo{
		{Code: "8540"},
		{Code: "0171", Provisional: true},
		{Code: "9210", Asterisked: true},
		{Code: "0172", Provisional: true, Asterisked: true},
	}
	for _, info := range codes {
		rendered := rs.FormatCodeMarker(info)
		got, ok := rs.ParseCodeMarker(rendered)
		if !ok {
			t.Fatalf("code marker not recognized: %q", rendered)
		}
		if got != info {
			t.Errorf("parsed %q as %+v, want %+v", rendered, got, info)
		}
	}
}

func TestRuleset_ParseMarkers_RejectsPlainText(t *testing.T) {
	rs := MustCompile(DefaultPatterns())

	for _, line := range []string{
		"NEUROLOGY (01-1)",
		"8540 Biopsy of skin",
		"«L5:TOODEEP»",
		"«CODE:85400»",
		"",
	} {
		if _, _, ok := rs.ParseHierarchyMarker(line); ok {
			t.Errorf("%q misread as hierarchy marker", line)
		}
		if _, ok := rs.ParseCodeMarker(line); ok {
			t.Errorf("%q misread as code marker", line)
		}
	}
}
