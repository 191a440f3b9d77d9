package marker

import (
	"strings"
	"testing"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	rs, err := Compile(DefaultPatterns())
	if err != nil {
		t.Fatalf("compile default patterns: %v", err)
	}
	return NewClassifier(rs)
}

func textLine(text string, fontSize float64, bold bool) layout.Line {
	return layout.Line{Text: text, Page: 1, FontSize: fontSize, Bold: bold}
}

func TestClassifier_CodeBeatsHeading(t *testing.T) {
	c := testClassifier(t)

	// Upper-case, large font, and a valid description: satisfies both the
	// code shape and the L1 font rule. Codes win.
	line := textLine("8540 COMPLETE EXAMINATION OF PATIENT", 14.0, true)
	if got := c.DetectLevel(line, nil); got != LevelCode {
		t.Fatalf("expected CODE, got %s", got)
	}
}

func TestClassifier_SpecialtyHeadingIsL1(t *testing.T) {
	c := testClassifier(t)

	for _, text := range []string{"NEUROLOGY (01-1)", "GENERAL PRACTICE (00)", "ORAL-MAXILLOFACIAL SURGERY (37)"} {
		line := textLine(text, 10.0, false)
		if got := c.DetectLevel(line, nil); got != LevelL1 {
			t.Errorf("%q: expected L1, got %s", text, got)
		}
	}
}

func TestClassifier_MajorSectionCatalogueIsL1(t *testing.T) {
	c := testClassifier(t)

	// Catalogue entries match case-insensitively and without any font signal.
	for _, text := range []string{
		"CARDIOVASCULAR SYSTEM",
		"Cardiovascular System",
		"RULES OF APPLICATION",
		"Nuclear  Medicine",
	} {
		line := textLine(text, 9.0, false)
		if got := c.DetectLevel(line, nil); got != LevelL1 {
			t.Errorf("%q: expected L1, got %s", text, got)
		}
	}
}

func TestClassifier_L1FontRuleBounds(t *testing.T) {
	c := testClassifier(t)

	cases := []struct {
		name string
		line layout.Line
		want Level
	}{
		{"qualifies", textLine("SURGICAL PROCEDURE FEES", 12.0, false), LevelL1},
		{"font below threshold", textLine("SURGICAL PROCEDURE FEES", 11.9, false), LevelNone},
		{"not upper case", textLine("Surgical Procedure Fees", 12.0, false), LevelNone},
		{"length fifteen is too short", textLine("ABCDE FGHIJ KLM", 12.0, false), LevelNone},
		{"single word", textLine("REIMBURSEMENTSCHEDULETERMS", 12.0, false), LevelNone},
		{"seven words", textLine("ONE TWO THREE FOUR FIVE SIX SEVEN", 12.0, false), LevelNone},
		{"too long", textLine(strings.Repeat("AB ", 27)+"CDEFGH", 12.0, false), LevelNone},
	}
	for _, tc := range cases {
		if got := c.DetectLevel(tc.line, nil); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassifier_L2Catalogue(t *testing.T) {
	c := testClassifier(t)

	for _, text := range []string{"Hospital Care", "Office, Home Visits", "Virtual Visits", "Upper Extremity"} {
		line := textLine(text, 9.0, false)
		if got := c.DetectLevel(line, nil); got != LevelL2 {
			t.Errorf("%q: expected L2, got %s", text, got)
		}
	}
}

func TestClassifier_L2BoldTitleCase(t *testing.T) {
	c := testClassifier(t)

	bold := textLine("Diagnostic Imaging Fees", 10.5, true)
	if got := c.DetectLevel(bold, nil); got != LevelL2 {
		t.Fatalf("bold title case: expected L2, got %s", got)
	}

	// The same text without the bold signal is plain content.
	plain := textLine("Diagnostic Imaging Fees", 10.5, false)
	if got := c.DetectLevel(plain, nil); got != LevelNone {
		t.Fatalf("plain text: expected NONE, got %s", got)
	}

	// Fewer than half the words in title case.
	mixed := textLine("Fees for ROUTINE services", 10.5, true)
	if got := c.DetectLevel(mixed, nil); got != LevelNone {
		t.Fatalf("mixed casing: expected NONE, got %s", got)
	}
}

func TestClassifier_L3FullMatchOnly(t *testing.T) {
	c := testClassifier(t)

	for _, text := range []string{"Excision", "FRACTURES", "Revision and Repair", "Joint Procedures"} {
		line := textLine(text, 9.0, false)
		if got := c.DetectLevel(line, nil); got != LevelL3 {
			t.Errorf("%q: expected L3, got %s", text, got)
		}
	}

	// A partial match is not an L3 heading.
	line := textLine("Excision of benign lesion", 9.0, false)
	if got := c.DetectLevel(line, nil); got != LevelNone {
		t.Fatalf("partial match: expected NONE, got %s", got)
	}
}

func TestClassifier_TariffCodeShapes(t *testing.T) {
	c := testClassifier(t)

	codes := []string{
		"8540 Complete examination of patient ........... 112.42",
		"8540",
		"~0171",
		"8540*",
		"~0171*",
		"8540 Complete History and Physical Examination",
	}
	for _, text := range codes {
		if got := c.DetectLevel(textLine(text, 10.0, false), nil); got != LevelCode {
			t.Errorf("%q: expected CODE, got %s", text, got)
		}
	}

	// Index entries cite codes but are not code lines.
	indexEntries := []string{
		"8540 ....... C-19",
		"8540 C-19, D-1",
	}
	for _, text := range indexEntries {
		if got := c.DetectLevel(textLine(text, 10.0, false), nil); got == LevelCode {
			t.Errorf("%q: index entry misread as CODE", text)
		}
	}
}

func TestClassifier_DescriptionLengthBoundary(t *testing.T) {
	c := testClassifier(t)

	// Exactly ten characters of description does not qualify; eleven does.
	ten := textLine("1234 abcdefghij", 10.0, false)
	if got := c.DetectLevel(ten, nil); got == LevelCode {
		t.Fatalf("10-char description must not classify as CODE")
	}
	eleven := textLine("1234 abcdefghijk", 10.0, false)
	if got := c.DetectLevel(eleven, nil); got != LevelCode {
		t.Fatalf("11-char description: expected CODE, got %s", got)
	}
}

func TestClassifier_ShouldSkip(t *testing.T) {
	c := testClassifier(t)

	skipped := []string{
		"ab",
		"42",
		"407",
		"A-12",
		"xii",
		"April 1, 2024",
		"Table of Contents",
	}
	for _, text := range skipped {
		if !c.ShouldSkip(textLine(text, 10.0, false)) {
			t.Errorf("%q: expected skip", text)
		}
	}

	kept := []string{
		"4070",
		"8540 Complete History and Physical Examination",
		"ANESTHESIA",
	}
	for _, text := range kept {
		if c.ShouldSkip(textLine(text, 10.0, false)) {
			t.Errorf("%q: must not be skipped", text)
		}
	}
}

func TestClassifier_ExtractCodeInfo(t *testing.T) {
	c := testClassifier(t)

	info := c.ExtractCodeInfo("8540 Complete History and Physical Examination")
	if info == nil {
		t.Fatal("expected code info, got nil")
	}
	if info.Code != "8540" || info.Provisional || info.Asterisked {
		t.Fatalf("unexpected info: %+v", info)
	}

	info = c.ExtractCodeInfo("~0171*")
	if info == nil {
		t.Fatal("expected code info, got nil")
	}
	if info.Code != "0171" || !info.Provisional || !info.Asterisked {
		t.Fatalf("unexpected info: %+v", info)
	}

	if info := c.ExtractCodeInfo("ANESTHESIA"); info != nil {
		t.Fatalf("expected nil for heading text, got %+v", info)
	}
}

func TestClassifier_ArbitraryTextIsNone(t *testing.T) {
	c := testClassifier(t)

	for _, text := range []string{
		"@@@@ %%%% ^^^^ &&&&",
		"the quick brown fox jumps over the lazy dog",
		"   ",
		"\x00\x01\x02garbage",
	} {
		line := textLine(text, 10.0, false)
		if got := c.DetectLevel(line, nil); got != LevelNone {
			t.Errorf("%q: expected NONE, got %s", text, got)
		}
	}
}
