package marker

import "testing"

func TestCountStats_TalliesByKind(t *testing.T) {
	rs := MustCompile(DefaultPatterns())

	lines := []string{
		"«L1:ANESTHESIA»",
		"ANESTHESIA",
		"«L2:HOSPITALCARE»",
		"Hospital Care",
		"«L3:EXCISION»",
		"Excision",
		"«CODE:8540»",
		"8540 Complete History and Physical Examination",
		"«CODE:~0171»",
		"~0171",
		"«CODE:4052*»",
		"4052* Excision of benign lesion, any method",
		"plain text line",
	}
	s := rs.CountStats(lines)

	if s.TotalLines != len(lines) {
		t.Fatalf("expected total %d, got %d", len(lines), s.TotalLines)
	}
	if s.L1 != 1 || s.L2 != 1 || s.L3 != 1 || s.L4 != 0 {
		t.Fatalf("unexpected tier counts: %+v", s)
	}
	if s.Codes != 3 {
		t.Fatalf("expected 3 code markers, got %d", s.Codes)
	}
	if s.Provisional != 1 {
		t.Fatalf("expected 1 provisional, got %d", s.Provisional)
	}
	if s.Asterisked != 1 {
		t.Fatalf("expected 1 asterisked, got %d", s.Asterisked)
	}
	if s.Markers() != 6 {
		t.Fatalf("expected 6 markers, got %d", s.Markers())
	}
}

func TestCountStats_BothGlyphsCountTwice(t *testing.T) {
	rs := MustCompile(DefaultPatterns())

	// A single marker carrying both glyphs lands in both sub-tallies;
	// the probes are independent by design of the source counts.
	s := rs.CountStats([]string{"«CODE:~0171*»"})
	if s.Codes != 1 {
		t.Fatalf("expected 1 code, got %d", s.Codes)
	}
	if s.Provisional != 1 || s.Asterisked != 1 {
		t.Fatalf("expected both glyph tallies at 1, got %+v", s)
	}
}

func TestCountStats_FirstCategoryWinsPerLine(t *testing.T) {
	rs := MustCompile(DefaultPatterns())

	// A line is only ever counted once, in tier order.
	s := rs.CountStats([]string{"«L1:X» «CODE:1234»"})
	if s.L1 != 1 || s.Codes != 0 {
		t.Fatalf("expected the L1 probe to win, got %+v", s)
	}
}

func TestCountStats_CustomTemplates(t *testing.T) {
	p := DefaultPatterns()
	p.MarkerFormat = "[{type}|{value}]"
	p.CodeMarkerFormat = "[CODE|{prefix}{code}{suffix}]"
	rs, err := Compile(p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	lines := []string{
		"[L2|SPINE]",
		"[CODE|~2210*]",
	}
	s := rs.CountStats(lines)
	if s.L2 != 1 {
		t.Fatalf("expected 1 L2 with custom template, got %+v", s)
	}
	if s.Codes != 1 || s.Provisional != 1 || s.Asterisked != 1 {
		t.Fatalf("unexpected code tallies with custom template: %+v", s)
	}
}
