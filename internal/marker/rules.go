package marker

import (
	"fmt"
	"regexp"
	"strings"
)

// Ruleset is the compiled form of Patterns. Compile it once at startup;
// a Ruleset is immutable and safe for concurrent use.
type Ruleset struct {
	l1Catalogue  []*regexp.Regexp
	l2Catalogue  []*regexp.Regexp
	l3Catalogue  []*regexp.Regexp
	skip         []*regexp.Regexp
	contentStart []*regexp.Regexp

	codeStart   *regexp.Regexp
	codeWithFee *regexp.Regexp
	fee         *regexp.Regexp

	minLineLength int
	l1MinFont     float64
	l2MinFont     float64
	l3MinFont     float64

	markerFormat     string
	codeMarkerFormat string
	provisionalGlyph string
	asteriskGlyph    string

	// Probes derived from the templates, used by CountStats.
	tierPrefixes   [4]string
	codePrefix     string
	provisionalAll string
	asteriskAll    string

	// Exact-match forms of the rendered templates, for reading markers
	// back out of converted text.
	hierarchyMarkerRe *regexp.Regexp
	codeMarkerRe      *regexp.Regexp
}

// Compile validates and compiles a Patterns catalogue. Any expression
// that fails to compile aborts with an error naming that expression;
// classification must never run against a partially valid catalogue.
func Compile(p Patterns) (*Ruleset, error) {
	rs := &Ruleset{
		minLineLength:    p.MinLineLength,
		l1MinFont:        p.L1MinFontSize,
		l2MinFont:        p.L2MinFontSize,
		l3MinFont:        p.L3MinFontSize,
		markerFormat:     p.MarkerFormat,
		codeMarkerFormat: p.CodeMarkerFormat,
		provisionalGlyph: p.ProvisionalMarker,
		asteriskGlyph:    p.AsteriskMarker,
	}

	var err error
	if rs.l1Catalogue, err = compileList("l1_patterns", p.L1Patterns, true); err != nil {
		return nil, err
	}
	if rs.l2Catalogue, err = compileList("l2_patterns", p.L2Patterns, true); err != nil {
		return nil, err
	}
	if rs.l3Catalogue, err = compileList("l3_patterns", p.L3Patterns, true); err != nil {
		return nil, err
	}
	if rs.skip, err = compileList("skip_patterns", p.SkipPatterns, true); err != nil {
		return nil, err
	}
	// Content-start expressions match case-sensitively: the gate phrases
	// appear verbatim in the schedule.
	if rs.contentStart, err = compileList("content_start_patterns", p.ContentStartPatterns, false); err != nil {
		return nil, err
	}

	// The code expressions match from the start of the line regardless of
	// whether the catalogue authors wrote an explicit anchor.
	if rs.codeStart, err = compileAnchored("code_pattern", p.CodePattern); err != nil {
		return nil, err
	}
	if rs.codeWithFee, err = compileAnchored("code_with_fee_pattern", p.CodeWithFeePattern); err != nil {
		return nil, err
	}
	if rs.fee, err = regexp.Compile(p.FeePattern); err != nil {
		return nil, fmt.Errorf("compile fee_pattern %q: %w", p.FeePattern, err)
	}

	rs.deriveProbes()
	return rs, nil
}

// MustCompile is Compile for catalogues known valid, such as the
// built-in defaults.
func MustCompile(p Patterns) *Ruleset {
	rs, err := Compile(p)
	if err != nil {
		panic(err)
	}
	return rs
}

func compileList(field string, exprs []string, ignoreCase bool) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		src := expr
		if ignoreCase {
			src = "(?i)" + expr
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile %s %q: %w", field, expr, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func compileAnchored(field, expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile %s %q: %w", field, expr, err)
	}
	return re, nil
}

// deriveProbes caches the literal prefixes CountStats scans for, so
// custom marker templates are counted the same way as the defaults.
func (r *Ruleset) deriveProbes() {
	for i, level := range []Level{LevelL1, LevelL2, LevelL3, LevelL4} {
		rendered := strings.ReplaceAll(r.markerFormat, "{type}", level.String())
		r.tierPrefixes[i], _, _ = strings.Cut(rendered, "{value}")
	}
	r.codePrefix, _, _ = strings.Cut(r.codeMarkerFormat, "{prefix}")
	r.provisionalAll = r.codePrefix + r.provisionalGlyph

	_, tail, ok := strings.Cut(r.codeMarkerFormat, "{suffix}")
	if !ok {
		tail = ""
	}
	r.asteriskAll = r.asteriskGlyph + tail

	// Quoting the template first means the placeholder substitutions
	// below are the only regex syntax, so these always compile.
	h := regexp.QuoteMeta(r.markerFormat)
	h = strings.ReplaceAll(h, regexp.QuoteMeta("{type}"), `(L[1-4])`)
	h = strings.ReplaceAll(h, regexp.QuoteMeta("{value}"), `(.*)`)
	r.hierarchyMarkerRe = regexp.MustCompile(`^` + h + `$`)

	c := regexp.QuoteMeta(r.codeMarkerFormat)
	c = strings.ReplaceAll(c, regexp.QuoteMeta("{prefix}"), optGroup(r.provisionalGlyph))
	c = strings.ReplaceAll(c, regexp.QuoteMeta("{code}"), `(\d{4})`)
	c = strings.ReplaceAll(c, regexp.QuoteMeta("{suffix}"), optGroup(r.asteriskGlyph))
	r.codeMarkerRe = regexp.MustCompile(`^` + c + `$`)
}

func optGroup(glyph string) string {
	return `(` + regexp.QuoteMeta(glyph) + `)?`
}

// ParseHierarchyMarker reports whether a line is a rendered tier marker
// and, if so, which tier and value it carries.
func (r *Ruleset) ParseHierarchyMarker(line string) (Level, string, bool) {
	m := r.hierarchyMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return LevelNone, "", false
	}
	level := LevelL1 + Level(m[1][1]-'1')
	return level, m[2], true
}

// ParseCodeMarker reports whether a line is a rendered code marker and,
// if so, the code it carries with its flags.
func (r *Ruleset) ParseCodeMarker(line string) (CodeInfo, bool) {
	m := r.codeMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return CodeInfo{}, false
	}
	return CodeInfo{
		Code:        m[2],
		Provisional: m[1] != "",
		Asterisked:  m[3] != "",
	}, true
}

// FormatHierarchyMarker renders the marker line for a tier heading. The
// value is expected already normalized.
func (r *Ruleset) FormatHierarchyMarker(level Level, value string) string {
	out := strings.ReplaceAll(r.markerFormat, "{type}", level.String())
	return strings.ReplaceAll(out, "{value}", value)
}

// FormatCodeMarker renders the marker line for a tariff code, carrying
// the provisional and asterisk glyphs when flagged.
func (r *Ruleset) FormatCodeMarker(info CodeInfo) string {
	prefix, suffix := "", ""
	if info.Provisional {
		prefix = r.provisionalGlyph
	}
	if info.Asterisked {
		suffix = r.asteriskGlyph
	}
	out := strings.ReplaceAll(r.codeMarkerFormat, "{prefix}", prefix)
	out = strings.ReplaceAll(out, "{code}", info.Code)
	return strings.ReplaceAll(out, "{suffix}", suffix)
}
