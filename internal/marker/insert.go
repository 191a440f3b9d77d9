package marker

import (
	"regexp"
	"strings"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// Synthetic L1 value emitted when the content gate opens: the rules of
// application front matter precedes the first real section heading.
const rulesOfApplicationValue = "RULESOFAPPLICATION"

// Header cleanup: drop a trailing dotted leader and whatever follows it,
// then a trailing page reference like " A-12".
var (
	trailingLeader  = regexp.MustCompile(`\.{2,}.*$`)
	trailingPageRef = regexp.MustCompile(`\s+[A-Z]-\d+$`)
)

// Inserter walks extracted lines once, in reading order, and emits
// structural markers inline. Original lines are never altered, dropped,
// or reordered; each marker line is inserted immediately before the line
// that produced it.
//
// An Inserter is stateless between calls; hierarchy and gating state
// live inside a single Mark invocation, so one Inserter may serve
// concurrent runs.
type Inserter struct {
	rules *Ruleset
	cls   *Classifier
}

func NewInserter(rules *Ruleset) *Inserter {
	return &Inserter{rules: rules, cls: NewClassifier(rules)}
}

// Mark converts annotated lines into the marked output stream.
//
// The pass starts gated: lines stream through untouched until one
// matches a content-start expression. That line gets the synthetic
// rules-of-application L1 marker and opens the body. From there each
// line is either skipped furniture, a tariff code (code marker, no
// hierarchy change), a tier heading (hierarchy marker, deeper tiers
// reset), or plain text.
func (ins *Inserter) Mark(lines []layout.Line) []string {
	output := make([]string, 0, len(lines))
	var state Hierarchy
	contentStarted := false

	for i, line := range lines {
		text := line.Text

		if !contentStarted {
			if matchesAny(ins.rules.contentStart, strings.TrimSpace(text)) {
				contentStarted = true
				output = append(output, ins.rules.FormatHierarchyMarker(LevelL1, rulesOfApplicationValue))
			}
			output = append(output, text)
			continue
		}

		if ins.cls.ShouldSkip(line) {
			output = append(output, text)
			continue
		}

		var prev *layout.Line
		if i > 0 {
			prev = &lines[i-1]
		}

		switch level := ins.cls.DetectLevel(line, prev); {
		case level == LevelCode:
			if info := ins.cls.ExtractCodeInfo(text); info != nil {
				output = append(output, ins.rules.FormatCodeMarker(*info))
			}
		case level != LevelNone:
			value := cleanHeaderText(text)
			output = append(output, ins.rules.FormatHierarchyMarker(level, normalizeMarkerValue(value)))
			state.Set(level, value)
		}

		output = append(output, text)
	}
	return output
}

func matchesAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// cleanHeaderText strips TOC artifacts from a heading before it becomes
// a marker value: first any dotted leader and what follows, then a
// trailing page reference.
func cleanHeaderText(text string) string {
	text = trailingLeader.ReplaceAllString(text, "")
	text = trailingPageRef.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// normalizeMarkerValue uppercases a heading and strips every character
// that is not an ASCII letter or digit.
func normalizeMarkerValue(text string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
