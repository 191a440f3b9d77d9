package llmtag

import (
	"fmt"
	"regexp"
	"strings"
)

// Finding flags one suspicious line in tagged output.
type Finding struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Problem string `json:"problem"`
}

var (
	markerSpanRe = regexp.MustCompile(`«([^«»]*)»`)
	codeValueRe  = regexp.MustCompile(`^~?\d{4}\*?$`)
)

// LintMarkers scans tagged output for malformed markers. The model
// writes free text, so findings are advisory: they are reported to the
// operator, never repaired.
func LintMarkers(text string) []Finding {
	var findings []Finding
	sawMarker := false

	add := func(lineNo int, line, problem string) {
		findings = append(findings, Finding{
			Line:    lineNo,
			Text:    truncate(line, 120),
			Problem: problem,
		})
	}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		opens := strings.Count(line, "«")
		closes := strings.Count(line, "»")
		if opens != closes {
			add(lineNo, line, "unbalanced marker delimiters")
			continue
		}

		for _, m := range markerSpanRe.FindAllStringSubmatch(line, -1) {
			sawMarker = true
			body := m[1]
			typ, value, ok := strings.Cut(body, ":")
			if !ok || value == "" {
				add(lineNo, line, fmt.Sprintf("marker %q has no value", truncate(body, 40)))
				continue
			}
			switch typ {
			case "L1", "L2", "L3", "L4":
			case "CODE":
				if !codeValueRe.MatchString(value) {
					add(lineNo, line, fmt.Sprintf("malformed code marker %q", truncate(value, 40)))
				}
			default:
				add(lineNo, line, fmt.Sprintf("unknown marker type %q", truncate(typ, 40)))
			}
		}
	}

	if !sawMarker {
		add(0, "", "output contains no markers")
	}
	return findings
}
