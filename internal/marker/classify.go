package marker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
)

// CodeInfo is a tariff code pulled from a line: the 4-digit code plus
// its provisional (leading ~) and asterisk (trailing *) flags.
type CodeInfo struct {
	Code        string
	Provisional bool
	Asterisked  bool
}

// Fixed structural expressions. These describe the shape of schedule
// lines themselves rather than schedule content, so they are not part
// of the configurable catalogue.
var (
	// ALL-CAPS specialty heading ending in a two-digit parenthetical
	// code, e.g. "NEUROLOGY (01-1)".
	specialtyHeading = regexp.MustCompile(`^[A-Z][A-Z\s\-/]+\s*\(\d{2}(?:-\d+)?\)\s*$`)

	// A line that is nothing but a code, e.g. "8540", "~0171", "8540*".
	standaloneCode = regexp.MustCompile(`^[~]?\d{4}[\*]?\s*$`)

	// A code followed by whatever remains of the line.
	codeWithRemainder = regexp.MustCompile(`^[~]?(\d{4})[\*]?\s+(.+)$`)

	// Index-entry remainders: a dotted leader into a page reference, or
	// a bare comma-separated page reference list.
	indexLeader = regexp.MustCompile(`^\.{3,}\s*[A-Z]-\d+`)
	pageRefList = regexp.MustCompile(`^[A-Z]-\d+(?:,\s*[A-Z]-\d+)*\s*$`)

	// Code extraction forms: standalone first, then code-with-description.
	codeExactForm  = regexp.MustCompile(`^(~)?(\d{4})(\*)?\s*$`)
	codePrefixForm = regexp.MustCompile(`^(~)?(\d{4})(\*)?\s+`)
)

// Classifier assigns each line to a hierarchy tier or a tariff code.
// Every method is side-effect free and total: text that matches nothing
// classifies as LevelNone, never an error.
type Classifier struct {
	rules *Ruleset
}

func NewClassifier(rules *Ruleset) *Classifier {
	return &Classifier{rules: rules}
}

// ShouldSkip reports whether a line is page furniture (dates, page
// numbers, TOC rows) that passes through without classification.
func (c *Classifier) ShouldSkip(line layout.Line) bool {
	text := strings.TrimSpace(line.Text)
	if utf8.RuneCountInString(text) < c.rules.minLineLength {
		return true
	}
	for _, re := range c.rules.skip {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectLevel classifies one line. Codes are checked before headings,
// then tiers broadest first; the first match wins. prev carries the
// preceding line for context, though the current rules decide each line
// on its own.
func (c *Classifier) DetectLevel(line layout.Line, prev *layout.Line) Level {
	text := strings.TrimSpace(line.Text)

	if c.isTariffCode(text) {
		return LevelCode
	}
	if c.matchesL1(line, text) {
		return LevelL1
	}
	if c.matchesL2(line, text) {
		return LevelL2
	}
	if c.matchesL3(line, text) {
		return LevelL3
	}
	return LevelNone
}

// isTariffCode recognizes the three code-line shapes: a code with its
// fee on the same line, a standalone code, and a code opening a
// description. Index entries that merely cite codes are excluded.
func (c *Classifier) isTariffCode(text string) bool {
	if c.rules.codeWithFee.MatchString(text) {
		return true
	}
	if standaloneCode.MatchString(text) {
		return true
	}
	if m := codeWithRemainder.FindStringSubmatch(text); m != nil {
		remaining := strings.TrimSpace(m[2])
		if indexLeader.MatchString(remaining) {
			return false
		}
		if pageRefList.MatchString(remaining) {
			return false
		}
		// A real description, not a stray token.
		if utf8.RuneCountInString(remaining) > 10 {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesL1(line layout.Line, text string) bool {
	if utf8.RuneCountInString(text) > 80 {
		return false
	}
	if c.rules.fee.MatchString(text) {
		return false
	}
	if c.rules.codeStart.MatchString(text) {
		return false
	}

	if specialtyHeading.MatchString(text) {
		return true
	}
	for _, re := range c.rules.l1Catalogue {
		if re.MatchString(text) {
			return true
		}
	}

	// Large font, ALL CAPS, and shaped like a section title.
	if line.FontSize >= c.rules.l1MinFont && isUpperString(text) {
		if n := utf8.RuneCountInString(text); n > 15 && n < 60 {
			if w := len(strings.Fields(text)); w >= 2 && w <= 6 {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) matchesL2(line layout.Line, text string) bool {
	if utf8.RuneCountInString(text) > 60 || c.rules.fee.MatchString(text) {
		return false
	}
	if c.rules.codeStart.MatchString(text) {
		return false
	}

	for _, re := range c.rules.l2Catalogue {
		if re.MatchString(text) {
			return true
		}
	}

	// Bold title-case category headings: at least half the words are
	// capitalized without being fully upper case.
	if line.Bold && line.FontSize >= c.rules.l2MinFont {
		words := strings.Fields(text)
		if len(words) >= 2 && len(words) <= 5 {
			title := 0
			for _, w := range words {
				r, _ := utf8.DecodeRuneInString(w)
				if unicode.IsUpper(r) && !isUpperString(w) {
					title++
				}
			}
			if float64(title) >= float64(len(words))*0.5 {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) matchesL3(line layout.Line, text string) bool {
	if utf8.RuneCountInString(text) > 40 || c.rules.fee.MatchString(text) {
		return false
	}
	if c.rules.codeStart.MatchString(text) {
		return false
	}
	for _, re := range c.rules.l3Catalogue {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ExtractCodeInfo pulls the tariff code and flags out of a line,
// accepting the standalone form first and then the description form.
// Returns nil when the text does not begin with a code.
func (c *Classifier) ExtractCodeInfo(text string) *CodeInfo {
	text = strings.TrimSpace(text)

	if m := codeExactForm.FindStringSubmatch(text); m != nil {
		return &CodeInfo{Code: m[2], Provisional: m[1] == "~", Asterisked: m[3] == "*"}
	}
	if m := codePrefixForm.FindStringSubmatch(text); m != nil {
		return &CodeInfo{Code: m[2], Provisional: m[1] == "~", Asterisked: m[3] == "*"}
	}
	return nil
}

// isUpperString reports whether every cased character is upper case and
// at least one cased character is present.
func isUpperString(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
