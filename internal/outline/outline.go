// Package outline rebuilds the section hierarchy of a marked schedule
// from its marker lines. It is the read-side complement of the marking
// engine: markers go in line by line, a navigable tree comes out.
package outline

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

// Section is one heading in the reconstructed hierarchy.
type Section struct {
	Level    int        `json:"level"`
	Value    string     `json:"value"`
	Text     string     `json:"text,omitempty"`
	Children []*Section `json:"children,omitempty"`
	Codes    []Code     `json:"codes,omitempty"`
}

// Code is a tariff item attached to its nearest enclosing section.
type Code struct {
	Code        string `json:"code"`
	Provisional bool   `json:"provisional,omitempty"`
	Asterisked  bool   `json:"asterisked,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Outline is the reconstructed document structure. Codes holds items
// that appear before any section marker.
type Outline struct {
	Sections []*Section `json:"sections"`
	Codes    []Code     `json:"codes,omitempty"`
}

// Build reconstructs the hierarchy from marked output lines. Marker
// lines are recognized through the same templates that rendered them;
// each marker's original line, emitted right after it, becomes the
// section or code text.
func Build(lines []string, rules *marker.Ruleset) *Outline {
	out := &Outline{}

	type stackEntry struct {
		section *Section
		level   int
	}

	// Root is level 0 — all tiers nest under it.
	root := &Section{}
	stack := []stackEntry{{section: root, level: 0}}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if level, value, ok := rules.ParseHierarchyMarker(line); ok {
			sec := &Section{Level: level.Depth(), Value: value}
			if i+1 < len(lines) {
				sec.Text = strings.TrimSpace(lines[i+1])
				i++
			}

			// Pop until the top is a shallower tier.
			for len(stack) > 1 && stack[len(stack)-1].level >= sec.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].section
			parent.Children = append(parent.Children, sec)
			stack = append(stack, stackEntry{section: sec, level: sec.Level})
			continue
		}

		if info, ok := rules.ParseCodeMarker(line); ok {
			code := Code{
				Code:        info.Code,
				Provisional: info.Provisional,
				Asterisked:  info.Asterisked,
			}
			if i+1 < len(lines) {
				code.Text = strings.TrimSpace(lines[i+1])
				i++
			}

			top := stack[len(stack)-1].section
			if top == root {
				out.Codes = append(out.Codes, code)
			} else {
				top.Codes = append(top.Codes, code)
			}
		}
	}

	out.Sections = root.Children
	return out
}

// WriteText renders the outline as an indented listing.
func (o *Outline) WriteText(w io.Writer) error {
	for _, code := range o.Codes {
		if err := writeCode(w, code, 0); err != nil {
			return err
		}
	}
	for _, sec := range o.Sections {
		if err := writeSection(w, sec); err != nil {
			return err
		}
	}
	return nil
}

func writeSection(w io.Writer, sec *Section) error {
	label := sec.Text
	if label == "" {
		label = sec.Value
	}
	indent := strings.Repeat("  ", sec.Level-1)
	if _, err := fmt.Fprintf(w, "%sL%d %s\n", indent, sec.Level, label); err != nil {
		return err
	}
	for _, code := range sec.Codes {
		if err := writeCode(w, code, sec.Level); err != nil {
			return err
		}
	}
	for _, child := range sec.Children {
		if err := writeSection(w, child); err != nil {
			return err
		}
	}
	return nil
}

func writeCode(w io.Writer, code Code, depth int) error {
	tag := code.Code
	if code.Provisional {
		tag = "~" + tag
	}
	if code.Asterisked {
		tag += "*"
	}
	indent := strings.Repeat("  ", depth)
	_, err := fmt.Fprintf(w, "%s%s %s\n", indent, tag, code.Text)
	return err
}
