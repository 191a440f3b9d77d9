package marker

import "strings"

// Stats tallies the markers present in a marked output stream.
type Stats struct {
	TotalLines  int `json:"total_lines"`
	L1          int `json:"l1"`
	L2          int `json:"l2"`
	L3          int `json:"l3"`
	L4          int `json:"l4"`
	Codes       int `json:"codes"`
	Provisional int `json:"provisional"`
	Asterisked  int `json:"asterisked"`
}

// CountStats scans the marked lines once and counts markers by kind.
// Each line counts toward at most one category, probed L1 through L4 and
// then CODE. The provisional and asterisk tallies are independent
// substring probes within code-marker lines, so a code carrying both
// glyphs increments both tallies.
func (r *Ruleset) CountStats(lines []string) Stats {
	s := Stats{TotalLines: len(lines)}
	for _, line := range lines {
		switch {
		case strings.Contains(line, r.tierPrefixes[0]):
			s.L1++
		case strings.Contains(line, r.tierPrefixes[1]):
			s.L2++
		case strings.Contains(line, r.tierPrefixes[2]):
			s.L3++
		case strings.Contains(line, r.tierPrefixes[3]):
			s.L4++
		case strings.Contains(line, r.codePrefix):
			s.Codes++
			if strings.Contains(line, r.provisionalAll) {
				s.Provisional++
			}
			if strings.Contains(line, r.asteriskAll) {
				s.Asterisked++
			}
		}
	}
	return s
}

// Markers returns the total number of marker lines counted.
func (s Stats) Markers() int {
	return s.L1 + s.L2 + s.L3 + s.L4 + s.Codes
}

// Add accumulates another tally into s.
func (s *Stats) Add(o Stats) {
	s.TotalLines += o.TotalLines
	s.L1 += o.L1
	s.L2 += o.L2
	s.L3 += o.L3
	s.L4 += o.L4
	s.Codes += o.Codes
	s.Provisional += o.Provisional
	s.Asterisked += o.Asterisked
}
