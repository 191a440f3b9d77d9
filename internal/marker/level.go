// Package marker implements the rule-based engine that classifies
// schedule lines and inserts inline structural markers. The output is a
// plain-text stream where every original line survives unmodified,
// preceded where appropriate by a hierarchy or tariff-code marker line.
package marker

// Level is the structural classification of one line.
type Level int

const (
	LevelNone Level = iota
	LevelL1
	LevelL2
	LevelL3
	LevelL4
	LevelCode
)

func (l Level) String() string {
	switch l {
	case LevelL1:
		return "L1"
	case LevelL2:
		return "L2"
	case LevelL3:
		return "L3"
	case LevelL4:
		return "L4"
	case LevelCode:
		return "CODE"
	default:
		return "NONE"
	}
}

// Depth returns the 1-based nesting depth for tier levels (L1=1 .. L4=4)
// and 0 for LevelNone and LevelCode.
func (l Level) Depth() int {
	switch l {
	case LevelL1, LevelL2, LevelL3, LevelL4:
		return int(l)
	default:
		return 0
	}
}

// Hierarchy holds the heading value currently bound to each of the four
// nesting tiers during one marking pass. Binding a tier invalidates
// everything nested beneath it, so deeper tiers are cleared.
type Hierarchy struct {
	values [4]string
}

// Set binds value to the given tier and clears all deeper tiers. Levels
// without a depth (NONE, CODE) are ignored.
func (h *Hierarchy) Set(level Level, value string) {
	d := level.Depth()
	if d == 0 {
		return
	}
	h.values[d-1] = value
	for i := d; i < len(h.values); i++ {
		h.values[i] = ""
	}
}

// Value returns the heading bound to the given tier, or "" when the tier
// is unbound or the level has no depth.
func (h *Hierarchy) Value(level Level) string {
	d := level.Depth()
	if d == 0 {
		return ""
	}
	return h.values[d-1]
}
