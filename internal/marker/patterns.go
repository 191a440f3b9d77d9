package marker

// Patterns is the externally supplied rule catalogue: ordered match
// expressions per tier, skip and content-start lists, code and fee
// expressions, font thresholds, and the marker templates. It is pure
// data with no behavior; Compile turns it into a usable Ruleset.
type Patterns struct {
	// Font size thresholds per tier. A heading rule that reads layout
	// signals only fires at or above its tier's threshold.
	L1MinFontSize float64 `json:"l1_min_font_size"`
	L2MinFontSize float64 `json:"l2_min_font_size"`
	L3MinFontSize float64 `json:"l3_min_font_size"`

	// Ordered tier catalogues, evaluated first match wins. Compiled
	// case-insensitive and searched anywhere in the trimmed line.
	L1Patterns []string `json:"l1_patterns"`
	L2Patterns []string `json:"l2_patterns"`
	L3Patterns []string `json:"l3_patterns"`

	// Tariff code recognition. CodePattern anchors at the start of the
	// line; CodeWithFeePattern recognizes a code plus dotted fee leader
	// on one line.
	CodePattern        string `json:"code_pattern"`
	CodeWithFeePattern string `json:"code_with_fee_pattern"`
	ProvisionalMarker  string `json:"provisional_marker"`
	AsteriskMarker     string `json:"asterisk_marker"`

	// FeePattern recognizes a dotted leader followed by an amount with
	// two decimals anywhere in the line.
	FeePattern string `json:"fee_pattern"`

	// Page furniture to pass through unclassified.
	SkipPatterns []string `json:"skip_patterns"`

	// Expressions that open the content gate: everything before the
	// first match is front matter.
	ContentStartPatterns []string `json:"content_start_patterns"`

	// Trimmed lines shorter than this are skipped.
	MinLineLength int `json:"min_line_length"`

	// Marker templates. MarkerFormat takes {type} and {value};
	// CodeMarkerFormat takes {prefix}, {code} and {suffix}.
	MarkerFormat     string `json:"marker_format"`
	CodeMarkerFormat string `json:"code_marker_format"`
}

// DefaultPatterns returns the built-in catalogue for provincial
// physician payment schedules. Callers that load a catalogue from disk
// fall back to these values for any field left unset.
func DefaultPatterns() Patterns {
	return Patterns{
		L1MinFontSize: 12.0,
		L2MinFontSize: 10.5,
		L3MinFontSize: 10.0,

		// Major body-system and schedule section names.
		L1Patterns: []string{
			`^VISITS/EXAMINATIONS`,
			`^GENERAL\s+SCHEDULE`,
			`^ANESTHESIA`,
			`^INTEGUMENTARY\s+SYSTEM`,
			`^MUSCULOSKELETAL\s+SYSTEM`,
			`^RESPIRATORY\s+SYSTEM`,
			`^CARDIOVASCULAR\s+SYSTEM`,
			`^DIGESTIVE\s+SYSTEM`,
			`^URINARY\s+SYSTEM`,
			`^NERVOUS\s+SYSTEM`,
			`^ENDOCRINE\s+SYSTEM`,
			`^MATERNITY`,
			`^LABORATORY`,
			`^DIAGNOSTIC\s+RADIOLOGICAL`,
			`^NUCLEAR\s+MEDICINE`,
			`^THERAPEUTIC\s+RADIOLOGICAL`,
			`^RULES\s+OF\s+APPLICATION`,
		},

		// Category names that group codes under a section.
		L2Patterns: []string{
			`^Office,?\s*Home\s*Visits?`,
			`^Hospital\s+Care`,
			`^Virtual\s+Visits?`,
			`^Chronic\s+Care`,
			`^Concomitant\s+Care`,
			`^Cutaneous\s+Procedures?`,
			`^Upper\s+Extremity`,
			`^Lower\s+Extremity`,
			`^Spine`,
			`^Head\s+and\s+Neck`,
			`^Pelvis`,
			`^Thorax`,
			`^Abdomen`,
		},

		// Procedure-type subheadings, matched against the whole line.
		L3Patterns: []string{
			`^Investigation$`,
			`^Incision$`,
			`^Excision$`,
			`^Repair$`,
			`^Revision\s+and\s+Repair$`,
			`^Reconstruction$`,
			`^Amputation$`,
			`^Fractures?$`,
			`^Dislocations?$`,
			`^Joint\s+Procedures?$`,
		},

		CodePattern:        `^[~]?(\d{4})[\*]?\s+`,
		CodeWithFeePattern: `^[~]?(\d{4})[\*]?\s+.+?\.{3,}\s*[\d,]+\.\d{2}`,
		ProvisionalMarker:  "~",
		AsteriskMarker:     "*",

		FeePattern: `\.{3,}\s*([\d,]+\.\d{2})`,

		// Date headers, page numbers ("A-1", bare 1-3 digit numbers so
		// 4-digit codes survive, roman numerals), TOC lines, form feeds.
		SkipPatterns: []string{
			`^April 1,\s*\d{4}`,
			`^[A-Z]-\d+$`,
			`^\d{1,3}$`,
			`^[ivxlcdm]+$`,
			`^Table of Contents`,
			`^\f`,
		},

		ContentStartPatterns: []string{
			`RULES\s+OF\s+APPLICATION`,
			`These benefits cannot be correctly interpreted`,
		},

		MinLineLength: 3,

		MarkerFormat:     "«{type}:{value}»",
		CodeMarkerFormat: "«CODE:{prefix}{code}{suffix}»",
	}
}
