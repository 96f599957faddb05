package benchmark

import (
	"regexp"
	"strconv"
	"strings"
)

// Bounds is a reference range resolved to numeric form in a single unit.
// A nil Low or High means the range is open on that side.
type Bounds struct {
	Low  *float64
	High *float64
	Unit string
}

var rangePattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*[-–—]\s*(\d+(?:[.,]\d+)?)\s*(.*)$`)

// ParseValue parses a reading value that may use a decimal comma. Placeholder
// and censored values ("N/A", "Pending", "<0.1") are reported as non-numeric;
// they are never coerced to zero.
func ParseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeUnit canonicalizes a unit string for comparison: case-fold, drop
// spaces, unify the two micro signs, and unify ×10³ spellings.
func normalizeUnit(u string) string {
	s := strings.ToLower(strings.TrimSpace(u))
	s = strings.NewReplacer(
		" ", "",
		"μ", "µ", // greek mu vs micro sign
		"x10^3", "×10³",
		"×10^3", "×10³",
		"x10³", "×10³",
		"10^3", "10³",
	).Replace(s)
	return s
}

// ParseRange parses a reference-range expression into one Bounds per reported
// unit. Supported forms:
//
//	"70-99 mg/dL"
//	"3.9-5.5 mmol/L (70-99 mg/dL)"
//	"< 150 mg/dL", "≤ 5.7 %", "> 40 mg/dL", "≥ 1.0 mmol/L"
//
// A malformed expression yields no bounds; the caller reports the reading's
// status as unknown rather than failing.
func ParseRange(expr string) []Bounds {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil
	}

	// Dual-unit form: secondary range in trailing parentheses.
	if open := strings.Index(s, "("); open > 0 && strings.HasSuffix(s, ")") {
		primary := ParseRange(s[:open])
		secondary := ParseRange(s[open+1 : len(s)-1])
		return append(primary, secondary...)
	}

	// Unary comparisons.
	for _, p := range []struct {
		prefix string
		high   bool
	}{
		{"<=", true}, {"≤", true}, {"<", true},
		{">=", false}, {"≥", false}, {">", false},
	} {
		if strings.HasPrefix(s, p.prefix) {
			rest := strings.TrimSpace(strings.TrimPrefix(s, p.prefix))
			num, unit := splitLeadingNumber(rest)
			v, ok := ParseValue(num)
			if !ok {
				return nil
			}
			b := Bounds{Unit: unit}
			if p.high {
				b.High = &v
			} else {
				b.Low = &v
			}
			return []Bounds{b}
		}
	}

	// Closed range.
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	low, okLow := ParseValue(m[1])
	high, okHigh := ParseValue(m[2])
	if !okLow || !okHigh {
		return nil
	}
	return []Bounds{{Low: &low, High: &high, Unit: strings.TrimSpace(m[3])}}
}

// splitLeadingNumber splits "150 mg/dL" into ("150", "mg/dL").
func splitLeadingNumber(s string) (string, string) {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.' || s[i] == ',') {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// unitConversion is a fixed multiplicative conversion between two unit
// spellings of the same biomarker.
type unitConversion struct {
	from   string
	to     string
	factor float64
}

// unitConversions holds the known per-biomarker conversions, keyed by
// canonical name so a conversion is always discoverable from the benchmark a
// reading resolved to.
var unitConversions = map[string][]unitConversion{
	"Glucose": {
		{"mmol/L", "mg/dL", 18.0},
		{"mg/dL", "mmol/L", 1.0 / 18.0},
	},
	"Total Cholesterol": {
		{"mmol/L", "mg/dL", 38.67},
		{"mg/dL", "mmol/L", 1.0 / 38.67},
	},
	"LDL Cholesterol": {
		{"mmol/L", "mg/dL", 38.67},
		{"mg/dL", "mmol/L", 1.0 / 38.67},
	},
	"HDL Cholesterol": {
		{"mmol/L", "mg/dL", 38.67},
		{"mg/dL", "mmol/L", 1.0 / 38.67},
	},
	"Triglycerides": {
		{"mmol/L", "mg/dL", 88.57},
		{"mg/dL", "mmol/L", 1.0 / 88.57},
	},
	"Creatinine": {
		{"µmol/L", "mg/dL", 1.0 / 88.4},
		{"mg/dL", "µmol/L", 88.4},
	},
	"Hemoglobin": {
		{"g/L", "g/dL", 0.1},
		{"g/dL", "g/L", 10.0},
	},
	"White Blood Cell Count": {
		{"cells/µL", "×10³/µL", 0.001},
		{"×10³/µL", "cells/µL", 1000.0},
	},
	"Platelet Count": {
		{"cells/µL", "×10³/µL", 0.001},
		{"×10³/µL", "cells/µL", 1000.0},
	},
	"TSH": {
		// mIU/L and µIU/mL are the same magnitude, only spelled differently.
		{"µIU/mL", "mIU/L", 1.0},
		{"mIU/L", "µIU/mL", 1.0},
	},
	"Vitamin D": {
		{"nmol/L", "ng/mL", 0.4},
		{"ng/mL", "nmol/L", 2.5},
	},
	"Vitamin B12": {
		{"pmol/L", "pg/mL", 1.355},
		{"pg/mL", "pmol/L", 1.0 / 1.355},
	},
	"Calcium": {
		{"mmol/L", "mg/dL", 4.0},
		{"mg/dL", "mmol/L", 0.25},
	},
}

// ConversionFactor returns the multiplier converting from one unit to another
// for the given canonical biomarker, if one is known.
func ConversionFactor(canonicalName, from, to string) (float64, bool) {
	nf, nt := normalizeUnit(from), normalizeUnit(to)
	if nf == nt {
		return 1.0, true
	}
	for _, c := range unitConversions[canonicalName] {
		if normalizeUnit(c.from) == nf && normalizeUnit(c.to) == nt {
			return c.factor, true
		}
	}
	return 0, false
}

// Convert converts a value from one unit to the first target unit reachable
// through the biomarker's conversion table. Returns the converted value, the
// unit it landed on, and whether a conversion was applied.
func Convert(canonicalName string, value float64, from string, targets []string) (float64, string, bool) {
	for _, to := range targets {
		if normalizeUnit(from) == normalizeUnit(to) {
			return value, to, false
		}
	}
	for _, to := range targets {
		if f, ok := ConversionFactor(canonicalName, from, to); ok {
			return value * f, to, true
		}
	}
	return value, from, false
}

// ResolveBounds finds the parsed bounds matching the reading's unit, trying a
// known conversion of the bounds into the reading's unit when no direct match
// exists. Returns nil when the range cannot be resolved; the reading's status
// is then unknown.
func ResolveBounds(canonicalName, expr, readingUnit string) *Bounds {
	all := ParseRange(expr)
	if len(all) == 0 {
		return nil
	}

	ru := normalizeUnit(readingUnit)
	for i := range all {
		if normalizeUnit(all[i].Unit) == ru {
			return &all[i]
		}
	}
	// A unitless range applies to whatever unit the lab reported.
	for i := range all {
		if all[i].Unit == "" {
			return &all[i]
		}
	}
	for i := range all {
		if f, ok := ConversionFactor(canonicalName, all[i].Unit, readingUnit); ok {
			return scaleBounds(&all[i], f, readingUnit)
		}
	}
	return nil
}

func scaleBounds(b *Bounds, factor float64, unit string) *Bounds {
	out := &Bounds{Unit: unit}
	if b.Low != nil {
		v := *b.Low * factor
		out.Low = &v
	}
	if b.High != nil {
		v := *b.High * factor
		out.High = &v
	}
	return out
}

// Evaluate compares a numeric value against resolved bounds.
func Evaluate(value float64, b *Bounds) Status {
	if b == nil {
		return StatusUnknown
	}
	if b.Low != nil && value < *b.Low {
		return StatusBelowRange
	}
	if b.High != nil && value > *b.High {
		return StatusAboveRange
	}
	return StatusInRange
}
