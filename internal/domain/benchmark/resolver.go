package benchmark

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes characters and drops combining marks, so
// "Hémoglobine" and "Hemoglobine" normalize identically.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a biomarker name for index lookup: case-fold,
// strip accents, replace punctuation with spaces, collapse whitespace.
func NormalizeName(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// commonAffixes are qualifier tokens labs prepend or append to biomarker
// names. They are only stripped after an exact lookup fails.
var commonAffixes = map[string]bool{
	"serum":  true,
	"plasma": true,
	"total":  true,
	"free":   true,
	"level":  true,
	"levels": true,
	"count":  true,
}

// stripAffixes removes qualifier tokens from the ends of a normalized name.
// Interior tokens are kept: "iron total binding" names a different marker
// than "iron binding" would.
func stripAffixes(normalized string) string {
	tokens := strings.Fields(normalized)
	lo, hi := 0, len(tokens)
	for lo < hi && commonAffixes[tokens[lo]] {
		lo++
	}
	for hi > lo && commonAffixes[tokens[hi-1]] {
		hi--
	}
	if lo == hi {
		return normalized
	}
	return strings.Join(tokens[lo:hi], " ")
}

// Snapshot is an immutable view of the taxonomy for one analysis run: the
// active definitions plus a hash index over every canonical name and alias.
// Callers build a fresh snapshot per run so that override edits between runs
// never change resolution mid-run.
type Snapshot struct {
	defs   []*Definition
	byName map[string]*Definition
	index  map[string]string // normalized name/alias -> canonical name
}

// NewSnapshot builds a snapshot from the given definitions. Inactive entries
// are excluded; the remainder is sorted by canonical name so iteration order
// is stable.
func NewSnapshot(defs []*Definition) *Snapshot {
	s := &Snapshot{
		byName: make(map[string]*Definition),
		index:  make(map[string]string),
	}
	for _, d := range defs {
		if !d.Active {
			continue
		}
		s.defs = append(s.defs, d)
		s.byName[d.CanonicalName] = d
		s.index[NormalizeName(d.CanonicalName)] = d.CanonicalName
		for _, alias := range d.Aliases {
			s.index[NormalizeName(alias)] = d.CanonicalName
		}
	}
	sort.Slice(s.defs, func(i, j int) bool {
		return s.defs[i].CanonicalName < s.defs[j].CanonicalName
	})
	return s
}

// Definitions returns the active definitions sorted by canonical name.
func (s *Snapshot) Definitions() []*Definition { return s.defs }

// Len returns the number of active definitions.
func (s *Snapshot) Len() int { return len(s.defs) }

// Lookup returns the definition with the exact canonical name, or nil.
func (s *Snapshot) Lookup(canonicalName string) *Definition {
	return s.byName[canonicalName]
}

// Resolve maps a raw extracted biomarker name to a canonical taxonomy entry.
// Exact alias hits score 1.0; hits after stripping common qualifier tokens
// score 0.8; everything else passes the raw name through below the match
// threshold so the reading stays visible for audit.
func (s *Snapshot) Resolve(rawName string) Resolution {
	normalized := NormalizeName(rawName)
	if canonical, ok := s.index[normalized]; ok {
		return Resolution{CanonicalName: canonical, Confidence: ConfidenceExact, Matched: true}
	}

	if stripped := stripAffixes(normalized); stripped != normalized {
		if canonical, ok := s.index[stripped]; ok {
			return Resolution{CanonicalName: canonical, Confidence: ConfidenceAffixStrip, Matched: true}
		}
	}

	return Resolution{CanonicalName: rawName, Confidence: ConfidencePassthrough, Matched: false}
}
