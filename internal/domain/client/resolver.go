package client

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Scoring weights and thresholds for identity matching. A field that is null
// on either side drops its weight from both numerator and denominator.
const (
	nameWeight = 3.0
	dobWeight  = 3.0
	sexWeight  = 1.0

	reuseThreshold   = 0.85
	confirmThreshold = 0.65
)

// normalizeMatchName canonicalizes a person name for similarity scoring:
// case-fold, strip non-letters, collapse whitespace, then sort the tokens so
// "Smith John" and "John Smith" compare equal.
func normalizeMatchName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	tokens := strings.Fields(b.String())
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// levenshtein computes edit distance with a single-row DP table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur := prev[0]
		prev[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min3(prev[j]+1, prev[j-1]+1, cur+cost)
			cur = prev[j]
			prev[j] = next
		}
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// NameSimilarity returns 1 - editDistance/maxLen over token-sorted normalized
// names, in [0,1].
func NameSimilarity(a, b string) float64 {
	na, nb := normalizeMatchName(a), normalizeMatchName(b)
	if na == "" && nb == "" {
		return 0
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	return 1.0 - float64(levenshtein(na, nb))/float64(maxLen)
}

func namePoints(similarity float64) float64 {
	switch {
	case similarity >= 0.9:
		return 3
	case similarity >= 0.7:
		return 2
	case similarity >= 0.5:
		return 1
	}
	return 0
}

// Score computes the weighted match confidence between a consolidated
// identity and one candidate record. Returns the confidence and whether any
// field was comparable at all.
func Score(identity Identity, candidate *Record) (float64, bool) {
	earned, possible := 0.0, 0.0

	if identity.Name != nil && candidate.Name != "" {
		possible += nameWeight
		earned += namePoints(NameSimilarity(*identity.Name, candidate.Name))
	}
	if identity.DateOfBirth != nil && candidate.BirthDate != nil {
		possible += dobWeight
		if *identity.DateOfBirth == *candidate.BirthDate {
			earned += dobWeight
		}
	}
	if identity.Sex != nil && candidate.Sex != nil {
		possible += sexWeight
		if strings.EqualFold(*identity.Sex, *candidate.Sex) {
			earned += sexWeight
		}
	}

	if possible == 0 {
		return 0, false
	}
	return earned / possible, true
}

// Resolve scores a consolidated identity against a bounded candidate pool and
// returns the match decision. The pool is supplied by the caller; this
// function does not search a store.
//
// A candidate without a name is a caller contract violation, not dirty data.
func Resolve(identity Identity, pool []*Record) (*MatchDecision, error) {
	type scored struct {
		rec  *Record
		conf float64
	}
	var best, second *scored

	for _, rec := range pool {
		if rec.Name == "" {
			return nil, fmt.Errorf("candidate %s has no name", rec.ID)
		}
		conf, ok := Score(identity, rec)
		if !ok {
			continue
		}
		s := &scored{rec: rec, conf: conf}
		switch {
		case best == nil || s.conf > best.conf:
			second = best
			best = s
		case second == nil || s.conf > second.conf:
			second = s
		}
	}

	if best == nil || best.conf < confirmThreshold {
		// Confident that a new record is warranted. Confirmation is still
		// requested when a near-miss candidate existed.
		d := &MatchDecision{Action: ActionCreateNew, Tier: TierHigh}
		if best != nil {
			d.Confidence = best.conf
			d.RequiresConfirmation = best.conf >= 0.5
		}
		return d, nil
	}

	// Two candidates tied at the top cannot be auto-resolved.
	if second != nil && second.conf >= confirmThreshold && second.conf == best.conf {
		return &MatchDecision{
			Confidence:           best.conf,
			Tier:                 TierMedium,
			RequiresConfirmation: true,
			Action:               ActionManualSelect,
		}, nil
	}

	id := best.rec.ID
	if best.conf >= reuseThreshold {
		return &MatchDecision{
			ClientID:   &id,
			Confidence: best.conf,
			Tier:       TierHigh,
			Action:     ActionReuseExisting,
		}, nil
	}
	return &MatchDecision{
		ClientID:             &id,
		Confidence:           best.conf,
		Tier:                 TierMedium,
		RequiresConfirmation: true,
		Action:               ActionReuseExisting,
	}, nil
}
