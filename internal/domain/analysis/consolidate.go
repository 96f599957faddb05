package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/labsense/labsense/internal/domain/benchmark"
	"github.com/labsense/labsense/internal/domain/client"
)

var titleCaser = cases.Title(language.Und)

// parseDate validates a YYYY-MM-DD string. Malformed dates are null, not
// errors.
func parseDate(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(*s)); err != nil {
		return "", false
	}
	return strings.TrimSpace(*s), true
}

// fieldVote is one document's value for an identity field, in document order.
type fieldVote struct {
	normalized string
	original   string
}

// majority picks the most frequent normalized value, breaking count ties by
// earliest first appearance. Returns the winning vote and the number of
// distinct normalized values seen.
func majority(votes []fieldVote) (fieldVote, int) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	firstVote := make(map[string]fieldVote)
	for i, v := range votes {
		counts[v.normalized]++
		if _, ok := firstSeen[v.normalized]; !ok {
			firstSeen[v.normalized] = i
			firstVote[v.normalized] = v
		}
	}

	best := ""
	for key := range counts {
		if best == "" {
			best = key
			continue
		}
		if counts[key] > counts[best] ||
			(counts[key] == counts[best] && firstSeen[key] < firstSeen[best]) {
			best = key
		}
	}
	return firstVote[best], len(counts)
}

func normalizeNameVote(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Consolidate reduces one ordered document batch into a single identity, a
// reading set grouped by per-document collection date, a discrepancy list,
// and a confidence tier. Document order defines first-seen tie-breaking, so
// the same input always produces the same output.
func Consolidate(snap *benchmark.Snapshot, docs []DocumentInput) (*Consolidation, error) {
	if snap == nil {
		return nil, fmt.Errorf("taxonomy snapshot is required")
	}

	out := &Consolidation{}

	var nameVotes, dobVotes, sexVotes []fieldVote
	for _, doc := range docs {
		if doc.Identity.Name != nil && strings.TrimSpace(*doc.Identity.Name) != "" {
			trimmed := strings.TrimSpace(*doc.Identity.Name)
			nameVotes = append(nameVotes, fieldVote{normalized: normalizeNameVote(trimmed), original: trimmed})
		}
		if dob, ok := parseDate(doc.Identity.DateOfBirth); ok {
			dobVotes = append(dobVotes, fieldVote{normalized: dob, original: dob})
		}
		if doc.Identity.Sex != nil {
			sex, err := benchmark.ParseSex(*doc.Identity.Sex)
			if err != nil {
				return nil, err
			}
			sexVotes = append(sexVotes, fieldVote{normalized: string(sex), original: string(sex)})
		}
	}

	if len(nameVotes) > 0 {
		win, variants := majority(nameVotes)
		name := titleCaser.String(win.normalized)
		out.Identity.Name = &name
		if variants > 1 {
			out.Discrepancies = append(out.Discrepancies,
				fmt.Sprintf("name: %d variants across documents, selected %q", variants, name))
		}
	}
	if len(dobVotes) > 0 {
		win, variants := majority(dobVotes)
		dob := win.normalized
		out.Identity.DateOfBirth = &dob
		if variants > 1 {
			out.Discrepancies = append(out.Discrepancies,
				fmt.Sprintf("date of birth: %d variants across documents, selected %q", variants, dob))
		}
	}
	if len(sexVotes) > 0 {
		win, variants := majority(sexVotes)
		sex := win.normalized
		out.Identity.Sex = &sex
		if variants > 1 {
			out.Discrepancies = append(out.Discrepancies,
				fmt.Sprintf("sex: %d variants across documents, selected %q", variants, sex))
		}
	}

	// Collection date takes the most recent valid value instead of the most
	// common one. Multiple dates are expected lab visits, not conflicts, so
	// they never count as a discrepancy.
	for _, doc := range docs {
		if date, ok := parseDate(doc.Identity.CollectionDate); ok {
			if out.Identity.CollectionDate == nil || date > *out.Identity.CollectionDate {
				d := date
				out.Identity.CollectionDate = &d
			}
		}
	}

	out.Groups = groupReadings(snap, docs)

	switch n := len(out.Discrepancies); {
	case n == 0:
		out.Tier = client.TierHigh
	case n <= 2:
		out.Tier = client.TierMedium
	default:
		out.Tier = client.TierLow
	}
	return out, nil
}

// groupReadings normalizes every reading, buckets by the owning document's
// collection date, and collapses duplicate canonical names within a bucket.
func groupReadings(snap *benchmark.Snapshot, docs []DocumentInput) []DateGroup {
	byDate := make(map[string][]NormalizedReading)
	var dateOrder []string

	for _, doc := range docs {
		date := NoDateBucket
		if d, ok := parseDate(doc.Identity.CollectionDate); ok {
			date = d
		}
		if _, ok := byDate[date]; !ok {
			dateOrder = append(dateOrder, date)
		}
		for _, raw := range doc.Readings {
			byDate[date] = append(byDate[date], normalizeReading(snap, raw, date, doc.SourceID))
		}
	}

	// Valid dates ascending, the no-date bucket last.
	sort.SliceStable(dateOrder, func(i, j int) bool {
		if dateOrder[i] == NoDateBucket {
			return false
		}
		if dateOrder[j] == NoDateBucket {
			return true
		}
		return dateOrder[i] < dateOrder[j]
	})

	groups := make([]DateGroup, 0, len(dateOrder))
	for _, date := range dateOrder {
		groups = append(groups, DateGroup{Date: date, Readings: dedupeReadings(byDate[date])})
	}
	return groups
}

// dedupeReadings collapses readings sharing a canonical name, preferring a
// numeric value over a placeholder and keeping the first seen otherwise.
func dedupeReadings(readings []NormalizedReading) []NormalizedReading {
	index := make(map[string]int)
	out := readings[:0:0]
	for _, r := range readings {
		key := r.CanonicalName
		if !r.Matched {
			// Unmatched passthrough names only collapse when the raw
			// spelling is identical.
			key = "raw:" + r.RawName
		}
		if i, ok := index[key]; ok {
			if !out[i].IsNumeric && r.IsNumeric {
				out[i] = r
			}
			continue
		}
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}
