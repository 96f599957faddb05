package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/labsense/labsense/internal/domain/benchmark"
	"github.com/labsense/labsense/internal/platform/extraction"
)

// normalizeReading resolves one raw extraction triple against the taxonomy
// snapshot and parses its value, keeping full provenance. Matched numeric
// readings are converted into one of the benchmark's accepted units when a
// conversion is known.
func normalizeReading(snap *benchmark.Snapshot, raw extraction.RawReading, date, sourceID string) NormalizedReading {
	res := snap.Resolve(raw.Name)
	nr := NormalizedReading{
		CanonicalName:  res.CanonicalName,
		Unit:           raw.Unit,
		RawName:        raw.Name,
		RawValue:       raw.Value,
		RawUnit:        raw.Unit,
		Confidence:     res.Confidence,
		Matched:        res.Matched,
		CollectionDate: date,
		SourceID:       sourceID,
	}

	value, numeric := benchmark.ParseValue(raw.Value)
	nr.IsNumeric = numeric
	if !numeric {
		return nr
	}
	nr.Value = value

	if res.Matched {
		if def := snap.Lookup(res.CanonicalName); def != nil {
			nr.Value, nr.Unit, nr.UnitConverted = benchmark.Convert(def.CanonicalName, value, raw.Unit, def.Units)
		}
	}
	return nr
}

// preferReading reports whether candidate should replace current when both
// resolved to the same benchmark: numeric beats placeholder, then the more
// recent collection date wins. Equal candidates keep current, so earlier
// input order wins ties.
func preferReading(current, candidate NormalizedReading) bool {
	if candidate.IsNumeric != current.IsNumeric {
		return candidate.IsNumeric
	}
	return laterDate(candidate.CollectionDate, current.CollectionDate)
}

func laterDate(a, b string) bool {
	if a == NoDateBucket {
		return false
	}
	if b == NoDateBucket {
		return true
	}
	return a > b
}

// FormatValue renders a numeric reading value without trailing zeros, so a
// converted 3.50 displays as "3.5".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Match produces the benchmark-shaped outcome for one reading set: exactly
// one Result per active benchmark in the snapshot, sorted by canonical name,
// with unmatched passthrough readings appended afterwards so every extracted
// reading stays visible.
func Match(snap *benchmark.Snapshot, sex benchmark.Sex, readings []NormalizedReading) ([]Result, error) {
	if snap == nil {
		return nil, fmt.Errorf("taxonomy snapshot is required")
	}

	chosen := make(map[string]NormalizedReading)
	var unmatched []NormalizedReading
	for _, r := range readings {
		if !r.Matched {
			unmatched = append(unmatched, r)
			continue
		}
		cur, ok := chosen[r.CanonicalName]
		if !ok || preferReading(cur, r) {
			chosen[r.CanonicalName] = r
		}
	}

	results := make([]Result, 0, snap.Len()+len(unmatched))
	for _, def := range snap.Definitions() {
		rangeExpr := def.RangeFor(sex)
		res := Result{
			CanonicalName: def.CanonicalName,
			Category:      def.Category,
			OptimalRange:  rangeExpr,
			Value:         NotMeasured,
			Status:        benchmark.StatusNotMeasured,
		}

		r, ok := chosen[def.CanonicalName]
		if ok {
			res.Matched = true
			res.Confidence = r.Confidence
			res.RawName = r.RawName
			res.RawValue = r.RawValue
			res.SourceID = r.SourceID
			if r.IsNumeric {
				v := r.Value
				res.NumericValue = &v
				res.Value = FormatValue(r.Value)
				res.Unit = r.Unit
				res.UnitConverted = r.UnitConverted
				res.Status = benchmark.Evaluate(r.Value, benchmark.ResolveBounds(def.CanonicalName, rangeExpr, r.Unit))
			} else {
				// Placeholder values stay visible but never reach a
				// bound comparison.
				res.Value = r.RawValue
			}
		}
		results = append(results, res)
	}

	sort.SliceStable(unmatched, func(i, j int) bool {
		return unmatched[i].RawName < unmatched[j].RawName
	})
	for _, r := range unmatched {
		res := Result{
			CanonicalName: r.CanonicalName,
			Value:         r.RawValue,
			Unit:          r.RawUnit,
			Status:        benchmark.StatusUnknown,
			Confidence:    r.Confidence,
			RawName:       r.RawName,
			RawValue:      r.RawValue,
			SourceID:      r.SourceID,
		}
		if r.IsNumeric {
			v := r.Value
			res.NumericValue = &v
			res.Value = FormatValue(r.Value)
		}
		results = append(results, res)
	}
	return results, nil
}

// MatchGroups runs the matcher over every date group of a consolidation.
func MatchGroups(snap *benchmark.Snapshot, sex benchmark.Sex, groups []DateGroup) ([]GroupResults, error) {
	out := make([]GroupResults, 0, len(groups))
	for _, g := range groups {
		results, err := Match(snap, sex, g.Readings)
		if err != nil {
			return nil, err
		}
		out = append(out, GroupResults{Date: g.Date, Results: results})
	}
	return out, nil
}
