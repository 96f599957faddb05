package benchmark

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sex is the sex category used to select reference ranges.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ParseSex validates a sex category. Anything outside the fixed enum is a
// caller contract violation, not dirty data.
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case SexMale, SexFemale, SexOther:
		return Sex(s), nil
	}
	return "", fmt.Errorf("invalid sex category: %q", s)
}

// Status is the outcome of evaluating a reading against a reference range.
type Status string

const (
	StatusBelowRange  Status = "below-range"
	StatusInRange     Status = "in-range"
	StatusAboveRange  Status = "above-range"
	StatusNotMeasured Status = "not-measured"
	StatusUnknown     Status = "unknown"
)

// Definition maps to the benchmark_definition table. One row per canonical
// biomarker, either from the seeded catalog (tenant "default") or a per-tenant
// override. Range expressions use the same grammar the range parser consumes:
// "min-max unit", "min-max unit1 (min2-max2 unit2)", "< max unit", "> min unit".
type Definition struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      string    `db:"tenant_id" json:"tenant_id"`
	CanonicalName string    `db:"canonical_name" json:"canonical_name"`
	Category      string    `db:"category" json:"category"`
	Aliases       []string  `db:"aliases" json:"aliases"`
	Units         []string  `db:"units" json:"units"`
	MaleRange     string    `db:"male_range" json:"male_range"`
	FemaleRange   string    `db:"female_range" json:"female_range,omitempty"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RangeFor returns the range expression for the given sex category. A missing
// female range falls back to the male range at read time; the stored
// definition is never mutated. SexOther uses the male range as well.
func (d *Definition) RangeFor(sex Sex) string {
	if sex == SexFemale && d.FemaleRange != "" {
		return d.FemaleRange
	}
	return d.MaleRange
}

// Resolution is the outcome of resolving a raw biomarker name against a
// taxonomy snapshot. When no entry matches, CanonicalName carries the raw
// name through unchanged with a sub-threshold confidence so the reading is
// preserved for audit instead of being dropped.
type Resolution struct {
	CanonicalName string  `json:"canonical_name"`
	Confidence    float64 `json:"confidence"`
	Matched       bool    `json:"matched"`
}

// Resolver confidence levels. Anything below MatchThreshold is treated as
// unmatched for display purposes.
const (
	ConfidenceExact       = 1.0
	ConfidenceAffixStrip  = 0.8
	ConfidencePassthrough = 0.3
	MatchThreshold        = 0.5
)
