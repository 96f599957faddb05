package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/labsense/labsense/internal/domain/benchmark"
	"github.com/labsense/labsense/internal/domain/client"
	"github.com/labsense/labsense/internal/platform/extraction"
)

// NoDateBucket groups readings whose source document carried no usable
// collection date.
const NoDateBucket = "no-date"

// NotMeasured is the sentinel rendered for a benchmark no reading resolved to.
const NotMeasured = "not measured"

// DocumentInput is one uploaded document's extraction output plus a caller
// supplied source identifier. The slice order given to Consolidate defines
// first-seen tie-breaking, so callers must pass documents in a stable order.
type DocumentInput struct {
	SourceID string                  `json:"source_id"`
	Identity extraction.RawPatient   `json:"identity"`
	Readings []extraction.RawReading `json:"readings"`
}

// NormalizedReading is one extracted reading after name resolution and value
// parsing, with full provenance. Immutable once built.
type NormalizedReading struct {
	CanonicalName  string  `json:"canonical_name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	RawName        string  `json:"raw_name"`
	RawValue       string  `json:"raw_value"`
	RawUnit        string  `json:"raw_unit"`
	Confidence     float64 `json:"confidence"`
	Matched        bool    `json:"matched"`
	UnitConverted  bool    `json:"unit_converted"`
	IsNumeric      bool    `json:"is_numeric"`
	CollectionDate string  `json:"collection_date"` // YYYY-MM-DD or NoDateBucket
	SourceID       string  `json:"source_id"`
}

// ConsolidatedIdentity is the single patient identity reduced from all
// documents in one run. Fields are nil when no document carried them.
type ConsolidatedIdentity struct {
	Name           *string `json:"name"`
	DateOfBirth    *string `json:"date_of_birth"`
	Sex            *string `json:"sex"`
	CollectionDate *string `json:"collection_date"` // most recent across documents
}

// DateGroup is the deduplicated reading set for one collection date.
type DateGroup struct {
	Date     string              `json:"date"` // YYYY-MM-DD or NoDateBucket
	Readings []NormalizedReading `json:"readings"`
}

// Consolidation is the full output of reducing one document batch.
type Consolidation struct {
	Identity      ConsolidatedIdentity `json:"identity"`
	Groups        []DateGroup          `json:"groups"`
	Discrepancies []string             `json:"discrepancies"`
	Tier          client.Tier          `json:"tier"`
}

// Result is one benchmark-shaped analysis outcome. Every active benchmark
// appears exactly once per date group, measured or not; unmatched readings are
// appended after the benchmark rows so nothing extracted is ever dropped.
type Result struct {
	CanonicalName string           `json:"canonical_name"`
	Category      string           `json:"category,omitempty"`
	Value         string           `json:"value"` // rendered value or NotMeasured
	NumericValue  *float64         `json:"numeric_value,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	OptimalRange  string           `json:"optimal_range,omitempty"`
	Status        benchmark.Status `json:"status"`
	Confidence    float64          `json:"confidence,omitempty"`
	UnitConverted bool             `json:"unit_converted,omitempty"`
	Matched       bool             `json:"matched"`
	RawName       string           `json:"raw_name,omitempty"`
	RawValue      string           `json:"raw_value,omitempty"`
	SourceID      string           `json:"source_id,omitempty"`
}

// GroupResults pairs a date group with its benchmark-shaped results.
type GroupResults struct {
	Date    string   `json:"date"`
	Results []Result `json:"results"`
}

// Run is one persisted analysis: the consolidated identity, per-date results,
// and the client match decision taken at run time.
type Run struct {
	ID            uuid.UUID             `db:"id" json:"id"`
	TenantID      string                `db:"tenant_id" json:"tenant_id"`
	ClientID      *uuid.UUID            `db:"client_id" json:"client_id,omitempty"`
	Identity      ConsolidatedIdentity  `db:"identity" json:"identity"`
	Discrepancies []string              `db:"discrepancies" json:"discrepancies"`
	Tier          client.Tier           `db:"tier" json:"tier"`
	Groups        []GroupResults        `db:"groups" json:"groups"`
	Decision      *client.MatchDecision `db:"decision" json:"decision,omitempty"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
}
