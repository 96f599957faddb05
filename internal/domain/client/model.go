package client

import (
	"time"

	"github.com/google/uuid"
)

// Record is a persisted client identity, independent of any single analysis
// run. Records are never deleted, only archived.
type Record struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	BirthDate *string   `db:"birth_date" json:"birth_date,omitempty"` // YYYY-MM-DD
	Sex       *string   `db:"sex" json:"sex,omitempty"`
	Status    string    `db:"status" json:"status"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Identity is the resolver's view of a patient: the consolidated fields from
// one analysis run. Any field may be null when no document carried it.
type Identity struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
	Sex         *string `json:"sex"`
}

// Tier is a coarse, explainable confidence label.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Action is the suggested handling for a match decision.
type Action string

const (
	ActionReuseExisting Action = "reuse-existing"
	ActionCreateNew     Action = "create-new"
	ActionManualSelect  Action = "manual-select"
)

// MatchDecision is the outcome of resolving a consolidated identity against a
// candidate pool. Computed fresh per analysis run, never persisted.
//
// Confidence means match quality for reuse decisions. For create-new the tier
// expresses confidence that a new record is warranted, which is why a 0.2 best
// score still yields TierHigh.
type MatchDecision struct {
	ClientID             *uuid.UUID `json:"client_id,omitempty"`
	Confidence           float64    `json:"confidence"`
	Tier                 Tier       `json:"tier"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	Action               Action     `json:"action"`
}
