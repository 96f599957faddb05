package analysis

import (
	"context"

	"github.com/google/uuid"
)

// RunRepository persists completed analysis runs.
type RunRepository interface {
	Insert(ctx context.Context, run *Run) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*Run, error)
	// List returns runs newest first, optionally filtered by client ID.
	List(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*Run, int, error)
}
