package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides access to persisted client records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	// Archive flips the status; records are never deleted.
	Archive(ctx context.Context, tenantID string, id uuid.UUID) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Record, int, error)
	// SearchByName returns active records whose name loosely matches the
	// query. Used to bound the resolver's candidate pool.
	SearchByName(ctx context.Context, tenantID, name string, limit int) ([]*Record, error)
}
