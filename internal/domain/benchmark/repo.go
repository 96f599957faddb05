package benchmark

import "context"

// DefinitionRepository provides access to stored benchmark definitions.
type DefinitionRepository interface {
	// ListActive returns the active definitions for one tenant.
	ListActive(ctx context.Context, tenantID string) ([]*Definition, error)
	// List returns definitions for one tenant with a total count.
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Definition, int, error)
	GetByName(ctx context.Context, tenantID, canonicalName string) (*Definition, error)
	// Upsert inserts or replaces the definition keyed by (tenant, canonical name).
	Upsert(ctx context.Context, def *Definition) error
	// Deactivate marks a definition inactive. Definitions are never deleted.
	Deactivate(ctx context.Context, tenantID, canonicalName string) error
}
