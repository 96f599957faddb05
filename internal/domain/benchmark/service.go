package benchmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultTenantID owns the seeded catalog. Tenant-specific overrides shadow
// catalog entries with the same canonical name.
const DefaultTenantID = "default"

// Service implements benchmark taxonomy management on top of a repository.
type Service struct {
	repo DefinitionRepository
}

func NewService(repo DefinitionRepository) *Service {
	return &Service{repo: repo}
}

// SnapshotFor builds the immutable taxonomy snapshot an analysis run resolves
// against: the default catalog merged with the tenant's active overrides,
// override winning on exact canonical name. An override row marked inactive
// suppresses the catalog entry for that tenant.
func (s *Service) SnapshotFor(ctx context.Context, tenantID string) (*Snapshot, error) {
	base, err := s.repo.ListActive(ctx, DefaultTenantID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*Definition, len(base))
	for _, d := range base {
		merged[d.CanonicalName] = d
	}
	if tenantID != "" && tenantID != DefaultTenantID {
		overrides, _, err := s.repo.List(ctx, tenantID, 1000, 0)
		if err != nil {
			return nil, err
		}
		for _, d := range overrides {
			if d.Active {
				merged[d.CanonicalName] = d
			} else {
				delete(merged, d.CanonicalName)
			}
		}
	}

	defs := make([]*Definition, 0, len(merged))
	for _, d := range merged {
		defs = append(defs, d)
	}
	return NewSnapshot(defs), nil
}

// List returns the stored definitions for one tenant (overrides only for
// non-default tenants, the seeded catalog for the default tenant).
func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]*Definition, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, tenantID, limit, offset)
}

// Get returns a single definition as the tenant sees it: the tenant's override
// if one exists, the catalog entry otherwise.
func (s *Service) Get(ctx context.Context, tenantID, canonicalName string) (*Definition, error) {
	if tenantID != "" && tenantID != DefaultTenantID {
		if d, err := s.repo.GetByName(ctx, tenantID, canonicalName); err == nil {
			return d, nil
		}
	}
	return s.repo.GetByName(ctx, DefaultTenantID, canonicalName)
}

// SaveOverride validates and stores a tenant's benchmark definition. Range
// expressions must parse under the range grammar so a bad override can never
// silently turn every evaluation into unknown.
func (s *Service) SaveOverride(ctx context.Context, tenantID string, def *Definition) error {
	if tenantID == "" {
		return fmt.Errorf("tenant is required")
	}
	def.TenantID = tenantID
	def.CanonicalName = strings.TrimSpace(def.CanonicalName)
	if def.CanonicalName == "" {
		return fmt.Errorf("canonical_name is required")
	}
	if len(def.Units) == 0 {
		return fmt.Errorf("at least one unit is required")
	}
	if strings.TrimSpace(def.MaleRange) == "" {
		return fmt.Errorf("male_range is required")
	}
	if len(ParseRange(def.MaleRange)) == 0 {
		return fmt.Errorf("male_range %q does not parse", def.MaleRange)
	}
	if def.FemaleRange != "" && len(ParseRange(def.FemaleRange)) == 0 {
		return fmt.Errorf("female_range %q does not parse", def.FemaleRange)
	}
	def.Active = true
	return s.repo.Upsert(ctx, def)
}

// Deactivate marks a tenant's definition inactive. For a non-default tenant
// with no override row yet, an inactive override is written so the catalog
// entry is suppressed for that tenant only.
func (s *Service) Deactivate(ctx context.Context, tenantID, canonicalName string) error {
	if err := s.repo.Deactivate(ctx, tenantID, canonicalName); err == nil {
		return nil
	}
	if tenantID == DefaultTenantID {
		return fmt.Errorf("benchmark %q not found", canonicalName)
	}
	base, err := s.repo.GetByName(ctx, DefaultTenantID, canonicalName)
	if err != nil {
		return fmt.Errorf("benchmark %q not found", canonicalName)
	}
	suppressed := *base
	suppressed.ID = uuid.Nil
	suppressed.TenantID = tenantID
	suppressed.Active = false
	return s.repo.Upsert(ctx, &suppressed)
}

// Seed writes the default catalog under the default tenant. Existing rows are
// replaced, so reseeding after a catalog update is safe.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n := 0
	for _, d := range DefaultCatalog() {
		d.TenantID = DefaultTenantID
		d.Active = true
		if err := s.repo.Upsert(ctx, d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
