package benchmark

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type definitionRepoPG struct{ pool *pgxpool.Pool }

// NewDefinitionRepoPG creates a Postgres-backed definition repository.
func NewDefinitionRepoPG(pool *pgxpool.Pool) DefinitionRepository {
	return &definitionRepoPG{pool: pool}
}

const definitionColumns = `id, tenant_id, canonical_name, category, aliases, units,
       male_range, COALESCE(female_range,''), active, created_at, updated_at`

func scanDefinition(row interface{ Scan(...interface{}) error }) (*Definition, error) {
	var d Definition
	err := row.Scan(&d.ID, &d.TenantID, &d.CanonicalName, &d.Category, &d.Aliases, &d.Units,
		&d.MaleRange, &d.FemaleRange, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *definitionRepoPG) ListActive(ctx context.Context, tenantID string) ([]*Definition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+definitionColumns+`
		 FROM benchmark_definition
		 WHERE tenant_id = $1 AND active
		 ORDER BY canonical_name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("benchmark list active: %w", err)
	}
	defer rows.Close()

	var defs []*Definition
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func (r *definitionRepoPG) List(ctx context.Context, tenantID string, limit, offset int) ([]*Definition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM benchmark_definition WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("benchmark count: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+definitionColumns+`
		 FROM benchmark_definition
		 WHERE tenant_id = $1
		 ORDER BY canonical_name LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("benchmark list: %w", err)
	}
	defer rows.Close()

	var defs []*Definition
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, 0, err
		}
		defs = append(defs, d)
	}
	return defs, total, rows.Err()
}

func (r *definitionRepoPG) GetByName(ctx context.Context, tenantID, canonicalName string) (*Definition, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+definitionColumns+`
		 FROM benchmark_definition
		 WHERE tenant_id = $1 AND canonical_name = $2`, tenantID, canonicalName)
	d, err := scanDefinition(row)
	if err != nil {
		return nil, fmt.Errorf("benchmark get %q: %w", canonicalName, err)
	}
	return d, nil
}

func (r *definitionRepoPG) Upsert(ctx context.Context, def *Definition) error {
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO benchmark_definition
		     (id, tenant_id, canonical_name, category, aliases, units, male_range, female_range, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,''), $9)
		 ON CONFLICT (tenant_id, canonical_name) DO UPDATE SET
		     category = EXCLUDED.category,
		     aliases = EXCLUDED.aliases,
		     units = EXCLUDED.units,
		     male_range = EXCLUDED.male_range,
		     female_range = EXCLUDED.female_range,
		     active = EXCLUDED.active,
		     updated_at = NOW()`,
		def.ID, def.TenantID, def.CanonicalName, def.Category, def.Aliases, def.Units,
		def.MaleRange, def.FemaleRange, def.Active)
	if err != nil {
		return fmt.Errorf("benchmark upsert %q: %w", def.CanonicalName, err)
	}
	return nil
}

func (r *definitionRepoPG) Deactivate(ctx context.Context, tenantID, canonicalName string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE benchmark_definition SET active = FALSE, updated_at = NOW()
		 WHERE tenant_id = $1 AND canonical_name = $2`, tenantID, canonicalName)
	if err != nil {
		return fmt.Errorf("benchmark deactivate %q: %w", canonicalName, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("benchmark %q not found", canonicalName)
	}
	return nil
}
