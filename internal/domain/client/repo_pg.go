package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed client repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const clientColumns = `id, tenant_id, name, birth_date, sex, status, COALESCE(notes,''), created_at, updated_at`

func scanClient(row interface{ Scan(...interface{}) error }) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.TenantID, &rec.Name, &rec.BirthDate, &rec.Sex,
		&rec.Status, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = StatusActive
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO client (id, tenant_id, name, birth_date, sex, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''))`,
		rec.ID, rec.TenantID, rec.Name, rec.BirthDate, rec.Sex, rec.Status, rec.Notes)
	if err != nil {
		return fmt.Errorf("client create: %w", err)
	}
	return nil
}

func (r *repoPG) Get(ctx context.Context, tenantID string, id uuid.UUID) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM client WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	rec, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("client get %s: %w", id, err)
	}
	return rec, nil
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE client SET name = $3, birth_date = $4, sex = $5, notes = NULLIF($6,''), updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		rec.TenantID, rec.ID, rec.Name, rec.BirthDate, rec.Sex, rec.Notes)
	if err != nil {
		return fmt.Errorf("client update %s: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s not found", rec.ID)
	}
	return nil
}

func (r *repoPG) Archive(ctx context.Context, tenantID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE client SET status = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, StatusArchived)
	if err != nil {
		return fmt.Errorf("client archive %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, tenantID string, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM client WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("client count: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM client
		 WHERE tenant_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("client list: %w", err)
	}
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, total, rows.Err()
}

func (r *repoPG) SearchByName(ctx context.Context, tenantID, name string, limit int) ([]*Record, error) {
	// Match on any token of the query so "John Smith" also finds "Smith, John".
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return nil, nil
	}
	patterns := make([]string, len(tokens))
	for i, t := range tokens {
		patterns[i] = "%" + t + "%"
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM client
		 WHERE tenant_id = $1 AND status = $2 AND name ILIKE ANY($3)
		 ORDER BY name, id LIMIT $4`, tenantID, StatusActive, patterns, limit)
	if err != nil {
		return nil, fmt.Errorf("client search: %w", err)
	}
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
