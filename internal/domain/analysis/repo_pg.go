package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labsense/labsense/internal/domain/client"
)

type runRepoPG struct{ pool *pgxpool.Pool }

// NewRunRepoPG creates a Postgres-backed run repository. Identity, results
// and decision are stored as jsonb; runs are written once and never updated.
func NewRunRepoPG(pool *pgxpool.Pool) RunRepository {
	return &runRepoPG{pool: pool}
}

func (r *runRepoPG) Insert(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	identity, err := json.Marshal(run.Identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	groups, err := json.Marshal(run.Groups)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	discrepancies, err := json.Marshal(run.Discrepancies)
	if err != nil {
		return fmt.Errorf("encode discrepancies: %w", err)
	}
	var decision []byte
	if run.Decision != nil {
		if decision, err = json.Marshal(run.Decision); err != nil {
			return fmt.Errorf("encode decision: %w", err)
		}
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO analysis_run (id, tenant_id, client_id, identity, discrepancies, tier, groups, decision)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		run.ID, run.TenantID, run.ClientID, identity, discrepancies, run.Tier, groups, decision).
		Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysis insert: %w", err)
	}
	return nil
}

func scanRun(row interface{ Scan(...interface{}) error }) (*Run, error) {
	var (
		run           Run
		identity      []byte
		discrepancies []byte
		groups        []byte
		decision      []byte
	)
	err := row.Scan(&run.ID, &run.TenantID, &run.ClientID, &identity, &discrepancies,
		&run.Tier, &groups, &decision, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(identity, &run.Identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if err := json.Unmarshal(discrepancies, &run.Discrepancies); err != nil {
		return nil, fmt.Errorf("decode discrepancies: %w", err)
	}
	if err := json.Unmarshal(groups, &run.Groups); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if len(decision) > 0 {
		run.Decision = &client.MatchDecision{}
		if err := json.Unmarshal(decision, run.Decision); err != nil {
			return nil, fmt.Errorf("decode decision: %w", err)
		}
	}
	return &run, nil
}

const runColumns = `id, tenant_id, client_id, identity, discrepancies, tier, groups, decision, created_at`

func (r *runRepoPG) Get(ctx context.Context, tenantID string, id uuid.UUID) (*Run, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM analysis_run WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("analysis get %s: %w", id, err)
	}
	return run, nil
}

func (r *runRepoPG) List(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*Run, int, error) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if clientID != "" {
		where += ` AND client_id = $2`
		args = append(args, clientID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analysis_run `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("analysis count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM analysis_run %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		runColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("analysis list: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}
