package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campaignforge/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// ErrStatusConflict means a guarded status write found a different current
// status, typically because the campaign is already terminal.
var ErrStatusConflict = errors.New("status conflict")

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	kpis, err := json.Marshal(c.TargetKPIs)
	if err != nil {
		return fmt.Errorf("marshal target kpis: %w", err)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (owner_user_id, name, brief, budget_cents, platforms, target_kpis, source_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.Name, c.Brief, c.BudgetCents, c.Platforms, kpis, c.SourceURL, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	var kpis []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, name, brief, budget_cents, platforms, target_kpis,
		       source_url, status, failure_reason, workflow_run_id, created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Brief, &c.BudgetCents, &c.Platforms, &kpis,
		&c.SourceURL, &c.Status, &c.FailureReason, &c.WorkflowRunID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(kpis) > 0 {
		if err := json.Unmarshal(kpis, &c.TargetKPIs); err != nil {
			return nil, fmt.Errorf("unmarshal target kpis: %w", err)
		}
	}
	return &c, nil
}

type CampaignFilter struct {
	OwnerUserID *uuid.UUID
	Status      *string
	Limit       int
	Offset      int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `
		SELECT id, owner_user_id, name, brief, budget_cents, platforms, target_kpis,
		       source_url, status, failure_reason, workflow_run_id, created_at, updated_at
		FROM campaigns
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var kpis []byte
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Brief, &c.BudgetCents, &c.Platforms, &kpis,
			&c.SourceURL, &c.Status, &c.FailureReason, &c.WorkflowRunID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if len(kpis) > 0 {
			if err := json.Unmarshal(kpis, &c.TargetKPIs); err != nil {
				return nil, fmt.Errorf("unmarshal target kpis: %w", err)
			}
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// SetStatus is a compare-and-set on the status column, so a stale or
// concurrent writer can never move a campaign out of a terminal state or
// skip a stage.
func (r *CampaignRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s is not %s", ErrStatusConflict, id, from)
	}
	return nil
}

func (r *CampaignRepo) SetFailed(ctx context.Context, id uuid.UUID, from, reason string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, failure_reason = $2, updated_at = now()
		WHERE id = $3 AND status = $4
	`, models.CampaignStatusFailed, reason, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s is not %s", ErrStatusConflict, id, from)
	}
	return nil
}

func (r *CampaignRepo) SetWorkflowRun(ctx context.Context, id, runID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET workflow_run_id = $1, updated_at = now() WHERE id = $2
	`, runID, id)
	return err
}

// ListStuck returns non-terminal campaigns untouched for longer than age.
// The janitor fails them so clients polling status are not left hanging.
// Aged pending rows count too: a run whose first status write never landed
// leaves the campaign pending forever otherwise.
func (r *CampaignRepo) ListStuck(ctx context.Context, age time.Duration, limit int) ([]models.Campaign, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_user_id, name, brief, budget_cents, platforms, target_kpis,
		       source_url, status, failure_reason, workflow_run_id, created_at, updated_at
		FROM campaigns
		WHERE status NOT IN ($1, $2) AND updated_at < now() - $3::interval
		ORDER BY updated_at ASC
		LIMIT $4
	`, models.CampaignStatusCompleted, models.CampaignStatusFailed,
		fmt.Sprintf("%d seconds", int(age.Seconds())), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var kpis []byte
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Brief, &c.BudgetCents, &c.Platforms, &kpis,
			&c.SourceURL, &c.Status, &c.FailureReason, &c.WorkflowRunID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if len(kpis) > 0 {
			if err := json.Unmarshal(kpis, &c.TargetKPIs); err != nil {
				return nil, fmt.Errorf("unmarshal target kpis: %w", err)
			}
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
