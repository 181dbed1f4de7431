package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campaignforge/backend/internal/models"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLogEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (campaign_id, from_status, to_status, note)
		VALUES ($1, $2, $3, $4)
	`, entry.CampaignID, entry.FromStatus, entry.ToStatus, entry.Note)
	return err
}

func (r *AuditRepo) GetByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, from_status, to_status, note, created_at
		FROM audit_log WHERE campaign_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, campaignID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLogEntry
	for rows.Next() {
		var l models.AuditLogEntry
		if err := rows.Scan(&l.ID, &l.CampaignID, &l.FromStatus, &l.ToStatus, &l.Note, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
