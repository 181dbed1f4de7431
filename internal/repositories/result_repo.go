package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campaignforge/backend/internal/models"
)

type ResultRepo struct {
	pool *pgxpool.Pool
}

func NewResultRepo(pool *pgxpool.Pool) *ResultRepo {
	return &ResultRepo{pool: pool}
}

// Save stores a completed run's payload. ON CONFLICT DO NOTHING makes the
// write idempotent: the first result for a campaign wins.
func (r *ResultRepo) Save(ctx context.Context, res *models.CampaignResult) error {
	analysis, err := json.Marshal(res.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	content, err := json.Marshal(res.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	visuals, err := json.Marshal(res.Visuals)
	if err != nil {
		return fmt.Errorf("marshal visuals: %w", err)
	}
	influencers, err := json.Marshal(res.Influencers)
	if err != nil {
		return fmt.Errorf("marshal influencers: %w", err)
	}
	plan, err := json.Marshal(res.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	metrics, err := json.Marshal(res.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	var feedback []byte
	if res.Feedback != nil {
		feedback, err = json.Marshal(res.Feedback)
		if err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO campaign_results (campaign_id, analysis, content, visuals, influencers, plan, metrics, feedback, execution_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (campaign_id) DO NOTHING
	`, res.CampaignID, analysis, content, visuals, influencers, plan, metrics, feedback, res.ExecutionMS)
	return err
}

func (r *ResultRepo) GetByCampaignID(ctx context.Context, campaignID uuid.UUID) (*models.CampaignResult, error) {
	var res models.CampaignResult
	var analysis, content, visuals, influencers, plan, metrics, feedback []byte

	err := r.pool.QueryRow(ctx, `
		SELECT campaign_id, analysis, content, visuals, influencers, plan, metrics, feedback, execution_ms, created_at
		FROM campaign_results WHERE campaign_id = $1
	`, campaignID).Scan(&res.CampaignID, &analysis, &content, &visuals, &influencers, &plan, &metrics, &feedback,
		&res.ExecutionMS, &res.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	for _, p := range []struct {
		data []byte
		dst  any
	}{
		{analysis, &res.Analysis},
		{content, &res.Content},
		{visuals, &res.Visuals},
		{influencers, &res.Influencers},
		{plan, &res.Plan},
		{metrics, &res.Metrics},
	} {
		if err := json.Unmarshal(p.data, p.dst); err != nil {
			return nil, fmt.Errorf("unmarshal result payload: %w", err)
		}
	}
	if len(feedback) > 0 {
		res.Feedback = &models.OptimizationFeedback{}
		if err := json.Unmarshal(feedback, res.Feedback); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
	}

	return &res, nil
}
