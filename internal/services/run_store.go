package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/events"
	"github.com/campaignforge/backend/internal/models"
	"github.com/campaignforge/backend/internal/repositories"
)

// RunStore implements workflow.Store on top of the repositories, adding an
// audit trail row and a pub/sub event for every status change.
type RunStore struct {
	campaigns *repositories.CampaignRepo
	results   *repositories.ResultRepo
	audit     *repositories.AuditRepo
	publisher events.Publisher
	log       *zap.Logger
}

func NewRunStore(campaigns *repositories.CampaignRepo, results *repositories.ResultRepo, audit *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger) *RunStore {
	return &RunStore{
		campaigns: campaigns,
		results:   results,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

func (s *RunStore) SetStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	if err := s.campaigns.SetStatus(ctx, id, from, to); err != nil {
		return err
	}
	s.afterStatusChange(ctx, id, from, to, "")
	return nil
}

func (s *RunStore) SetFailed(ctx context.Context, id uuid.UUID, from, reason string) error {
	if err := s.campaigns.SetFailed(ctx, id, from, reason); err != nil {
		return err
	}
	s.afterStatusChange(ctx, id, from, models.CampaignStatusFailed, reason)
	return nil
}

func (s *RunStore) SaveResult(ctx context.Context, result *models.CampaignResult) error {
	return s.results.Save(ctx, result)
}

// afterStatusChange records side effects of a persisted transition. They
// are best-effort: the transition itself already committed.
func (s *RunStore) afterStatusChange(ctx context.Context, id uuid.UUID, from, to, note string) {
	if err := s.audit.Log(ctx, models.AuditLogEntry{
		CampaignID: id,
		FromStatus: from,
		ToStatus:   to,
		Note:       note,
	}); err != nil {
		s.log.Warn("audit log write failed", zap.String("campaign_id", id.String()), zap.Error(err))
	}

	eventType := events.EventCampaignStatusChanged
	switch to {
	case models.CampaignStatusCompleted:
		eventType = events.EventCampaignCompleted
	case models.CampaignStatusFailed:
		eventType = events.EventCampaignFailed
	}
	err := s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: eventType,
		Payload: map[string]any{
			"campaign_id": id.String(),
			"from":        from,
			"to":          to,
		},
	})
	if err != nil {
		s.log.Warn("event publish failed", zap.String("campaign_id", id.String()), zap.Error(err))
	}
}
