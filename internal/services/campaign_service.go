package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/models"
	"github.com/campaignforge/backend/internal/repositories"
	"github.com/campaignforge/backend/internal/workflow"
)

var ErrValidation = errors.New("validation failed")

const (
	maxNameLen  = 200
	maxBriefLen = 8000
)

type CreateCampaignInput struct {
	Name        string
	Brief       string
	BudgetCents int64
	Platforms   []string
	TargetKPIs  map[string]float64
	SourceURL   *string
}

type CampaignService struct {
	campaigns    *repositories.CampaignRepo
	results      *repositories.ResultRepo
	orchestrator *workflow.Orchestrator
	log          *zap.Logger
}

func NewCampaignService(campaigns *repositories.CampaignRepo, results *repositories.ResultRepo, orchestrator *workflow.Orchestrator, log *zap.Logger) *CampaignService {
	return &CampaignService{
		campaigns:    campaigns,
		results:      results,
		orchestrator: orchestrator,
		log:          log,
	}
}

// Create validates, persists the campaign as pending and launches the
// pipeline in the background. The caller gets the pending record back
// immediately and polls for progress.
func (s *CampaignService) Create(ctx context.Context, ownerID uuid.UUID, in CreateCampaignInput) (*models.Campaign, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	runID := uuid.New()
	c := &models.Campaign{
		OwnerUserID:   ownerID,
		Name:          strings.TrimSpace(in.Name),
		Brief:         strings.TrimSpace(in.Brief),
		BudgetCents:   in.BudgetCents,
		Platforms:     normalizePlatforms(in.Platforms),
		TargetKPIs:    in.TargetKPIs,
		SourceURL:     in.SourceURL,
		Status:        models.CampaignStatusPending,
		WorkflowRunID: &runID,
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	if err := s.campaigns.SetWorkflowRun(ctx, c.ID, runID); err != nil {
		s.log.Warn("set workflow run id", zap.String("campaign_id", c.ID.String()), zap.Error(err))
	}

	run := *c
	go func() {
		if err := s.orchestrator.Run(context.Background(), &run); err != nil {
			s.log.Error("campaign run failed",
				zap.String("campaign_id", c.ID.String()),
				zap.Error(err))
		}
	}()

	return c, nil
}

func (s *CampaignService) Get(ctx context.Context, id uuid.UUID) (*models.Campaign, *models.CampaignResult, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	// Results are only exposed once the run came through; a failed run
	// never has one.
	if c.Status != models.CampaignStatusCompleted {
		return c, nil, nil
	}
	result, err := s.results.GetByCampaignID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return c, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return c, result, nil
}

func (s *CampaignService) List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaigns.List(ctx, f)
}

func validateCreate(in CreateCampaignInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrValidation, maxNameLen)
	}
	if strings.TrimSpace(in.Brief) == "" || len(in.Brief) > maxBriefLen {
		return fmt.Errorf("%w: brief must be 1-%d characters", ErrValidation, maxBriefLen)
	}
	if in.BudgetCents <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrValidation)
	}
	if len(in.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform required", ErrValidation)
	}
	seen := make(map[string]bool)
	for _, p := range in.Platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if !models.IsCanonicalPlatform(p) {
			return fmt.Errorf("%w: unknown platform %q", ErrValidation, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate platform %q", ErrValidation, p)
		}
		seen[p] = true
	}
	if in.SourceURL != nil && *in.SourceURL != "" {
		u, err := url.Parse(*in.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: source_url must be a valid http(s) URL", ErrValidation)
		}
	}
	return nil
}

func normalizePlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}
