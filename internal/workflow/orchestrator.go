package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/campaignforge/backend/internal/extract"
	"github.com/campaignforge/backend/internal/models"
)

// Generator produces model output for the pipeline stages.
type Generator interface {
	GenerateStructured(ctx context.Context, system, user string, schema map[string]any) (json.RawMessage, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// SummaryFetcher pulls a content summary from a brand's web page.
type SummaryFetcher interface {
	Fetch(ctx context.Context, url string) (*extract.ContentSummary, error)
}

// Store persists run progress. SetStatus must reject transitions outside
// ValidCampaignTransitions and any write to a terminal campaign.
type Store interface {
	SetStatus(ctx context.Context, id uuid.UUID, from, to string) error
	SetFailed(ctx context.Context, id uuid.UUID, from, reason string) error
	SaveResult(ctx context.Context, result *models.CampaignResult) error
}

// Locker guards a campaign against concurrent runs.
type Locker interface {
	Acquire(ctx context.Context, id uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) error
}

type Orchestrator struct {
	generator       Generator
	fetcher         SummaryFetcher
	store           Store
	locker          Locker
	runTimeout      time.Duration
	orderValueCents int64
	log             *zap.Logger
}

func NewOrchestrator(generator Generator, fetcher SummaryFetcher, store Store, locker Locker, runTimeout time.Duration, orderValueCents int64, log *zap.Logger) *Orchestrator {
	if orderValueCents <= 0 {
		orderValueCents = 10000
	}
	return &Orchestrator{
		generator:       generator,
		fetcher:         fetcher,
		store:           store,
		locker:          locker,
		runTimeout:      runTimeout,
		orderValueCents: orderValueCents,
		log:             log,
	}
}

// Run drives a pending campaign through the full pipeline. Any stage error
// moves the campaign to failed with a reason; the returned error mirrors
// what was recorded.
func (o *Orchestrator) Run(ctx context.Context, c *models.Campaign) error {
	ok, err := o.locker.Acquire(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		o.log.Warn("run already in progress", zap.String("campaign_id", c.ID.String()))
		return nil
	}
	defer func() {
		if err := o.locker.Release(context.Background(), c.ID); err != nil {
			o.log.Warn("release run lock", zap.Error(err))
		}
	}()

	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	started := time.Now()
	log := o.log.With(zap.String("campaign_id", c.ID.String()))

	if err := o.transition(ctx, c, models.CampaignStatusAnalyzing); err != nil {
		return o.fail(ctx, c, err)
	}
	analysis, err := o.analyzeBrand(ctx, c)
	if err != nil {
		return o.fail(ctx, c, err)
	}
	log.Info("brand analysis done", zap.String("brand", analysis.Profile.BrandName))

	if err := o.transition(ctx, c, models.CampaignStatusGenerating); err != nil {
		return o.fail(ctx, c, err)
	}

	var assets []models.ContentAsset
	var recs []models.InfluencerRecommendation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = o.generateContent(gctx, c, analysis)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = o.recommendInfluencers(gctx, c, analysis)
		return err
	})
	if err := g.Wait(); err != nil {
		return o.fail(ctx, c, err)
	}
	visuals := o.generateVisuals(ctx, analysis, assets)
	log.Info("generation done",
		zap.Int("content_assets", len(assets)),
		zap.Int("visuals", len(visuals)),
		zap.Int("influencers", len(recs)))

	if err := o.transition(ctx, c, models.CampaignStatusExecuting); err != nil {
		return o.fail(ctx, c, err)
	}
	plan, metrics, err := o.planCampaign(ctx, c, analysis)
	if err != nil {
		return o.fail(ctx, c, err)
	}
	feedback := o.optimizationFeedback(ctx, *metrics)

	result := &models.CampaignResult{
		CampaignID:  c.ID,
		Analysis:    *analysis,
		Content:     assets,
		Visuals:     visuals,
		Influencers: recs,
		Plan:        *plan,
		Metrics:     *metrics,
		Feedback:    feedback,
		ExecutionMS: time.Since(started).Milliseconds(),
		CreatedAt:   time.Now(),
	}
	if err := o.store.SaveResult(ctx, result); err != nil {
		return o.fail(ctx, c, fmt.Errorf("persist result: %w", err))
	}

	// A failed terminal write still closes the campaign out rather than
	// leaving it parked in executing.
	if err := o.transition(ctx, c, models.CampaignStatusCompleted); err != nil {
		return o.fail(ctx, c, err)
	}
	log.Info("campaign completed", zap.Int64("execution_ms", result.ExecutionMS))
	return nil
}

func (o *Orchestrator) transition(ctx context.Context, c *models.Campaign, to string) error {
	if !models.IsValidTransition(c.Status, to) {
		return fmt.Errorf("invalid transition %s -> %s", c.Status, to)
	}
	if err := o.store.SetStatus(ctx, c.ID, c.Status, to); err != nil {
		return fmt.Errorf("transition %s -> %s: %w", c.Status, to, err)
	}
	c.Status = to
	return nil
}

// fail moves the campaign to failed and records the stage error as the
// failure reason. Already-terminal campaigns are left untouched.
func (o *Orchestrator) fail(ctx context.Context, c *models.Campaign, cause error) error {
	if models.IsTerminalStatus(c.Status) {
		return cause
	}
	// Failure recording must survive a cancelled run context.
	failCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := o.store.SetFailed(failCtx, c.ID, c.Status, cause.Error()); err != nil {
		o.log.Error("record failure",
			zap.String("campaign_id", c.ID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err))
	} else {
		c.Status = models.CampaignStatusFailed
	}
	return cause
}
