package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/gen"
	"github.com/campaignforge/backend/internal/models"
)

var planContract = gen.Contract{
	Required: map[string]gen.Kind{
		"summary":     gen.KindString,
		"allocations": gen.KindObjectList,
	},
	Optional: map[string]gen.Kind{
		"timeline": gen.KindStringList,
	},
}

var feedbackContract = gen.Contract{
	Required: map[string]gen.Kind{
		"insights":        gen.KindStringList,
		"recommendations": gen.KindStringList,
	},
	Optional: map[string]gen.Kind{
		"content_adjustments": gen.KindStringList,
	},
}

// planCampaign asks the model for a budget split, repairs it against the
// campaign budget, and projects metrics from the benchmark table.
func (o *Orchestrator) planCampaign(ctx context.Context, c *models.Campaign, analysis *models.BrandAnalysis) (*models.CampaignPlan, *models.PerformanceMetrics, error) {
	raw, err := o.generator.GenerateStructured(ctx, systemCampaignManager, planPrompt(c, analysis), planSchema())
	if err != nil {
		return nil, nil, &gen.GenerationError{Stage: "plan", Err: err}
	}
	obj, err := gen.SanitizeObject("plan", raw, planContract)
	if err != nil {
		return nil, nil, err
	}

	allocs := parseAllocations(gen.AsObjectList(obj, "allocations"))
	allocs, err = normalizeAllocations(c.BudgetCents, allocs)
	if err != nil {
		return nil, nil, err
	}

	plan := &models.CampaignPlan{
		Summary:     gen.AsString(obj, "summary"),
		Allocations: allocs,
		Timeline:    gen.AsStringList(obj, "timeline"),
	}

	metrics := ComputeMetrics(allocs, o.orderValueCents)

	return plan, &metrics, nil
}

// optimizationFeedback is a best-effort post-metrics call; failure leaves
// the result without a feedback section.
func (o *Orchestrator) optimizationFeedback(ctx context.Context, metrics models.PerformanceMetrics) *models.OptimizationFeedback {
	raw, err := o.generator.GenerateStructured(ctx, systemCampaignManager, feedbackPrompt(metrics), feedbackSchema())
	if err != nil {
		o.log.Warn("optimization feedback skipped", zap.Error(err))
		return nil
	}
	obj, err := gen.SanitizeObject("feedback", raw, feedbackContract)
	if err != nil {
		o.log.Warn("optimization feedback skipped", zap.Error(err))
		return nil
	}
	return &models.OptimizationFeedback{
		Insights:           gen.AsStringList(obj, "insights"),
		Recommendations:    gen.AsStringList(obj, "recommendations"),
		ContentAdjustments: gen.AsStringList(obj, "content_adjustments"),
	}
}
