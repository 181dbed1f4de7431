package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/campaignforge/backend/internal/gen"
	"github.com/campaignforge/backend/internal/models"
)

var influencerListContract = gen.Contract{
	Required: map[string]gen.Kind{
		"recommendations": gen.KindObjectList,
	},
}

// influencerContract is strict: only these five generator fields survive
// into the stored result, whatever else the model invents.
var influencerContract = gen.Contract{
	Required: map[string]gen.Kind{
		"name":             gen.KindString,
		"platform":         gen.KindString,
		"niche":            gen.KindString,
		"reason":           gen.KindString,
		"outreach_message": gen.KindString,
	},
	Strict: true,
}

func (o *Orchestrator) recommendInfluencers(ctx context.Context, c *models.Campaign, analysis *models.BrandAnalysis) ([]models.InfluencerRecommendation, error) {
	raw, err := o.generator.GenerateStructured(ctx, systemCampaignManager, influencerPrompt(c, analysis), influencerSchema())
	if err != nil {
		return nil, &gen.GenerationError{Stage: "influencers", Err: err}
	}

	outer, err := gen.SanitizeObject("influencers", raw, influencerListContract)
	if err != nil {
		return nil, err
	}

	items := gen.AsObjectList(outer, "recommendations")
	recs := make([]models.InfluencerRecommendation, 0, len(items))
	for _, item := range items {
		clean, err := gen.SanitizeMap("influencers", item, influencerContract)
		if err != nil {
			return nil, err
		}
		recs = append(recs, models.InfluencerRecommendation{
			ID:              uuid.New(),
			Name:            gen.AsString(clean, "name"),
			Platform:        gen.AsString(clean, "platform"),
			Niche:           gen.AsString(clean, "niche"),
			Reason:          gen.AsString(clean, "reason"),
			OutreachMessage: gen.AsString(clean, "outreach_message"),
		})
	}

	return recs, nil
}
