package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/extract"
	"github.com/campaignforge/backend/internal/gen"
	"github.com/campaignforge/backend/internal/models"
)

var brandProfileContract = gen.Contract{
	Required: map[string]gen.Kind{
		"brand_name":      gen.KindString,
		"industry":        gen.KindString,
		"target_audience": gen.KindString,
		"brand_voice":     gen.KindString,
		"core_values":     gen.KindStringList,
	},
	Optional: map[string]gen.Kind{
		"tone_of_voice":     gen.KindStringList,
		"value_proposition": gen.KindString,
		"key_messages":      gen.KindStringList,
		"brand_keywords":    gen.KindStringList,
		"key_products":      gen.KindStringList,
		"pain_points":       gen.KindStringList,
		"goals":             gen.KindStringList,
		"competitors":       gen.KindStringList,
	},
}

var swotContract = gen.Contract{
	Required: map[string]gen.Kind{
		"strengths":     gen.KindStringList,
		"weaknesses":    gen.KindStringList,
		"opportunities": gen.KindStringList,
		"threats":       gen.KindStringList,
	},
}

var positioningContract = gen.Contract{
	Required: map[string]gen.Kind{
		"statement":              gen.KindString,
		"differentiation_points": gen.KindStringList,
		"competitive_advantage":  gen.KindString,
	},
	Optional: map[string]gen.Kind{
		"market_segment":       gen.KindString,
		"key_messages":         gen.KindStringList,
		"recommended_channels": gen.KindStringList,
		"content_themes":       gen.KindStringList,
	},
}

// analyzeBrand runs the three-call analysis stage: profile, SWOT,
// positioning. Website extraction enriches the prompts when a source URL is
// set; an extraction failure is logged and absorbed, never fatal.
func (o *Orchestrator) analyzeBrand(ctx context.Context, c *models.Campaign) (*models.BrandAnalysis, error) {
	var summary *extract.ContentSummary
	if c.SourceURL != nil && *c.SourceURL != "" {
		s, err := o.fetcher.Fetch(ctx, *c.SourceURL)
		if err != nil {
			o.log.Warn("source extraction failed, continuing without it",
				zap.String("campaign_id", c.ID.String()),
				zap.String("url", *c.SourceURL),
				zap.Error(err))
		} else {
			summary = s
		}
	}

	raw, err := o.generator.GenerateStructured(ctx, systemBrandStrategist, brandProfilePrompt(c, summary), brandProfileSchema())
	if err != nil {
		return nil, &gen.GenerationError{Stage: "brand_profile", Err: err}
	}
	profileObj, err := gen.SanitizeObject("brand_profile", raw, brandProfileContract)
	if err != nil {
		return nil, err
	}
	profile := models.BrandProfile{
		BrandName:        gen.AsString(profileObj, "brand_name"),
		Industry:         gen.AsString(profileObj, "industry"),
		TargetAudience:   gen.AsString(profileObj, "target_audience"),
		BrandVoice:       gen.AsString(profileObj, "brand_voice"),
		ToneOfVoice:      gen.AsStringList(profileObj, "tone_of_voice"),
		ValueProposition: gen.AsString(profileObj, "value_proposition"),
		CoreValues:       gen.AsStringList(profileObj, "core_values"),
		KeyMessages:      gen.AsStringList(profileObj, "key_messages"),
		BrandKeywords:    gen.AsStringList(profileObj, "brand_keywords"),
		KeyProducts:      gen.AsStringList(profileObj, "key_products"),
		PainPoints:       gen.AsStringList(profileObj, "pain_points"),
		Goals:            gen.AsStringList(profileObj, "goals"),
		Competitors:      gen.AsStringList(profileObj, "competitors"),
	}

	raw, err = o.generator.GenerateStructured(ctx, systemBrandStrategist, swotPrompt(profile), swotSchema())
	if err != nil {
		return nil, &gen.GenerationError{Stage: "swot", Err: err}
	}
	swotObj, err := gen.SanitizeObject("swot", raw, swotContract)
	if err != nil {
		return nil, err
	}
	swot := models.SWOTAnalysis{
		Strengths:     gen.AsStringList(swotObj, "strengths"),
		Weaknesses:    gen.AsStringList(swotObj, "weaknesses"),
		Opportunities: gen.AsStringList(swotObj, "opportunities"),
		Threats:       gen.AsStringList(swotObj, "threats"),
	}

	raw, err = o.generator.GenerateStructured(ctx, systemBrandStrategist, positioningPrompt(profile, swot), positioningSchema())
	if err != nil {
		return nil, &gen.GenerationError{Stage: "positioning", Err: err}
	}
	posObj, err := gen.SanitizeObject("positioning", raw, positioningContract)
	if err != nil {
		return nil, err
	}
	positioning := models.PositioningStrategy{
		Statement:             gen.AsString(posObj, "statement"),
		DifferentiationPoints: gen.AsStringList(posObj, "differentiation_points"),
		CompetitiveAdvantage:  gen.AsString(posObj, "competitive_advantage"),
		MarketSegment:         gen.AsString(posObj, "market_segment"),
		KeyMessages:           gen.AsStringList(posObj, "key_messages"),
		RecommendedChannels:   gen.AsStringList(posObj, "recommended_channels"),
		ContentThemes:         gen.AsStringList(posObj, "content_themes"),
	}

	return &models.BrandAnalysis{
		Profile:     profile,
		SWOT:        swot,
		Positioning: positioning,
		SourceURL:   c.SourceURL,
	}, nil
}
