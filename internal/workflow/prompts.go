package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campaignforge/backend/internal/extract"
	"github.com/campaignforge/backend/internal/models"
)

const (
	systemBrandStrategist = "You are an expert brand strategist. Answer with JSON only."
	systemCreativeEngine  = "You are a senior creative copywriter for digital advertising. Answer with JSON only."
	systemCampaignManager = "You are an experienced digital campaign manager. Answer with JSON only."
)

func stringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func stringListSchema() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func objectSchema(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func brandProfileSchema() map[string]any {
	return objectSchema(
		[]string{"brand_name", "industry", "target_audience", "brand_voice", "core_values"},
		map[string]any{
			"brand_name":        stringSchema(),
			"industry":          stringSchema(),
			"target_audience":   stringSchema(),
			"brand_voice":       stringSchema(),
			"tone_of_voice":     stringListSchema(),
			"value_proposition": stringSchema(),
			"core_values":       stringListSchema(),
			"key_messages":      stringListSchema(),
			"brand_keywords":    stringListSchema(),
			"key_products":      stringListSchema(),
			"pain_points":       stringListSchema(),
			"goals":             stringListSchema(),
			"competitors":       stringListSchema(),
		},
	)
}

func swotSchema() map[string]any {
	return objectSchema(
		[]string{"strengths", "weaknesses", "opportunities", "threats"},
		map[string]any{
			"strengths":     stringListSchema(),
			"weaknesses":    stringListSchema(),
			"opportunities": stringListSchema(),
			"threats":       stringListSchema(),
		},
	)
}

func positioningSchema() map[string]any {
	return objectSchema(
		[]string{"statement", "differentiation_points", "competitive_advantage"},
		map[string]any{
			"statement":              stringSchema(),
			"differentiation_points": stringListSchema(),
			"competitive_advantage":  stringSchema(),
			"market_segment":         stringSchema(),
			"key_messages":           stringListSchema(),
			"recommended_channels":   stringListSchema(),
			"content_themes":         stringListSchema(),
		},
	)
}

func contentSchema() map[string]any {
	return objectSchema(
		[]string{"headline", "body", "call_to_action"},
		map[string]any{
			"headline":       stringSchema(),
			"body":           stringSchema(),
			"call_to_action": stringSchema(),
			"subject_line":   stringSchema(),
			"hashtags":       stringListSchema(),
			"keywords":       stringListSchema(),
			"tone":           stringSchema(),
		},
	)
}

func visualDescriptorSchema() map[string]any {
	return objectSchema(
		[]string{"image_prompt"},
		map[string]any{"image_prompt": stringSchema()},
	)
}

func influencerSchema() map[string]any {
	return objectSchema(
		[]string{"recommendations"},
		map[string]any{
			"recommendations": map[string]any{
				"type": "array",
				"items": objectSchema(
					[]string{"name", "platform", "niche", "reason", "outreach_message"},
					map[string]any{
						"name":             stringSchema(),
						"platform":         stringSchema(),
						"niche":            stringSchema(),
						"reason":           stringSchema(),
						"outreach_message": stringSchema(),
					},
				),
			},
		},
	)
}

func planSchema() map[string]any {
	return objectSchema(
		[]string{"summary", "allocations"},
		map[string]any{
			"summary": stringSchema(),
			"allocations": map[string]any{
				"type": "array",
				"items": objectSchema(
					[]string{"platform", "amount_cents"},
					map[string]any{
						"platform":     stringSchema(),
						"amount_cents": map[string]any{"type": "number"},
						"rationale":    stringSchema(),
					},
				),
			},
			"timeline": stringListSchema(),
		},
	)
}

func feedbackSchema() map[string]any {
	return objectSchema(
		[]string{"insights", "recommendations"},
		map[string]any{
			"insights":            stringListSchema(),
			"recommendations":     stringListSchema(),
			"content_adjustments": stringListSchema(),
		},
	)
}

func brandContext(c *models.Campaign, summary *extract.ContentSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Campaign: %s\nBrief: %s\n", c.Name, c.Brief)
	if summary != nil {
		fmt.Fprintf(&sb, "\nWebsite title: %s\nWebsite description: %s\n", summary.Title, summary.Description)
		if summary.MainContent != "" {
			fmt.Fprintf(&sb, "Website content: %s\n", summary.MainContent)
		}
		if len(summary.Keywords) > 0 {
			fmt.Fprintf(&sb, "Website keywords: %s\n", strings.Join(summary.Keywords, ", "))
		}
		if len(summary.ProductInfo) > 0 {
			fmt.Fprintf(&sb, "Pricing mentions: %s\n", strings.Join(summary.ProductInfo, ", "))
		}
	}
	return sb.String()
}

func brandProfilePrompt(c *models.Campaign, summary *extract.ContentSummary) string {
	return fmt.Sprintf(`Analyze the brand behind this campaign and extract its profile.

%s
Identify the brand name, industry, target audience, brand voice, tone-of-voice descriptors, value proposition, core values, key messages and brand keywords. Where the brief supports it, also list audience pain points, campaign goals and known competitors.`, brandContext(c, summary))
}

func swotPrompt(profile models.BrandProfile) string {
	data, _ := json.Marshal(profile)
	return fmt.Sprintf(`Perform a SWOT analysis for this brand.

Brand profile: %s

List concrete strengths, weaknesses, opportunities and threats. Each list must contain at least one entry.`, data)
}

func positioningPrompt(profile models.BrandProfile, swot models.SWOTAnalysis) string {
	p, _ := json.Marshal(profile)
	s, _ := json.Marshal(swot)
	return fmt.Sprintf(`Formulate a market positioning strategy for this brand.

Brand profile: %s
SWOT analysis: %s

Provide a positioning statement, differentiation points and the competitive advantage. Optionally add key messages, recommended channels and content themes.`, p, s)
}

func contentPrompt(c *models.Campaign, analysis *models.BrandAnalysis, platform string) string {
	a, _ := json.Marshal(analysis.Profile)
	var sb strings.Builder
	fmt.Fprintf(&sb, `Write %s for the %s platform.

Brand profile: %s
Positioning: %s
Campaign brief: %s

Match the brand voice. Keep the copy platform-appropriate in tone and length. Name the tone you used and weave in the brand keywords.`,
		contentTypeLabel(platform), platform, a, analysis.Positioning.Statement, c.Brief)
	if models.ContentTypeFor(platform) == models.ContentTypeEmailCampaign {
		sb.WriteString(" Include a subject line of at most 50 characters.")
	}
	return sb.String()
}

func contentTypeLabel(platform string) string {
	switch models.ContentTypeFor(platform) {
	case models.ContentTypeAdCopy:
		return "search ad copy"
	case models.ContentTypeEmailCampaign:
		return "a marketing email"
	default:
		return "a social media post"
	}
}

func visualDescriptorPrompt(analysis *models.BrandAnalysis, asset models.ContentAsset) string {
	return fmt.Sprintf(`Describe a single marketing image for a %s post.

Brand: %s (%s)
Headline: %s
Body: %s

Return one detailed image generation prompt capturing the brand voice "%s".`,
		asset.Platform, analysis.Profile.BrandName, analysis.Profile.Industry,
		asset.Headline, asset.Body, analysis.Profile.BrandVoice)
}

func influencerPrompt(c *models.Campaign, analysis *models.BrandAnalysis) string {
	a, _ := json.Marshal(analysis.Profile)
	return fmt.Sprintf(`Recommend 3 to 5 influencer archetypes for this campaign.

Brand profile: %s
Target platforms: %s

For each, give a representative name, the platform, their niche, why they fit, and a short outreach message.`,
		a, strings.Join(c.Platforms, ", "))
}

func planPrompt(c *models.Campaign, analysis *models.BrandAnalysis) string {
	a, _ := json.Marshal(analysis)
	return fmt.Sprintf(`Plan the budget for this campaign.

Total budget: %d cents. Platforms: %s.
Brand analysis: %s

Split the entire budget across exactly these platforms. Amounts are integer cents and must sum to the total budget. Include a short summary and an optional week-by-week timeline.`,
		c.BudgetCents, strings.Join(c.Platforms, ", "), a)
}

func feedbackPrompt(metrics models.PerformanceMetrics) string {
	m, _ := json.Marshal(metrics)
	return fmt.Sprintf(`Review these projected campaign metrics and suggest optimizations.

Metrics: %s

Give concrete insights about channel performance and actionable recommendations.`, m)
}
