package models

import (
	"time"

	"github.com/google/uuid"
)

type BrandProfile struct {
	BrandName        string   `json:"brand_name"`
	Industry         string   `json:"industry"`
	TargetAudience   string   `json:"target_audience"`
	BrandVoice       string   `json:"brand_voice"`
	ToneOfVoice      []string `json:"tone_of_voice,omitempty"`
	ValueProposition string   `json:"value_proposition,omitempty"`
	CoreValues       []string `json:"core_values"`
	KeyMessages      []string `json:"key_messages,omitempty"`
	BrandKeywords    []string `json:"brand_keywords,omitempty"`
	KeyProducts      []string `json:"key_products,omitempty"`
	PainPoints       []string `json:"pain_points,omitempty"`
	Goals            []string `json:"goals,omitempty"`
	Competitors      []string `json:"competitors,omitempty"`
}

type SWOTAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type PositioningStrategy struct {
	Statement             string   `json:"statement"`
	DifferentiationPoints []string `json:"differentiation_points"`
	CompetitiveAdvantage  string   `json:"competitive_advantage"`
	MarketSegment         string   `json:"market_segment,omitempty"`
	KeyMessages           []string `json:"key_messages,omitempty"`
	RecommendedChannels   []string `json:"recommended_channels,omitempty"`
	ContentThemes         []string `json:"content_themes,omitempty"`
}

type BrandAnalysis struct {
	Profile     BrandProfile        `json:"profile"`
	SWOT        SWOTAnalysis        `json:"swot"`
	Positioning PositioningStrategy `json:"positioning"`
	SourceURL   *string             `json:"source_url,omitempty"`
}

type ContentAsset struct {
	Platform     string   `json:"platform"`
	ContentType  string   `json:"content_type"`
	Headline     string   `json:"headline"`
	Body         string   `json:"body"`
	CallToAction string   `json:"call_to_action"`
	SubjectLine  string   `json:"subject_line,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Tone         string   `json:"tone,omitempty"`
}

type VisualAsset struct {
	Platform    string `json:"platform"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
}

type InfluencerRecommendation struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Platform        string    `json:"platform"`
	Niche           string    `json:"niche"`
	Reason          string    `json:"reason"`
	OutreachMessage string    `json:"outreach_message"`
}

type BudgetAllocation struct {
	Platform    string  `json:"platform"`
	AmountCents int64   `json:"amount_cents"`
	Share       float64 `json:"share"`
	Rationale   string  `json:"rationale,omitempty"`
}

type PlatformMetrics struct {
	Platform       string  `json:"platform"`
	SpendCents     int64   `json:"spend_cents"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Conversions    int64   `json:"conversions"`
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversion_rate"`
	CPACents       int64   `json:"cpa_cents"`
	ROI            float64 `json:"roi"`
	EngagementRate float64 `json:"engagement_rate"`
}

type PerformanceMetrics struct {
	BenchmarkVersion string            `json:"benchmark_version"`
	Totals           PlatformMetrics   `json:"totals"`
	PerPlatform      []PlatformMetrics `json:"per_platform"`
}

type OptimizationFeedback struct {
	Insights           []string `json:"insights"`
	Recommendations    []string `json:"recommendations"`
	ContentAdjustments []string `json:"content_adjustments,omitempty"`
}

type CampaignPlan struct {
	Summary     string             `json:"summary"`
	Allocations []BudgetAllocation `json:"allocations"`
	Timeline    []string           `json:"timeline,omitempty"`
}

type CampaignResult struct {
	CampaignID  uuid.UUID                  `json:"campaign_id"`
	Analysis    BrandAnalysis              `json:"analysis"`
	Content     []ContentAsset             `json:"content"`
	Visuals     []VisualAsset              `json:"visuals,omitempty"`
	Influencers []InfluencerRecommendation `json:"influencers"`
	Plan        CampaignPlan               `json:"plan"`
	Metrics     PerformanceMetrics         `json:"metrics"`
	Feedback    *OptimizationFeedback      `json:"feedback,omitempty"`
	ExecutionMS int64                      `json:"execution_ms"`
	CreatedAt   time.Time                  `json:"created_at"`
}
