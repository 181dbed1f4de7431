package workflow

import (
	"math"

	"github.com/campaignforge/backend/internal/models"
)

// ComputeMetrics projects deterministic performance numbers from budget
// allocations and the channel benchmark table. Pure: same allocations, same
// output. All spend values are cents; benchmark CPMs are dollars, converted
// here.
func ComputeMetrics(allocs []models.BudgetAllocation, orderValueCents int64) models.PerformanceMetrics {
	perPlatform := make([]models.PlatformMetrics, 0, len(allocs))
	totals := models.PlatformMetrics{Platform: "all"}

	for _, a := range allocs {
		b := BenchmarkFor(a.Platform)
		spendDollars := float64(a.AmountCents) / 100

		impressions := int64(math.Round(spendDollars / b.CPM * 1000))
		clicks := int64(math.Round(float64(impressions) * b.CTR))
		conversions := int64(math.Round(float64(clicks) * b.ConversionRate))

		m := models.PlatformMetrics{
			Platform:    a.Platform,
			SpendCents:  a.AmountCents,
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: conversions,
		}
		fillRatios(&m, orderValueCents)

		perPlatform = append(perPlatform, m)

		totals.SpendCents += m.SpendCents
		totals.Impressions += m.Impressions
		totals.Clicks += m.Clicks
		totals.Conversions += m.Conversions
	}

	fillRatios(&totals, orderValueCents)

	return models.PerformanceMetrics{
		BenchmarkVersion: benchmarkVersion,
		Totals:           totals,
		PerPlatform:      perPlatform,
	}
}

// fillRatios derives the ratio fields from the counters, guarding every
// division against a zero denominator.
func fillRatios(m *models.PlatformMetrics, orderValueCents int64) {
	if m.Impressions > 0 {
		m.CTR = float64(m.Clicks) / float64(m.Impressions)
	}
	if m.Clicks > 0 {
		m.ConversionRate = float64(m.Conversions) / float64(m.Clicks)
	}
	if m.Conversions > 0 {
		m.CPACents = int64(math.Round(float64(m.SpendCents) / float64(m.Conversions)))
	}
	if m.SpendCents > 0 {
		m.ROI = float64(m.Conversions*orderValueCents) / float64(m.SpendCents)
	}
	m.EngagementRate = m.CTR * 1000
}
