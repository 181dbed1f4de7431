package workflow

import "github.com/campaignforge/backend/internal/models"

// benchmarkVersion is recorded on every metrics payload so stored results
// stay interpretable when the table changes.
const benchmarkVersion = "2025-08"

// Benchmark holds per-channel cost and response rates used to project
// campaign performance. CPM is dollars per thousand impressions.
type Benchmark struct {
	CPM            float64
	CTR            float64
	ConversionRate float64
}

var channelBenchmarks = map[string]Benchmark{
	models.PlatformLinkedIn:  {CPM: 6.50, CTR: 0.0039, ConversionRate: 0.02},
	models.PlatformEmail:     {CPM: 0.05, CTR: 0.026, ConversionRate: 0.03},
	models.PlatformGoogleAds: {CPM: 10.0, CTR: 0.03, ConversionRate: 0.025},
	models.PlatformFacebook:  {CPM: 8.0, CTR: 0.035, ConversionRate: 0.015},
	models.PlatformInstagram: {CPM: 9.0, CTR: 0.04, ConversionRate: 0.018},
	models.PlatformTwitter:   {CPM: 6.5, CTR: 0.02, ConversionRate: 0.01},
}

var benchmarkDefault = Benchmark{CPM: 10.0, CTR: 0.02, ConversionRate: 0.02}

// BenchmarkFor returns the channel benchmark, falling back to a generic one
// for platforms outside the table.
func BenchmarkFor(platform string) Benchmark {
	if b, ok := channelBenchmarks[platform]; ok {
		return b
	}
	return benchmarkDefault
}
