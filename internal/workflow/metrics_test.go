package workflow

import (
	"reflect"
	"testing"

	"github.com/campaignforge/backend/internal/models"
)

const testOrderValueCents = 10000

func TestComputeMetricsPinnedScenario(t *testing.T) {
	// $10,000 split 60/40 between linkedin and email.
	allocs := []models.BudgetAllocation{
		{Platform: models.PlatformLinkedIn, AmountCents: 600000},
		{Platform: models.PlatformEmail, AmountCents: 400000},
	}

	m := ComputeMetrics(allocs, testOrderValueCents)

	if len(m.PerPlatform) != 2 {
		t.Fatalf("expected 2 platform rows, got %d", len(m.PerPlatform))
	}

	li := m.PerPlatform[0]
	if li.Impressions != 923077 {
		t.Errorf("linkedin impressions = %d, want 923077", li.Impressions)
	}
	if li.Clicks != 3600 {
		t.Errorf("linkedin clicks = %d, want 3600", li.Clicks)
	}

	em := m.PerPlatform[1]
	if em.Impressions != 80000000 {
		t.Errorf("email impressions = %d, want 80000000", em.Impressions)
	}
	if em.Clicks != 2080000 {
		t.Errorf("email clicks = %d, want 2080000", em.Clicks)
	}

	if m.Totals.SpendCents != 1000000 {
		t.Errorf("total spend = %d, want 1000000", m.Totals.SpendCents)
	}
	if m.Totals.Impressions != li.Impressions+em.Impressions {
		t.Errorf("total impressions do not add up")
	}
	if m.BenchmarkVersion == "" {
		t.Errorf("benchmark version not set")
	}
}

func TestComputeMetricsDeterministic(t *testing.T) {
	allocs := []models.BudgetAllocation{
		{Platform: models.PlatformGoogleAds, AmountCents: 250000},
		{Platform: models.PlatformInstagram, AmountCents: 750000},
	}

	a := ComputeMetrics(allocs, testOrderValueCents)
	b := ComputeMetrics(allocs, testOrderValueCents)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical allocations produced different metrics")
	}
}

func TestComputeMetricsZeroGuards(t *testing.T) {
	// One cent on linkedin rounds everything below impressions to zero.
	allocs := []models.BudgetAllocation{
		{Platform: models.PlatformLinkedIn, AmountCents: 1},
	}

	m := ComputeMetrics(allocs, testOrderValueCents)
	row := m.PerPlatform[0]
	if row.Clicks != 0 || row.Conversions != 0 {
		t.Fatalf("expected zero clicks and conversions, got %+v", row)
	}
	if row.ConversionRate != 0 || row.CPACents != 0 {
		t.Errorf("zero-denominator ratios must be zero, got %+v", row)
	}
}

func TestComputeMetricsUnknownPlatformUsesDefault(t *testing.T) {
	allocs := []models.BudgetAllocation{
		{Platform: "tiktok", AmountCents: 100000},
	}

	m := ComputeMetrics(allocs, testOrderValueCents)
	// $1000 at default CPM 10.0 and CTR 0.02.
	if m.PerPlatform[0].Impressions != 100000 {
		t.Errorf("impressions = %d, want 100000", m.PerPlatform[0].Impressions)
	}
	if m.PerPlatform[0].Clicks != 2000 {
		t.Errorf("clicks = %d, want 2000", m.PerPlatform[0].Clicks)
	}
}

func TestComputeMetricsROI(t *testing.T) {
	// $100 on email: 2,000,000 impressions, 52,000 clicks, 1,560 conversions.
	allocs := []models.BudgetAllocation{
		{Platform: models.PlatformEmail, AmountCents: 10000},
	}

	m := ComputeMetrics(allocs, testOrderValueCents)
	row := m.PerPlatform[0]
	if row.Conversions != 1560 {
		t.Fatalf("conversions = %d, want 1560", row.Conversions)
	}
	wantROI := float64(1560*testOrderValueCents) / 10000
	if row.ROI != wantROI {
		t.Errorf("roi = %v, want %v", row.ROI, wantROI)
	}
}
