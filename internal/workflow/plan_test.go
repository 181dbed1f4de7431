package workflow

import (
	"errors"
	"testing"

	"github.com/campaignforge/backend/internal/models"
)

func sumAmounts(allocs []models.BudgetAllocation) int64 {
	var sum int64
	for _, a := range allocs {
		sum += a.AmountCents
	}
	return sum
}

func TestNormalizeAllocationsExact(t *testing.T) {
	allocs := []models.BudgetAllocation{
		{Platform: "linkedin", AmountCents: 600000},
		{Platform: "email", AmountCents: 400000},
	}

	out, err := normalizeAllocations(1000000, allocs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sumAmounts(out) != 1000000 {
		t.Errorf("sum = %d, want exact budget", sumAmounts(out))
	}
	if out[0].Share != 0.6 || out[1].Share != 0.4 {
		t.Errorf("shares = %v, %v", out[0].Share, out[1].Share)
	}
}

func TestNormalizeAllocationsSmallDrift(t *testing.T) {
	// Sums to 100.5% of budget, inside tolerance.
	allocs := []models.BudgetAllocation{
		{Platform: "linkedin", AmountCents: 503000},
		{Platform: "email", AmountCents: 502000},
	}

	out, err := normalizeAllocations(1000000, allocs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sumAmounts(out) != 1000000 {
		t.Errorf("sum = %d, want exact budget after renormalization", sumAmounts(out))
	}
}

func TestNormalizeAllocationsRemainderGoesToLastRow(t *testing.T) {
	// Three equal thirds cannot split 1000000 evenly.
	allocs := []models.BudgetAllocation{
		{Platform: "linkedin", AmountCents: 333334},
		{Platform: "email", AmountCents: 333333},
		{Platform: "facebook", AmountCents: 333333},
	}

	out, err := normalizeAllocations(1000000, allocs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sumAmounts(out) != 1000000 {
		t.Errorf("sum = %d, want exact budget", sumAmounts(out))
	}
}

func TestNormalizeAllocationsBeyondTolerance(t *testing.T) {
	allocs := []models.BudgetAllocation{
		{Platform: "linkedin", AmountCents: 700000},
		{Platform: "email", AmountCents: 400000},
	}

	_, err := normalizeAllocations(1000000, allocs)
	var inv *AllocationInvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected AllocationInvariantError, got %v", err)
	}
	if inv.SumCents != 1100000 || inv.BudgetCents != 1000000 {
		t.Errorf("error payload = %+v", inv)
	}
}

func TestNormalizeAllocationsEmpty(t *testing.T) {
	_, err := normalizeAllocations(1000000, nil)
	var inv *AllocationInvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected AllocationInvariantError, got %v", err)
	}
}

func TestParseAllocations(t *testing.T) {
	objs := []map[string]any{
		{"platform": " LinkedIn ", "amount_cents": float64(600000), "rationale": "b2b reach"},
		{"platform": "email", "amount_cents": float64(400000)},
		{"platform": "", "amount_cents": float64(100)},
		{"platform": "twitter", "amount_cents": float64(-5)},
	}

	allocs := parseAllocations(objs)
	if len(allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocs))
	}
	if allocs[0].Platform != "linkedin" {
		t.Errorf("platform not normalized: %q", allocs[0].Platform)
	}
	if allocs[0].Rationale != "b2b reach" {
		t.Errorf("rationale lost")
	}
}
