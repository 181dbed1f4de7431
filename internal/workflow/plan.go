package workflow

import (
	"fmt"
	"math"
	"strings"

	"github.com/campaignforge/backend/internal/gen"
	"github.com/campaignforge/backend/internal/models"
)

// AllocationInvariantError means the model-proposed budget split drifted too
// far from the campaign budget to repair.
type AllocationInvariantError struct {
	BudgetCents int64
	SumCents    int64
}

func (e *AllocationInvariantError) Error() string {
	return fmt.Sprintf("allocations sum to %d cents against budget %d cents", e.SumCents, e.BudgetCents)
}

// allocationTolerance is the drift, in share of budget, within which a
// proposed split is silently renormalized.
const allocationTolerance = 0.01

// normalizeAllocations repairs a model-proposed split so amounts sum exactly
// to the budget. Shares within one percentage point of 1.0 are rescaled and
// rounded, with the residual cents folded into the last row. Larger drift is
// an invariant violation.
func normalizeAllocations(budgetCents int64, allocs []models.BudgetAllocation) ([]models.BudgetAllocation, error) {
	if len(allocs) == 0 {
		return nil, &AllocationInvariantError{BudgetCents: budgetCents, SumCents: 0}
	}

	var sum int64
	for _, a := range allocs {
		sum += a.AmountCents
	}

	drift := math.Abs(float64(sum-budgetCents)) / float64(budgetCents)
	if drift > allocationTolerance {
		return nil, &AllocationInvariantError{BudgetCents: budgetCents, SumCents: sum}
	}

	out := make([]models.BudgetAllocation, len(allocs))
	var assigned int64
	for i, a := range allocs {
		out[i] = a
		if i == len(allocs)-1 {
			out[i].AmountCents = budgetCents - assigned
		} else {
			scaled := int64(math.Round(float64(a.AmountCents) / float64(sum) * float64(budgetCents)))
			out[i].AmountCents = scaled
			assigned += scaled
		}
		out[i].Share = float64(out[i].AmountCents) / float64(budgetCents)
	}

	return out, nil
}

// parseAllocations converts sanitized allocation objects into typed rows.
// Platform names are lowercased; unknown platforms are kept as-is and later
// priced with the default benchmark.
func parseAllocations(objs []map[string]any) []models.BudgetAllocation {
	allocs := make([]models.BudgetAllocation, 0, len(objs))
	for _, obj := range objs {
		platform := strings.ToLower(strings.TrimSpace(gen.AsString(obj, "platform")))
		amount := int64(math.Round(gen.AsFloat(obj, "amount_cents")))
		if platform == "" || amount <= 0 {
			continue
		}
		allocs = append(allocs, models.BudgetAllocation{
			Platform:    platform,
			AmountCents: amount,
			Rationale:   gen.AsString(obj, "rationale"),
		})
	}
	return allocs
}
