package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusPending    = "pending"
	CampaignStatusAnalyzing  = "analyzing"
	CampaignStatusGenerating = "generating"
	CampaignStatusExecuting  = "executing"
	CampaignStatusCompleted  = "completed"
	CampaignStatusFailed     = "failed"
)

// Valid state transitions: from -> []to. Transitions are monotonic; a run
// never moves backwards and never re-enters a state it has left. Failed is
// reachable from every non-terminal state, including pending, so a run
// that never starts can still be closed out.
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusPending:    {CampaignStatusAnalyzing, CampaignStatusFailed},
	CampaignStatusAnalyzing:  {CampaignStatusGenerating, CampaignStatusFailed},
	CampaignStatusGenerating: {CampaignStatusExecuting, CampaignStatusFailed},
	CampaignStatusExecuting:  {CampaignStatusCompleted, CampaignStatusFailed},
	CampaignStatusCompleted:  {},
	CampaignStatusFailed:     {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further status write is permitted.
func IsTerminalStatus(status string) bool {
	return status == CampaignStatusCompleted || status == CampaignStatusFailed
}

type Campaign struct {
	ID            uuid.UUID          `json:"id"`
	OwnerUserID   uuid.UUID          `json:"owner_user_id"`
	Name          string             `json:"name"`
	Brief         string             `json:"brief"`
	BudgetCents   int64              `json:"budget_cents"`
	Platforms     []string           `json:"platforms"`
	TargetKPIs    map[string]float64 `json:"target_kpis,omitempty"`
	SourceURL     *string            `json:"source_url,omitempty"`
	Status        string             `json:"status"`
	FailureReason *string            `json:"failure_reason,omitempty"`
	WorkflowRunID *uuid.UUID         `json:"workflow_run_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
