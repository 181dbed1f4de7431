package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogEntry struct {
	ID         int64     `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
