package dto

import "github.com/campaignforge/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// CampaignResponse is the polling payload: the campaign plus, once the run
// completed, its result.
type CampaignResponse struct {
	Campaign *models.Campaign       `json:"campaign"`
	Result   *models.CampaignResult `json:"result,omitempty"`
}
