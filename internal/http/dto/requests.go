package dto

type CreateCampaignRequest struct {
	Name        string             `json:"name"`
	Brief       string             `json:"brief"`
	BudgetCents int64              `json:"budget_cents"`
	Platforms   []string           `json:"platforms"`
	TargetKPIs  map[string]float64 `json:"target_kpis,omitempty"`
	SourceURL   *string            `json:"source_url,omitempty"`
}
