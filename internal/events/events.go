package events

import "context"

// Event types
const (
	EventCampaignStatusChanged = "campaign_status_changed"
	EventCampaignCompleted     = "campaign_completed"
	EventCampaignFailed        = "campaign_failed"
)

// StreamCampaign is the pub/sub channel for campaign lifecycle events.
const StreamCampaign = "events:campaign"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
