// internal/events/events.go
package events

import (
    "time"

    "github.com/elecmate/campaign-backend/internal/model"
)

// SendEvent is published after every successful tracked or manual send so
// downstream consumers (analytics, CRM sync) can react. Publishing is best
// effort and never fails the originating request.
type SendEvent struct {
    UserID    string             `json:"user_id,omitempty"`
    Recipient string             `json:"recipient"`
    Campaign  model.CampaignType `json:"campaign"`
    Status    string             `json:"status"`
    SentAt    time.Time          `json:"sent_at"`
}

// Publisher delivers send events to interested consumers.
type Publisher interface {
    PublishSendEvent(event SendEvent) error
}

// NopPublisher discards events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSendEvent(SendEvent) error { return nil }

var _ Publisher = NopPublisher{}
