// internal/model/send_log.go
package model

import "time"

// SendLogEntry is one append-only record of a campaign email send.
// UserID is nil for manual sends with no corresponding user record.
type SendLogEntry struct {
    ID            string       `db:"id" json:"id"`
    UserID        *string      `db:"user_id" json:"userId,omitempty"`
    Recipient     string       `db:"recipient" json:"recipient"`
    Subject       string       `db:"subject" json:"subject"`
    Template      CampaignType `db:"template" json:"template"`
    Status        string       `db:"status" json:"status"`
    TriggeredBy   *string      `db:"triggered_by" json:"triggeredBy,omitempty"`
    RecipientName *string      `db:"recipient_name" json:"recipientName,omitempty"`
    CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
}
