// internal/repository/send_log_repository.go
package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/elecmate/campaign-backend/internal/model"
)

// SendLogRepositoryInterface defines the append-only send log methods
type SendLogRepositoryInterface interface {
    Insert(entry *model.SendLogEntry) error
    ListRecent(campaign model.CampaignType, limit int) ([]model.SendLogEntry, error)
}

// SendLogRepository is the Postgres implementation
type SendLogRepository struct {
    DB *sql.DB
}

// Insert appends one send record, assigning it an id and timestamp
func (r *SendLogRepository) Insert(entry *model.SendLogEntry) error {
    if entry.ID == "" {
        entry.ID = uuid.NewString()
    }
    if entry.CreatedAt.IsZero() {
        entry.CreatedAt = time.Now()
    }

    query := `
        INSERT INTO campaign_sends
        (id, user_id, recipient, subject, template, status, triggered_by, recipient_name, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
    _, err := r.DB.Exec(
        query,
        entry.ID,
        entry.UserID,
        entry.Recipient,
        entry.Subject,
        string(entry.Template),
        entry.Status,
        entry.TriggeredBy,
        entry.RecipientName,
        entry.CreatedAt,
    )
    return err
}

// ListRecent returns the newest entries for a campaign type, newest first
func (r *SendLogRepository) ListRecent(campaign model.CampaignType, limit int) ([]model.SendLogEntry, error) {
    query := `
        SELECT id, user_id, recipient, subject, template, status, triggered_by, recipient_name, created_at
        FROM campaign_sends
        WHERE template = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
    rows, err := r.DB.Query(query, string(campaign), limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    entries := []model.SendLogEntry{}
    for rows.Next() {
        var e model.SendLogEntry
        if err := rows.Scan(
            &e.ID, &e.UserID, &e.Recipient, &e.Subject, &e.Template,
            &e.Status, &e.TriggeredBy, &e.RecipientName, &e.CreatedAt,
        ); err != nil {
            return nil, err
        }
        entries = append(entries, e)
    }
    return entries, rows.Err()
}

var _ SendLogRepositoryInterface = (*SendLogRepository)(nil)
