// internal/repository/profile_repository.go
package repository

import (
    "database/sql"
    "time"

    "github.com/elecmate/campaign-backend/internal/model"
)

// ProfileRepositoryInterface defines the profile store methods used by the services
type ProfileRepositoryInterface interface {
    ListApprentices() ([]model.Profile, error)
    GetByID(id string) (*model.Profile, error)
    GetAdminRole(id string) (*string, error)
    UpdateCampaignTracking(id string, campaign model.CampaignType, sentAt time.Time) error
}

// ProfileRepository is the Postgres implementation
type ProfileRepository struct {
    DB *sql.DB
}

const profileColumns = `id, display_name, role, admin_role, is_subscribed, has_free_access_grant,
              created_at, apprentice_campaign_sent_at, apprentice_campaign_type`

func scanProfile(row interface{ Scan(...any) error }) (*model.Profile, error) {
    var p model.Profile
    err := row.Scan(
        &p.ID, &p.DisplayName, &p.Role, &p.AdminRole,
        &p.IsSubscribed, &p.HasFreeAccessGrant,
        &p.CreatedAt, &p.LastCampaignSentAt, &p.LastCampaignType,
    )
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// ListApprentices fetches every apprentice-role profile
func (r *ProfileRepository) ListApprentices() ([]model.Profile, error) {
    query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE role = 'apprentice'
        ORDER BY created_at
    `
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    profiles := []model.Profile{}
    for rows.Next() {
        p, err := scanProfile(rows)
        if err != nil {
            return nil, err
        }
        profiles = append(profiles, *p)
    }
    return profiles, rows.Err()
}

// GetByID fetches a profile by user id, returning nil when not found
func (r *ProfileRepository) GetByID(id string) (*model.Profile, error) {
    query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
    p, err := scanProfile(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return p, nil
}

// GetAdminRole returns the admin_role column for a user; nil means either
// the profile does not exist or the user holds no admin role.
func (r *ProfileRepository) GetAdminRole(id string) (*string, error) {
    var role *string
    err := r.DB.QueryRow(`SELECT admin_role FROM profiles WHERE id = $1`, id).Scan(&role)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return role, nil
}

// UpdateCampaignTracking records the most recent campaign send for a user.
// Both columns are written in one statement so they can never disagree.
func (r *ProfileRepository) UpdateCampaignTracking(id string, campaign model.CampaignType, sentAt time.Time) error {
    query := `
        UPDATE profiles
        SET apprentice_campaign_sent_at = $1, apprentice_campaign_type = $2
        WHERE id = $3
    `
    _, err := r.DB.Exec(query, sentAt, string(campaign), id)
    return err
}

var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)
