// internal/model/user_record.go
package model

import (
    "strings"
    "time"
)

// Profile is the row this service reads from the profile store. Campaign
// tracking lives in the two apprentice_campaign_* columns; they are always
// written together in a single update.
type Profile struct {
    ID                 string        `db:"id" json:"id"`
    DisplayName        string        `db:"display_name" json:"display_name"`
    Role               string        `db:"role" json:"role"`
    AdminRole          *string       `db:"admin_role" json:"admin_role,omitempty"`
    IsSubscribed       bool          `db:"is_subscribed" json:"is_subscribed"`
    HasFreeAccessGrant bool          `db:"has_free_access_grant" json:"has_free_access_grant"`
    CreatedAt          time.Time     `db:"created_at" json:"created_at"`
    LastCampaignSentAt *time.Time    `db:"apprentice_campaign_sent_at" json:"last_campaign_sent_at,omitempty"`
    LastCampaignType   *CampaignType `db:"apprentice_campaign_type" json:"last_campaign_type,omitempty"`
}

// Identity is the slice of the auth store this service cares about.
type Identity struct {
    ID           string     `db:"id" json:"id"`
    Email        string     `db:"email" json:"email"`
    LastSignInAt *time.Time `db:"last_sign_in_at" json:"last_sign_in_at,omitempty"`
}

// UserCampaignRecord is the merged targeting view of one apprentice:
// profile fields joined with the identity store's email and last sign-in.
// An empty Email means the identity store could not resolve one and the
// user is excluded from all targeting.
type UserCampaignRecord struct {
    ID                 string        `json:"id"`
    DisplayName        string        `json:"displayName,omitempty"`
    Email              string        `json:"email"`
    CreatedAt          time.Time     `json:"createdAt"`
    IsSubscribed       bool          `json:"isSubscribed"`
    HasFreeAccessGrant bool          `json:"hasFreeAccessGrant"`
    LastSignInAt       *time.Time    `json:"lastSignInAt,omitempty"`
    LastCampaignSentAt *time.Time    `json:"lastCampaignSentAt,omitempty"`
    LastCampaignType   *CampaignType `json:"lastCampaignType,omitempty"`
}

// FirstName derives a greeting name from the display name, falling back to
// a generic term when no name is on record.
func (u UserCampaignRecord) FirstName() string {
    return FirstNameFrom(u.DisplayName)
}

// FirstNameFrom returns the first whitespace-separated token of name, or
// "there" when name is blank ("Hi there").
func FirstNameFrom(name string) string {
    fields := strings.Fields(name)
    if len(fields) == 0 {
        return "there"
    }
    return fields[0]
}

// MergeUserRecords joins profiles with identities by user id. Profiles with
// no identity row still appear in the result with an empty Email.
func MergeUserRecords(profiles []Profile, identities []Identity) []UserCampaignRecord {
    byID := make(map[string]Identity, len(identities))
    for _, id := range identities {
        byID[id.ID] = id
    }

    records := make([]UserCampaignRecord, 0, len(profiles))
    for _, p := range profiles {
        rec := UserCampaignRecord{
            ID:                 p.ID,
            DisplayName:        p.DisplayName,
            CreatedAt:          p.CreatedAt,
            IsSubscribed:       p.IsSubscribed,
            HasFreeAccessGrant: p.HasFreeAccessGrant,
            LastCampaignSentAt: p.LastCampaignSentAt,
            LastCampaignType:   p.LastCampaignType,
        }
        if id, ok := byID[p.ID]; ok {
            rec.Email = id.Email
            rec.LastSignInAt = id.LastSignInAt
        }
        records = append(records, rec)
    }
    return records
}
