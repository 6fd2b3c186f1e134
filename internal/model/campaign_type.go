// internal/model/campaign_type.go
package model

import "time"

// CampaignType identifies one of the four outbound apprentice campaigns.
type CampaignType string

const (
    CampaignFeatureSpotlight CampaignType = "feature_spotlight"
    CampaignNewContent       CampaignType = "new_content"
    CampaignEngagementNudge  CampaignType = "engagement_nudge"
    CampaignTrialWinback     CampaignType = "trial_winback"
)

// TrialWindow is how long a new apprentice account keeps trial access.
const TrialWindow = 7 * 24 * time.Hour

// CampaignTypeDefinition is the static configuration for one campaign type.
// CooldownDays == nil means the campaign is sent at most once ever per user.
type CampaignTypeDefinition struct {
    Key          CampaignType `json:"key"`
    Label        string       `json:"label"`
    CooldownDays *int         `json:"cooldown_days"`
}

// DefaultCampaignTypes builds the campaign configuration table. It is
// constructed once at startup and passed into the services that need it.
func DefaultCampaignTypes() map[CampaignType]CampaignTypeDefinition {
    days := func(n int) *int { return &n }
    return map[CampaignType]CampaignTypeDefinition{
        CampaignFeatureSpotlight: {
            Key:          CampaignFeatureSpotlight,
            Label:        "Feature Spotlight",
            CooldownDays: days(14),
        },
        CampaignNewContent: {
            Key:          CampaignNewContent,
            Label:        "New Content",
            CooldownDays: days(7),
        },
        CampaignEngagementNudge: {
            Key:          CampaignEngagementNudge,
            Label:        "Engagement Nudge",
            CooldownDays: days(14),
        },
        CampaignTrialWinback: {
            Key:          CampaignTrialWinback,
            Label:        "Trial Win-back",
            CooldownDays: nil,
        },
    }
}
