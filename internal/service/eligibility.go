// internal/service/eligibility.go
package service

import (
    "time"

    appErrors "github.com/elecmate/campaign-backend/internal/errors"
    "github.com/elecmate/campaign-backend/internal/model"
)

const (
    day            = 24 * time.Hour
    inactivityGate = 14 * day
)

// ComputeEligible returns the subset of users that should receive campaign
// right now. It is a pure function of its inputs; callers pass the apprentice
// population and the evaluation time.
//
// The cooldown is checked against the user's global last-sent timestamp, not
// the last send of this particular campaign type: a user who got new_content
// yesterday is also blocked from feature_spotlight today. That coupling is
// deliberate product behavior (a don't-over-email throttle) and must not be
// narrowed to per-type cooldowns.
func ComputeEligible(types map[model.CampaignType]model.CampaignTypeDefinition, campaign model.CampaignType, users []model.UserCampaignRecord, now time.Time) ([]model.UserCampaignRecord, error) {
    def, ok := types[campaign]
    if !ok {
        return nil, appErrors.NewInvalidCampaignType(string(campaign))
    }

    eligible := []model.UserCampaignRecord{}
    for _, u := range users {
        if u.Email == "" {
            continue
        }

        entitled := u.IsSubscribed || u.HasFreeAccessGrant

        if campaign == model.CampaignTrialWinback {
            if entitled {
                continue
            }
            // Strictly one-shot: a prior winback send disqualifies forever.
            if u.LastCampaignSentAt != nil && u.LastCampaignType != nil && *u.LastCampaignType == model.CampaignTrialWinback {
                continue
            }
            if now.Before(u.CreatedAt.Add(model.TrialWindow)) {
                continue
            }
            eligible = append(eligible, u)
            continue
        }

        if !entitled {
            continue
        }

        if campaign == model.CampaignEngagementNudge {
            // A user who never signed in counts as maximally inactive.
            if u.LastSignInAt != nil && now.Sub(*u.LastSignInAt) < inactivityGate {
                continue
            }
        }

        if def.CooldownDays != nil && u.LastCampaignSentAt != nil {
            cooldown := time.Duration(*def.CooldownDays) * day
            if now.Sub(*u.LastCampaignSentAt) < cooldown {
                continue
            }
        }

        eligible = append(eligible, u)
    }

    return eligible, nil
}
