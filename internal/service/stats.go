// internal/service/stats.go
package service

import (
    "fmt"
    "time"

    "github.com/elecmate/campaign-backend/internal/model"
)

// CampaignStats is the reporting summary for one campaign type.
type CampaignStats struct {
    TotalEligible  int    `json:"totalEligible"`
    OffersSent     int    `json:"offersSent"`
    Conversions    int    `json:"conversions"`
    ConversionRate string `json:"conversionRate"`
}

// ComputeStats recomputes the reporting numbers for a campaign type, reusing
// the eligibility predicate for the totalEligible count.
//
// offersSent counts only users whose most recent send was this campaign type.
// The tracking fields hold a single slot, so a later send of a different type
// supersedes the earlier one and the user drops out of this count. Full send
// history lives in the campaign_sends log.
func ComputeStats(types map[model.CampaignType]model.CampaignTypeDefinition, campaign model.CampaignType, users []model.UserCampaignRecord, now time.Time) (*CampaignStats, error) {
    eligible, err := ComputeEligible(types, campaign, users, now)
    if err != nil {
        return nil, err
    }

    stats := &CampaignStats{
        TotalEligible:  len(eligible),
        ConversionRate: "0",
    }

    for _, u := range users {
        if u.LastCampaignSentAt == nil || u.LastCampaignType == nil || *u.LastCampaignType != campaign {
            continue
        }
        stats.OffersSent++

        // Conversion is only meaningful for the win-back flow.
        if campaign == model.CampaignTrialWinback && u.IsSubscribed {
            stats.Conversions++
        }
    }

    if stats.OffersSent > 0 {
        rate := float64(stats.Conversions) / float64(stats.OffersSent) * 100
        stats.ConversionRate = fmt.Sprintf("%.1f", rate)
    }

    return stats, nil
}
