// internal/service/campaign_service.go
package service

import (
    "time"

    appErrors "github.com/elecmate/campaign-backend/internal/errors"
    "github.com/elecmate/campaign-backend/internal/events"
    "github.com/elecmate/campaign-backend/internal/mailer"
    "github.com/elecmate/campaign-backend/internal/metrics"
    "github.com/elecmate/campaign-backend/internal/model"
    "github.com/elecmate/campaign-backend/internal/repository"
)

// CampaignService runs apprentice campaign targeting, reporting and dispatch.
// Types is the immutable campaign configuration table built at startup.
type CampaignService struct {
    Types      map[model.CampaignType]model.CampaignTypeDefinition
    Profiles   repository.ProfileRepositoryInterface
    Identities repository.IdentityRepositoryInterface
    SendLog    repository.SendLogRepositoryInterface
    Sender     mailer.Sender
    Events     events.Publisher
    Metrics    metrics.Recorder
    Pacer      Pacer
    From       string
    Now        func() time.Time
}

func (s *CampaignService) now() time.Time {
    if s.Now != nil {
        return s.Now()
    }
    return time.Now()
}

func (s *CampaignService) definition(campaign model.CampaignType) (model.CampaignTypeDefinition, error) {
    def, ok := s.Types[campaign]
    if !ok {
        return model.CampaignTypeDefinition{}, appErrors.NewInvalidCampaignType(string(campaign))
    }
    return def, nil
}

// LoadApprentices assembles the targeting view: every apprentice-role
// profile joined with the identity store's email and last sign-in.
func (s *CampaignService) LoadApprentices() ([]model.UserCampaignRecord, error) {
    profiles, err := s.Profiles.ListApprentices()
    if err != nil {
        return nil, err
    }

    identities, err := s.Identities.ListAll()
    if err != nil {
        return nil, err
    }

    return model.MergeUserRecords(profiles, identities), nil
}

// EligibleUsers returns the users who should receive campaign right now.
func (s *CampaignService) EligibleUsers(campaign model.CampaignType) ([]model.UserCampaignRecord, error) {
    users, err := s.LoadApprentices()
    if err != nil {
        return nil, err
    }
    return ComputeEligible(s.Types, campaign, users, s.now())
}

// Stats recomputes the reporting summary for campaign.
func (s *CampaignService) Stats(campaign model.CampaignType) (*CampaignStats, error) {
    users, err := s.LoadApprentices()
    if err != nil {
        return nil, err
    }
    return ComputeStats(s.Types, campaign, users, s.now())
}

// SentHistory returns the newest send log entries for campaign.
func (s *CampaignService) SentHistory(campaign model.CampaignType, limit int) ([]model.SendLogEntry, error) {
    if _, err := s.definition(campaign); err != nil {
        return nil, err
    }
    if limit < 1 {
        limit = 50
    }
    return s.SendLog.ListRecent(campaign, limit)
}
