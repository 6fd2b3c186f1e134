package model_test

import (
    "testing"
    "time"

    "github.com/elecmate/campaign-backend/internal/model"
)

func TestFirstNameFrom(t *testing.T) {
    cases := []struct {
        name string
        in   string
        want string
    }{
        {"full name", "Liam Walker", "Liam"},
        {"single name", "Chloe", "Chloe"},
        {"empty", "", "there"},
        {"whitespace only", "   ", "there"},
        {"leading spaces", "  Ryan Hughes", "Ryan"},
    }

    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := model.FirstNameFrom(tc.in); got != tc.want {
                t.Errorf("FirstNameFrom(%q) = %q, want %q", tc.in, got, tc.want)
            }
        })
    }
}

func TestMergeUserRecords(t *testing.T) {
    signIn := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
    profiles := []model.Profile{
        {ID: "u1", DisplayName: "Liam Walker", IsSubscribed: true},
        {ID: "u2", DisplayName: "Chloe Bennett"},
    }
    identities := []model.Identity{
        {ID: "u1", Email: "liam@example.com", LastSignInAt: &signIn},
    }

    records := model.MergeUserRecords(profiles, identities)
    if len(records) != 2 {
        t.Fatalf("expected 2 records, got %d", len(records))
    }

    if records[0].Email != "liam@example.com" {
        t.Errorf("expected joined email, got %q", records[0].Email)
    }
    if records[0].LastSignInAt == nil || !records[0].LastSignInAt.Equal(signIn) {
        t.Errorf("expected joined last sign-in, got %v", records[0].LastSignInAt)
    }

    // Profile without an identity row keeps an empty email, which excludes
    // it from all targeting downstream.
    if records[1].Email != "" {
        t.Errorf("expected empty email for unmatched profile, got %q", records[1].Email)
    }
}

func TestDefaultCampaignTypes(t *testing.T) {
    types := model.DefaultCampaignTypes()
    if len(types) != 4 {
        t.Fatalf("expected 4 campaign types, got %d", len(types))
    }

    winback, ok := types[model.CampaignTrialWinback]
    if !ok {
        t.Fatal("trial_winback missing from configuration")
    }
    if winback.CooldownDays != nil {
        t.Error("trial_winback is one-shot and must have no cooldown")
    }

    spotlight := types[model.CampaignFeatureSpotlight]
    if spotlight.CooldownDays == nil || *spotlight.CooldownDays != 14 {
        t.Errorf("feature_spotlight cooldown = %v, want 14", spotlight.CooldownDays)
    }
    content := types[model.CampaignNewContent]
    if content.CooldownDays == nil || *content.CooldownDays != 7 {
        t.Errorf("new_content cooldown = %v, want 7", content.CooldownDays)
    }
}
