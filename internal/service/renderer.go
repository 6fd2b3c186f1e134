// internal/service/renderer.go
package service

import (
    "strings"
    "time"

    appErrors "github.com/elecmate/campaign-backend/internal/errors"
    "github.com/elecmate/campaign-backend/internal/model"
)

// RenderParams carries the optional campaign-specific template inputs.
type RenderParams struct {
    FeatureKey         string `json:"featureKey,omitempty"`
    ContentTitle       string `json:"contentTitle,omitempty"`
    ContentDescription string `json:"contentDescription,omitempty"`
}

// RenderedEmail is the output of the renderer.
type RenderedEmail struct {
    Subject string
    HTML    string
}

// DefaultFeatureKey is the feature spotlighted when no key is supplied.
const DefaultFeatureKey = "cable_calculator"

type featureInfo struct {
    Name  string
    Blurb string
}

var spotlightFeatures = map[string]featureInfo{
    "cable_calculator": {
        Name:  "Cable Sizing Calculator",
        Blurb: "Work out cable sizes to BS 7671 in seconds, with voltage drop and correction factors handled for you.",
    },
    "certificate_generator": {
        Name:  "Certificate Generator",
        Blurb: "Produce EIC and Minor Works certificates on site and email them straight to your customer.",
    },
    "quiz_bank": {
        Name:  "Apprentice Quiz Bank",
        Blurb: "Hundreds of 18th Edition practice questions with worked answers, organised by topic.",
    },
}

const (
    defaultContentTitle       = "Fresh course material"
    defaultContentDescription = "We've added new lessons, worked examples and practice questions to your course library."
)

// RenderEmail maps a campaign type plus recipient details to a subject and
// HTML body. It is pure: same inputs, same output (the footer embeds the
// current calendar year, which is stable within a run).
func RenderEmail(campaign model.CampaignType, firstName string, params RenderParams) (*RenderedEmail, error) {
    if firstName == "" {
        firstName = "there"
    }

    switch campaign {
    case model.CampaignFeatureSpotlight:
        key := params.FeatureKey
        feature, ok := spotlightFeatures[key]
        if !ok {
            feature = spotlightFeatures[DefaultFeatureKey]
        }
        return &RenderedEmail{
            Subject: renderTemplate("Have you tried the {feature_name}?", map[string]string{
                "feature_name": feature.Name,
            }),
            HTML: wrapLayout(renderTemplate(featureSpotlightBody, map[string]string{
                "first_name":   firstName,
                "feature_name": feature.Name,
                "blurb":        feature.Blurb,
            })),
        }, nil

    case model.CampaignNewContent:
        title := params.ContentTitle
        if title == "" {
            title = defaultContentTitle
        }
        description := params.ContentDescription
        if description == "" {
            description = defaultContentDescription
        }
        return &RenderedEmail{
            Subject: renderTemplate("New in Elec-Mate: {title}", map[string]string{
                "title": title,
            }),
            HTML: wrapLayout(renderTemplate(newContentBody, map[string]string{
                "first_name":  firstName,
                "title":       title,
                "description": description,
            })),
        }, nil

    case model.CampaignEngagementNudge:
        return &RenderedEmail{
            Subject: renderTemplate("Your Elec-Mate toolkit is waiting, {first_name}", map[string]string{
                "first_name": firstName,
            }),
            HTML: wrapLayout(renderTemplate(engagementNudgeBody, map[string]string{
                "first_name": firstName,
            })),
        }, nil

    case model.CampaignTrialWinback:
        return &RenderedEmail{
            Subject: "Your Elec-Mate trial has ended - pick up where you left off",
            HTML: wrapLayout(renderTemplate(trialWinbackBody, map[string]string{
                "first_name": firstName,
            })),
        }, nil
    }

    return nil, appErrors.NewInvalidCampaignType(string(campaign))
}

// renderTemplate substitutes {placeholder} tokens in a template string.
func renderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

func wrapLayout(body string) string {
    return renderTemplate(emailLayout, map[string]string{
        "body": body,
        "year": time.Now().Format("2006"),
    })
}
