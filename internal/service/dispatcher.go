// internal/service/dispatcher.go
package service

import (
    "context"
    "fmt"
    "log"
    "time"

    "golang.org/x/time/rate"

    appErrors "github.com/elecmate/campaign-backend/internal/errors"
    "github.com/elecmate/campaign-backend/internal/events"
    "github.com/elecmate/campaign-backend/internal/mailer"
    "github.com/elecmate/campaign-backend/internal/model"
)

// Pacer spaces out consecutive external send calls. Wait blocks until the
// next send is allowed to go out.
type Pacer interface {
    Wait(ctx context.Context) error
}

// NewSendPacer returns a token-bucket Pacer allowing one send per minDelay.
// The bucket starts full, so the first send of a batch is never delayed and
// no delay trails the last one.
func NewSendPacer(minDelay time.Duration) Pacer {
    return &limiterPacer{limiter: rate.NewLimiter(rate.Every(minDelay), 1)}
}

type limiterPacer struct {
    limiter *rate.Limiter
}

func (p *limiterPacer) Wait(ctx context.Context) error {
    return p.limiter.Wait(ctx)
}

// BulkSendError records one recipient's failure inside a bulk batch.
// User is the email when it resolved, otherwise the user id.
type BulkSendError struct {
    User  string `json:"user"`
    Error string `json:"error"`
}

// BulkSendResult reports partial success of a bulk batch. A user whose
// tracking or log write failed after a successful external send appears in
// both Sent and Failed: the email went out and cannot be recalled.
type BulkSendResult struct {
    Sent    int             `json:"sent"`
    Skipped int             `json:"skipped"`
    Failed  int             `json:"failed"`
    Errors  []BulkSendError `json:"errors"`
}

// SendSingle sends campaign to one tracked user. Any failure aborts the
// operation and is surfaced to the caller; nothing is retried.
func (s *CampaignService) SendSingle(ctx context.Context, campaign model.CampaignType, userID string, params RenderParams) (string, error) {
    if _, err := s.definition(campaign); err != nil {
        return "", err
    }

    profile, err := s.Profiles.GetByID(userID)
    if err != nil {
        return "", err
    }
    if profile == nil {
        return "", appErrors.NewUserNotFound(userID)
    }

    email, err := s.resolveEmail(userID)
    if err != nil {
        return "", err
    }

    if err := s.deliverTracked(ctx, campaign, profile, email, params); err != nil {
        return "", err
    }
    return email, nil
}

// SendBulk sends campaign to each user id in order, sequentially. Per-user
// failures are collected rather than aborting the batch; the pacer enforces
// the provider's 2 req/sec limit between consecutive external calls.
func (s *CampaignService) SendBulk(ctx context.Context, campaign model.CampaignType, userIDs []string, params RenderParams) (*BulkSendResult, error) {
    if _, err := s.definition(campaign); err != nil {
        return nil, err
    }

    s.Metrics.RecordBulkSize(len(userIDs))

    result := &BulkSendResult{Errors: []BulkSendError{}}
    for _, userID := range userIDs {
        profile, err := s.Profiles.GetByID(userID)
        if err != nil {
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: userID, Error: err.Error()})
            continue
        }
        if profile == nil {
            result.Skipped++
            result.Errors = append(result.Errors, BulkSendError{User: userID, Error: "user not found"})
            continue
        }

        email, err := s.resolveEmail(userID)
        if err != nil {
            log.Println("⚠️ email unresolvable for user:", userID)
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: userID, Error: err.Error()})
            s.Metrics.RecordSend(string(campaign), "failed")
            continue
        }

        rendered, err := RenderEmail(campaign, model.FirstNameFrom(profile.DisplayName), params)
        if err != nil {
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: email, Error: err.Error()})
            continue
        }

        if err := s.Pacer.Wait(ctx); err != nil {
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: email, Error: err.Error()})
            continue
        }

        if _, err := s.Sender.Send(ctx, mailer.Email{From: s.From, To: email, Subject: rendered.Subject, HTML: rendered.HTML}); err != nil {
            log.Println("⚠️ send failed for", email, ":", err)
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: email, Error: err.Error()})
            s.Metrics.RecordSend(string(campaign), "failed")
            continue
        }

        // The email is out the door; later bookkeeping failures cannot undo it.
        result.Sent++
        s.Metrics.RecordSend(string(campaign), "sent")

        if err := s.recordTrackedSend(campaign, profile.ID, email, rendered.Subject); err != nil {
            log.Println("⚠️ post-send bookkeeping failed for", email, ":", err)
            result.Failed++
            result.Errors = append(result.Errors, BulkSendError{User: email, Error: err.Error()})
        }
    }

    return result, nil
}

// SendTest renders and sends to an arbitrary address for template QA. No
// tracking is updated and no log entry is written; the subject carries a
// [TEST] marker.
func (s *CampaignService) SendTest(ctx context.Context, campaign model.CampaignType, testEmail string, params RenderParams) (string, error) {
    if _, err := s.definition(campaign); err != nil {
        return "", err
    }

    rendered, err := RenderEmail(campaign, "there", params)
    if err != nil {
        return "", err
    }
    rendered.Subject = "[TEST] " + rendered.Subject

    if _, err := s.Sender.Send(ctx, mailer.Email{From: s.From, To: testEmail, Subject: rendered.Subject, HTML: rendered.HTML}); err != nil {
        return "", appErrors.NewSendFailed(testEmail, err)
    }

    s.Metrics.RecordSend(string(campaign), "test")
    return testEmail, nil
}

// SendManual sends to a one-off recipient outside the tracked population.
// The send is logged with the triggering admin and the name override, but no
// user tracking fields are touched (there may be no user record at all).
func (s *CampaignService) SendManual(ctx context.Context, campaign model.CampaignType, manualEmail, recipientName, adminID string, params RenderParams) (string, error) {
    if _, err := s.definition(campaign); err != nil {
        return "", err
    }

    rendered, err := RenderEmail(campaign, model.FirstNameFrom(recipientName), params)
    if err != nil {
        return "", err
    }

    if _, err := s.Sender.Send(ctx, mailer.Email{From: s.From, To: manualEmail, Subject: rendered.Subject, HTML: rendered.HTML}); err != nil {
        s.Metrics.RecordSend(string(campaign), "failed")
        return "", appErrors.NewSendFailed(manualEmail, err)
    }

    entry := &model.SendLogEntry{
        Recipient:   manualEmail,
        Subject:     rendered.Subject,
        Template:    campaign,
        Status:      "sent_manual",
        TriggeredBy: &adminID,
        CreatedAt:   s.now(),
    }
    if recipientName != "" {
        entry.RecipientName = &recipientName
    }
    if err := s.SendLog.Insert(entry); err != nil {
        return "", fmt.Errorf("failed to log manual send: %w", err)
    }

    s.Metrics.RecordSend(string(campaign), "sent")
    s.publishEvent(events.SendEvent{Recipient: manualEmail, Campaign: campaign, Status: "sent_manual", SentAt: entry.CreatedAt})
    return manualEmail, nil
}

// resolveEmail maps a user id to its email via the identity store.
func (s *CampaignService) resolveEmail(userID string) (string, error) {
    ident, err := s.Identities.GetByID(userID)
    if err != nil {
        return "", err
    }
    if ident == nil || ident.Email == "" {
        return "", appErrors.NewEmailUnresolvable(userID)
    }
    return ident.Email, nil
}

// deliverTracked runs the single-user side-effect triple in its fixed order:
// external send, then tracking update, then log append.
func (s *CampaignService) deliverTracked(ctx context.Context, campaign model.CampaignType, profile *model.Profile, email string, params RenderParams) error {
    rendered, err := RenderEmail(campaign, model.FirstNameFrom(profile.DisplayName), params)
    if err != nil {
        return err
    }

    if _, err := s.Sender.Send(ctx, mailer.Email{From: s.From, To: email, Subject: rendered.Subject, HTML: rendered.HTML}); err != nil {
        s.Metrics.RecordSend(string(campaign), "failed")
        return appErrors.NewSendFailed(email, err)
    }

    s.Metrics.RecordSend(string(campaign), "sent")
    return s.recordTrackedSend(campaign, profile.ID, email, rendered.Subject)
}

// recordTrackedSend persists the tracking pair, appends the log entry and
// publishes the send event for one delivered email.
func (s *CampaignService) recordTrackedSend(campaign model.CampaignType, userID, email, subject string) error {
    sentAt := s.now()

    if err := s.Profiles.UpdateCampaignTracking(userID, campaign, sentAt); err != nil {
        return fmt.Errorf("failed to update campaign tracking: %w", err)
    }

    entry := &model.SendLogEntry{
        UserID:    &userID,
        Recipient: email,
        Subject:   subject,
        Template:  campaign,
        Status:    "sent",
        CreatedAt: sentAt,
    }
    if err := s.SendLog.Insert(entry); err != nil {
        return fmt.Errorf("failed to log send: %w", err)
    }

    s.publishEvent(events.SendEvent{UserID: userID, Recipient: email, Campaign: campaign, Status: "sent", SentAt: sentAt})
    return nil
}

func (s *CampaignService) publishEvent(event events.SendEvent) {
    if err := s.Events.PublishSendEvent(event); err != nil {
        log.Println("⚠️ failed to publish send event:", err)
    }
}
