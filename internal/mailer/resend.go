// internal/mailer/resend.go
package mailer

import (
    "context"
    "fmt"

    "github.com/resend/resend-go/v2"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
    client *resend.Client
    from   string
}

// NewResendSender creates a sender with the given API key and default
// from address.
func NewResendSender(apiKey, from string) *ResendSender {
    return &ResendSender{
        client: resend.NewClient(apiKey),
        from:   from,
    }
}

// Send delivers one email and returns the Resend message id.
func (s *ResendSender) Send(ctx context.Context, email Email) (string, error) {
    from := email.From
    if from == "" {
        from = s.from
    }

    params := &resend.SendEmailRequest{
        From:    from,
        To:      []string{email.To},
        Subject: email.Subject,
        Html:    email.HTML,
    }

    sent, err := s.client.Emails.SendWithContext(ctx, params)
    if err != nil {
        return "", fmt.Errorf("resend send failed: %w", err)
    }
    return sent.Id, nil
}

var _ Sender = (*ResendSender)(nil)
