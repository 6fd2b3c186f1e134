// internal/mailer/mailer.go
package mailer

import "context"

// Email is one outbound message.
type Email struct {
    From    string
    To      string
    Subject string
    HTML    string
}

// Sender delivers a single email and returns the provider's message id.
type Sender interface {
    Send(ctx context.Context, email Email) (string, error)
}
