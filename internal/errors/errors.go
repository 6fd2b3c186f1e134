// internal/errors/errors.go
package appErrors

import "fmt"

// ErrInvalidCampaignType is a sentinel error for unknown campaign keys
type ErrInvalidCampaignType struct {
    Key string
}

func (e *ErrInvalidCampaignType) Error() string {
    return fmt.Sprintf("unknown campaign type: %s", e.Key)
}

// Helper constructor
func NewInvalidCampaignType(key string) error {
    return &ErrInvalidCampaignType{Key: key}
}

// ErrUserNotFound signals a profile lookup miss
type ErrUserNotFound struct {
    UserID string
}

func (e *ErrUserNotFound) Error() string {
    return fmt.Sprintf("user %s not found", e.UserID)
}

func NewUserNotFound(id string) error {
    return &ErrUserNotFound{UserID: id}
}

// ErrEmailUnresolvable signals that the identity store has no email for a user
type ErrEmailUnresolvable struct {
    UserID string
}

func (e *ErrEmailUnresolvable) Error() string {
    return fmt.Sprintf("no email on record for user %s", e.UserID)
}

func NewEmailUnresolvable(id string) error {
    return &ErrEmailUnresolvable{UserID: id}
}

// ErrSendFailed wraps a failure reported by the email provider
type ErrSendFailed struct {
    Recipient string
    Err       error
}

func (e *ErrSendFailed) Error() string {
    return fmt.Sprintf("send to %s failed: %v", e.Recipient, e.Err)
}

func (e *ErrSendFailed) Unwrap() error { return e.Err }

func NewSendFailed(recipient string, err error) error {
    return &ErrSendFailed{Recipient: recipient, Err: err}
}

// ErrUnauthorized signals a missing/invalid credential or a non-admin caller
type ErrUnauthorized struct {
    Reason string
}

func (e *ErrUnauthorized) Error() string {
    return fmt.Sprintf("unauthorized: %s", e.Reason)
}

func NewUnauthorized(reason string) error {
    return &ErrUnauthorized{Reason: reason}
}
