package studio

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("a client with this email already exists")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInvalidSegment    = errors.New("invalid segment")
	ErrNoRecipients      = errors.New("no clients found in the selected segment")
	ErrGenerationOff     = errors.New("content generation is not configured")

	// ErrCampaignIncomplete is returned with a CampaignResult describing who was mailed.
	ErrCampaignIncomplete = errors.New("campaign delivery incomplete")
)

// ValidationError rejects a mutation before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
