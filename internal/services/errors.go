package services

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to API callers. NotFound is gorm.ErrRecordNotFound
// passed through from the repositories; everything else is owned here.
var (
	// ErrForbidden means the resource exists but belongs to another company
	ErrForbidden = errors.New("resource belongs to another company")
	// ErrNoOriginNumber means the agent has no usable outbound number;
	// one must be provisioned before dialing or texting
	ErrNoOriginNumber = errors.New("agent has no outbound number provisioned")
	// ErrContactUnreachable means the contact has no phone number on file
	ErrContactUnreachable = errors.New("contact has no phone number on file")
)

// SentButNotLoggedError means the provider accepted the message or call
// but the interaction write failed. The real-world side effect already
// happened; callers must not treat this as "nothing happened" and
// resubmit.
type SentButNotLoggedError struct {
	InteractionType string // sms or call
	ProviderID      string // provider message or call-control id
	Err             error  // the log-write failure
}

func (e *SentButNotLoggedError) Error() string {
	return fmt.Sprintf("%s sent (provider id %s) but interaction log write failed: %v", e.InteractionType, e.ProviderID, e.Err)
}

func (e *SentButNotLoggedError) Unwrap() error {
	return e.Err
}
