package mailbox

import (
	"errors"
	"fmt"

	"github.com/qwertyczee/inbox-threads/storage"
)

// Sentinel errors for the mailbox package. Use errors.Is() to check.
//
// ErrThreadNotFound and ErrInvalidFolder wrap the corresponding storage
// errors, so errors.Is matches at either level.
var (
	// ErrThreadNotFound is returned when an operation references a thread
	// ID that does not exist.
	ErrThreadNotFound = fmt.Errorf("mailbox: %w", storage.ErrThreadNotFound)

	// ErrInvalidFolder is returned when a thread is moved to or listed
	// from a folder name outside the fixed set.
	ErrInvalidFolder = fmt.Errorf("mailbox: %w", storage.ErrInvalidFolder)

	// ErrEmptyRecipient is returned when a compose request has no recipient.
	ErrEmptyRecipient = errors.New("mailbox: empty recipient")

	// ErrEmptySubject is returned when a compose request has no subject.
	ErrEmptySubject = errors.New("mailbox: empty subject")

	// ErrEmptyBody is returned when a compose request has no body.
	ErrEmptyBody = errors.New("mailbox: empty body")

	// ErrTransient stands in for a failed network round-trip. The mock
	// transport never raises it on its own; the fault injector does.
	ErrTransient = errors.New("mailbox: transient failure")
)

// IsValidation reports whether the error is a compose validation failure.
// Validation failures are rejected before the store is touched.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyRecipient) ||
		errors.Is(err, ErrEmptySubject) ||
		errors.Is(err, ErrEmptyBody) ||
		errors.Is(err, ErrInvalidFolder)
}

// IsRetryable reports whether an error may succeed on retry. NotFound and
// validation failures are deterministic; only transient transport errors
// are worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrThreadNotFound) || IsValidation(err) {
		return false
	}
	return errors.Is(err, ErrTransient)
}
