package api

import (
	"errors"

	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/utils"
)

// mapServiceError translates mailbox sentinel errors into AppErrors the
// Fiber error handler can render. Unknown errors become 500s.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mailbox.ErrThreadNotFound):
		return utils.NotFoundError("Thread not found", err)
	case mailbox.IsValidation(err):
		return utils.BadRequestError("Invalid request", err)
	case errors.Is(err, mailbox.ErrTransient):
		return utils.ServiceUnavailableError("Mail service temporarily unavailable", err)
	default:
		return utils.InternalServerError("Operation failed", err)
	}
}
