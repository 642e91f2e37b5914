package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// ComposeHandler handles sending new mails and replies.
type ComposeHandler struct {
	svc *mailbox.Service
}

// NewComposeHandler creates a new compose handler
func NewComposeHandler(svc *mailbox.Service) *ComposeHandler {
	return &ComposeHandler{svc: svc}
}

// HandleCompose sends a mail. With reply_to_thread_id set the message is
// appended to that thread; otherwise a new thread lands in sent.
// POST /api/compose
func (h *ComposeHandler) HandleCompose(c *fiber.Ctx) error {
	var req models.ComposeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	thread, err := h.svc.Send(c.Context(), req)
	if err != nil {
		return mapServiceError(err)
	}

	utils.Log.Info("compose accepted: thread=%s reply=%t", thread.ID, req.ReplyToThreadID != "")
	return c.Status(fiber.StatusCreated).JSON(thread)
}
