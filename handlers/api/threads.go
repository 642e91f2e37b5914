package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// ThreadHandler exposes the thread operations of the mailbox service.
type ThreadHandler struct {
	svc *mailbox.Service
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(svc *mailbox.Service) *ThreadHandler {
	return &ThreadHandler{svc: svc}
}

// HandleList returns the threads of a folder, newest activity first.
// GET /api/threads?folder=inbox
func (h *ThreadHandler) HandleList(c *fiber.Ctx) error {
	folder := models.Folder(c.Query("folder", string(models.FolderInbox)))
	if !folder.Valid() {
		return utils.BadRequestError("Unknown folder", nil).WithContext("folder", string(folder))
	}

	threads, err := h.svc.ListThreads(c.Context(), folder)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{
		"folder":  folder,
		"threads": threads,
	})
}

// HandleSearch matches threads against a query string.
// GET /api/threads/search?q=...
func (h *ThreadHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	threads, err := h.svc.SearchThreads(c.Context(), query)
	if err != nil {
		return mapServiceError(err)
	}
	if threads == nil {
		threads = []*models.EmailThread{}
	}
	return c.JSON(fiber.Map{
		"query":   query,
		"threads": threads,
	})
}

// HandleGet returns a single thread with full messages.
// GET /api/threads/:id
func (h *ThreadHandler) HandleGet(c *fiber.Ctx) error {
	thread, err := h.svc.GetThread(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(thread)
}

// HandleMarkRead marks every message of a thread as read.
// PATCH /api/threads/:id/read
func (h *ThreadHandler) HandleMarkRead(c *fiber.Ctx) error {
	thread, err := h.svc.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(thread)
}

// HandleToggleStar flips a thread's starred flag.
// PATCH /api/threads/:id/star
func (h *ThreadHandler) HandleToggleStar(c *fiber.Ctx) error {
	thread, err := h.svc.ToggleStar(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(thread)
}

// MoveRequest is the payload for moving a thread.
type MoveRequest struct {
	Folder models.Folder `json:"folder"`
}

// HandleMove reassigns a thread's folder.
// PATCH /api/threads/:id/move
func (h *ThreadHandler) HandleMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}
	thread, err := h.svc.MoveToFolder(c.Context(), c.Params("id"), req.Folder)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(thread)
}

// HandleDelete permanently removes a thread.
// DELETE /api/threads/:id
func (h *ThreadHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.svc.DeleteThread(c.Context(), c.Params("id")); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
