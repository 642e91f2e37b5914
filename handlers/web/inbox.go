// Package web serves the server-rendered mailbox pages. The JSON API
// under handlers/api is the real operation surface; these pages are the
// read-only browsing view.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// MailHandler renders folder listings and thread detail pages.
type MailHandler struct {
	svc *mailbox.Service
}

// NewMailHandler creates a new mail page handler
func NewMailHandler(svc *mailbox.Service) *MailHandler {
	return &MailHandler{svc: svc}
}

var sidebarFolders = []models.Folder{
	models.FolderInbox,
	models.FolderStarred,
	models.FolderSent,
	models.FolderDrafts,
	models.FolderSpam,
	models.FolderTrash,
}

func localizerFrom(c *fiber.Ctx) *i18n.Localizer {
	if localizer, ok := c.Locals("localizer").(*i18n.Localizer); ok {
		return localizer
	}
	return utils.Localizer
}

func (h *MailHandler) sidebar(c *fiber.Ctx, counts models.FolderCounts) []models.FolderInfo {
	localizer := localizerFrom(c)
	folders := make([]models.FolderInfo, 0, len(sidebarFolders))
	for _, folder := range sidebarFolders {
		folders = append(folders, models.FolderInfo{
			ID:    folder,
			Name:  utils.T(localizer, "folder_"+string(folder)),
			Count: counts[folder],
		})
	}
	return folders
}

// HandleInbox renders the default inbox view.
// GET / and GET /inbox
func (h *MailHandler) HandleInbox(c *fiber.Ctx) error {
	return h.renderFolder(c, models.FolderInbox)
}

// HandleFolder renders any folder view.
// GET /folder/:name
func (h *MailHandler) HandleFolder(c *fiber.Ctx) error {
	folder := models.Folder(c.Params("name"))
	if !folder.Valid() {
		return utils.NotFoundError("Unknown folder", nil).WithContext("folder", string(folder))
	}
	return h.renderFolder(c, folder)
}

func (h *MailHandler) renderFolder(c *fiber.Ctx, folder models.Folder) error {
	threads, err := h.svc.ListThreads(c.Context(), folder)
	if err != nil {
		return utils.InternalServerError("Failed to list threads", err)
	}
	counts, err := h.svc.FolderCounts(c.Context())
	if err != nil {
		return utils.InternalServerError("Failed to compute folder counts", err)
	}

	return c.Render("inbox", fiber.Map{
		"Title":         "Inbox Threads",
		"CurrentFolder": folder,
		"Folders":       h.sidebar(c, counts),
		"Threads":       threads,
		"Owner":         h.svc.Owner(),
	})
}

// HandleThread renders a single thread with all its messages expanded.
// GET /thread/:id
func (h *MailHandler) HandleThread(c *fiber.Ctx) error {
	thread, err := h.svc.GetThread(c.Context(), c.Params("id"))
	if err != nil {
		return utils.NotFoundError("Thread not found", err)
	}
	counts, err := h.svc.FolderCounts(c.Context())
	if err != nil {
		return utils.InternalServerError("Failed to compute folder counts", err)
	}

	return c.Render("thread", fiber.Map{
		"Title":         thread.Subject,
		"CurrentFolder": thread.Folder,
		"Folders":       h.sidebar(c, counts),
		"Thread":        thread,
		"Owner":         h.svc.Owner(),
	})
}
