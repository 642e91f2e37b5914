package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// FolderHandler serves folder counts and the sidebar folder list.
type FolderHandler struct {
	svc *mailbox.Service
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(svc *mailbox.Service) *FolderHandler {
	return &FolderHandler{svc: svc}
}

// sidebar display order
var sidebarFolders = []models.Folder{
	models.FolderInbox,
	models.FolderStarred,
	models.FolderSent,
	models.FolderDrafts,
	models.FolderSpam,
	models.FolderTrash,
}

// HandleCounts returns the per-folder unread counts.
// GET /api/folders/counts
func (h *FolderHandler) HandleCounts(c *fiber.Ctx) error {
	counts, err := h.svc.FolderCounts(c.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(counts)
}

// HandleFolders returns the sidebar folder list with localized display
// names and current counts.
// GET /api/folders
func (h *FolderHandler) HandleFolders(c *fiber.Ctx) error {
	counts, err := h.svc.FolderCounts(c.Context())
	if err != nil {
		return mapServiceError(err)
	}

	localizer, _ := c.Locals("localizer").(*i18n.Localizer)
	if localizer == nil {
		localizer = utils.Localizer
	}

	folders := make([]models.FolderInfo, 0, len(sidebarFolders))
	for _, folder := range sidebarFolders {
		folders = append(folders, models.FolderInfo{
			ID:    folder,
			Name:  utils.T(localizer, "folder_"+string(folder)),
			Count: counts[folder],
		})
	}
	return c.JSON(folders)
}
