package api

import (
	"github.com/qwertyczee/inbox-threads/utils"

	"github.com/gofiber/fiber/v2"
)

// I18nHandler handles i18n-related requests
type I18nHandler struct{}

// GetTranslations returns translations for the client-side JavaScript
func (h *I18nHandler) GetTranslations(c *fiber.Ctx) error {
	lang := c.Params("lang")

	// Only allow supported languages
	if lang != "en" && lang != "es" {
		lang = "en"
	}

	localizer := utils.GetLocalizer(lang)

	// Common translation keys for client-side use
	keys := []string{
		"folder_inbox", "folder_starred", "folder_sent",
		"folder_drafts", "folder_spam", "folder_trash",
		"toast_reply_sent", "toast_email_sent", "toast_moved_trash",
		"toast_star_failed", "toast_send_failed", "toast_fetch_failed",
		"confirm_delete_thread", "confirm_yes", "confirm_no",
		"error_404", "error_500",
	}
	translations := make(map[string]string, len(keys))
	for _, key := range keys {
		translations[key] = utils.T(localizer, key)
	}

	return c.JSON(translations)
}
