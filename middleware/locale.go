package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/qwertyczee/inbox-threads/utils"
)

// LocaleMiddleware detects and sets the user's locale
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Query parameter wins, then cookie, then Accept-Language.
		lang := c.Query("lang")
		if lang == "" {
			lang = c.Cookies("lang")
		}
		if lang == "" {
			if acceptLang := c.Get("Accept-Language"); strings.HasPrefix(acceptLang, "es") {
				lang = "es"
			}
		}

		// Only allow supported languages
		if lang != "es" {
			lang = "en"
		}

		c.Locals("localizer", utils.GetLocalizer(lang))
		c.Locals("lang", lang)

		return c.Next()
	}
}
