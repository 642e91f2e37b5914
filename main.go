package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/qwertyczee/inbox-threads/config"
	"github.com/qwertyczee/inbox-threads/handlers/api"
	"github.com/qwertyczee/inbox-threads/handlers/web"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/middleware"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/storage"
	"github.com/qwertyczee/inbox-threads/utils"
)

// Helper function to determine if request is an API request
func isAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	path := c.Path()
	return len(path) >= 4 && path[:4] == "/api"
}

func main() {
	utils.Log.Info("Initializing inbox-threads...")

	// Load configuration
	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		return
	}

	// Initialize i18n system
	if err := utils.InitI18n(); err != nil {
		utils.Log.Error("Failed to initialize i18n: %v", err)
	}

	// Build the mailbox: store, event hub, service
	store := storage.NewMessageStore()
	owner := models.User{Name: cfg.Mailbox.OwnerName, Email: cfg.Mailbox.OwnerEmail}
	if cfg.Mailbox.Seed {
		if err := storage.Seed(store, owner); err != nil {
			utils.Log.Error("Failed to seed mailbox: %v", err)
			return
		}
		utils.Log.Info("Seeded mailbox with %d messages", store.Len())
	}
	hub := mailbox.NewHub()
	defer hub.Close()
	svc := mailbox.NewService(store, owner, hub, cfg.LatencyProfile())

	// Initialize template engine with custom functions
	engine := html.New("./templates", ".html")
	engine.AddFunc("lower", strings.ToLower)
	engine.AddFunc("trim", strings.TrimSpace)
	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("Jan 02, 2006 15:04")
	})
	engine.AddFunc("t", func(messageID string) string {
		return utils.T(utils.Localizer, messageID)
	})

	// Initialize Fiber with template engine
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var appErr *utils.AppError
			var fiberErr *fiber.Error
			if errors.As(err, &appErr) {
				code = appErr.Code
				utils.Log.Error("Application error: %v", appErr)
			} else if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}

			if isAPIRequest(c) {
				return c.Status(code).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			return c.Status(code).Render("error", fiber.Map{
				"Title": "Error",
				"Error": err.Error(),
				"Code":  code,
			})
		},
	})

	// Add global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	app.Use(middleware.LocaleMiddleware())
	app.Use(middleware.RateLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow()))

	// Initialize handlers
	mailHandler := web.NewMailHandler(svc)
	threadHandler := api.NewThreadHandler(svc)
	folderHandler := api.NewFolderHandler(svc)
	composeHandler := api.NewComposeHandler(svc)
	notificationHandler := api.NewNotificationHandler(hub)
	i18nHandler := &api.I18nHandler{}

	// Web routes
	app.Get("/", mailHandler.HandleInbox)
	app.Get("/inbox", mailHandler.HandleInbox)
	app.Get("/folder/:name", mailHandler.HandleFolder)
	app.Get("/thread/:id", mailHandler.HandleThread)

	// API routes
	apiRoutes := app.Group("/api")
	{
		apiRoutes.Get("/threads", threadHandler.HandleList)
		apiRoutes.Get("/threads/search", threadHandler.HandleSearch)
		apiRoutes.Get("/threads/:id", threadHandler.HandleGet)
		apiRoutes.Patch("/threads/:id/read", threadHandler.HandleMarkRead)
		apiRoutes.Patch("/threads/:id/star", threadHandler.HandleToggleStar)
		apiRoutes.Patch("/threads/:id/move", threadHandler.HandleMove)
		apiRoutes.Delete("/threads/:id", threadHandler.HandleDelete)

		apiRoutes.Get("/folders", folderHandler.HandleFolders)
		apiRoutes.Get("/folders/counts", folderHandler.HandleCounts)

		apiRoutes.Post("/compose", composeHandler.HandleCompose)

		apiRoutes.Get("/events", notificationHandler.HandleSSE)

		apiRoutes.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		apiRoutes.Get("/ws", websocket.New(notificationHandler.HandleWebSocket))

		apiRoutes.Get("/i18n/:lang", i18nHandler.GetTranslations)
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 404 Handler for undefined routes
	app.Use(func(c *fiber.Ctx) error {
		if isAPIRequest(c) {
			return c.Status(404).JSON(fiber.Map{
				"error": "Not found",
			})
		}
		return c.Status(404).Render("error", fiber.Map{
			"Title": "Error",
			"Error": "Page not found",
			"Code":  404,
		})
	})

	// Start server
	utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Error starting server: %v", err)
	}
}
