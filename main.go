// ~/Documents/CODING/cipherboard/main.go
package main

import (
	"log"
	"os"
	"time"

	"cipherboard/database"
	"cipherboard/geo"
	"cipherboard/handlers"
	"cipherboard/handlers/admin"
	"cipherboard/middleware"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize databases
	database.InitDB()
	database.InitConfigDB()
	defer database.CloseDB()

	// Build services
	geocoder := geo.NewClient()
	regService := services.NewRegistrationService(database.GetDB(), geocoder)
	feed := handlers.NewForumFeed()
	modService := services.NewModerationService(database.GetDB(), feed)

	handlers.Init(regService, modService)
	admin.Init(regService, modService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    16 * 1024 * 1024, // media uploads
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// Every request sees the competition state that was current when it
	// arrived
	app.Use(middleware.CompetitionMiddleware)

	// Serve static files
	app.Static("/", "./static")
	app.Static("/css", "./static/css")
	app.Static("/js", "./static/js")
	app.Static("/uploads", "./static/uploads")
	app.Static("/admin", "./static/admin")

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/logout", handlers.Logout)

	// Registration
	api.Post("/register", handlers.Register)

	// Forum routes. Reads work without a session but show per-user post
	// counts when one is present.
	api.Get("/forums/:day", middleware.OptionalAuthMiddleware, handlers.GetForum)
	api.Get("/entries/:epoch", middleware.OptionalAuthMiddleware, handlers.GetEntry)
	api.Post("/forums/:day/entries", middleware.AuthMiddleware, handlers.CreateEntry)

	// Scoreboard
	api.Get("/scoreboard", handlers.GetScoreboard)

	// Profile routes
	api.Get("/profiles", handlers.GetProfiles)
	api.Get("/profiles/:id", handlers.GetProfile)
	api.Put("/profiles/:id", middleware.AuthMiddleware, handlers.UpdateBio)
	api.Post("/profiles/:id/logo", middleware.AuthMiddleware, handlers.UploadLogo)

	// Archive routes (read-only, per year)
	archiveGroup := api.Group("/archive/:year")
	archiveGroup.Get("/forums/:day", handlers.GetArchiveForum)
	archiveGroup.Get("/scoreboard", handlers.GetArchiveScoreboard)
	archiveGroup.Get("/profiles", handlers.GetArchiveProfiles)
	archiveGroup.Get("/profiles/:id", handlers.GetArchiveProfile)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)

	adminGroup.Get("/requests", admin.GetRequests)
	adminGroup.Post("/requests", admin.CreateRequest)
	adminGroup.Post("/requests/:id/approve", admin.ApproveRequest)
	adminGroup.Delete("/requests/:id", admin.RejectRequest)

	adminGroup.Get("/accounts", admin.GetAccounts)
	adminGroup.Post("/accounts", admin.CreateAccount)
	adminGroup.Delete("/accounts/:id", admin.DeleteAccount)

	adminGroup.Get("/staged", admin.GetStaged)
	adminGroup.Get("/deleted", admin.GetDeleted)
	adminGroup.Post("/staged/:epoch/publish", admin.PublishStaged)
	adminGroup.Put("/staged/:epoch", admin.AmendStaged)
	adminGroup.Delete("/staged/:epoch", admin.DeleteStaged)
	adminGroup.Delete("/staged/:epoch/punish", admin.PunishStaged)
	adminGroup.Put("/published/:epoch", admin.AnnotatePublished)
	adminGroup.Delete("/published/:epoch", admin.DeletePublished)
	adminGroup.Delete("/published/:epoch/punish", admin.PunishPublished)
	adminGroup.Post("/deleted/:epoch/restore", admin.RestorePublished)
	adminGroup.Post("/deleted/:epoch/restage", admin.RestoreStaged)

	adminGroup.Get("/config", admin.GetConfig)
	adminGroup.Put("/config/day", admin.SetActiveDay)
	adminGroup.Put("/config/released", admin.SetReleased)
	adminGroup.Put("/config/registration", admin.SetRegistration)

	// Live moderation feed
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/forum", websocket.New(handlers.ForumFeedHandler(feed)))

	// HTML routes
	app.Get("/", serveFile("./static/index.html"))
	app.Get("/rules", serveFile("./static/rules.html"))
	app.Get("/rules.html", serveFile("./static/rules.html"))
	app.Get("/login", serveFile("./static/login.html"))
	app.Get("/login.html", serveFile("./static/login.html"))
	app.Get("/register", serveFile("./static/register.html"))
	app.Get("/register.html", serveFile("./static/register.html"))
	app.Get("/scoreboard", serveFile("./static/scoreboard.html"))
	app.Get("/scoreboard.html", serveFile("./static/scoreboard.html"))
	app.Get("/forum/:day", serveFile("./static/forum.html"))
	app.Get("/profiles", serveFile("./static/profiles.html"))

	// Admin HTML routes
	app.Get("/admin", serveFile("./static/admin/index.html"))
	app.Get("/admin/login", serveFile("./static/admin/login.html"))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Moderation feed available at ws://localhost:%s/ws/forum", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

// Helper functions
func serveFile(filepath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(filepath)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
