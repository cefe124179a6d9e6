// middleware/competition.go - per-request competition config
package middleware

import (
	"cipherboard/database"
	"cipherboard/models"

	"github.com/gofiber/fiber/v2"
)

// CompetitionMiddleware reads the config row once per request and passes it
// by value through Locals. Handlers never touch the config store directly,
// so there is no singleton to go stale mid-request.
func CompetitionMiddleware(c *fiber.Ctx) error {
	cfg := models.CompetitionConfig{ActiveDay: 0, Released: false, RegistrationOpen: true}

	db := database.GetConfigDB()
	db.Order("id desc").First(&cfg)

	c.Locals("competitionConfig", cfg)
	return c.Next()
}

// GetCompetitionConfig returns the config loaded for this request.
func GetCompetitionConfig(c *fiber.Ctx) models.CompetitionConfig {
	if cfg, ok := c.Locals("competitionConfig").(models.CompetitionConfig); ok {
		return cfg
	}
	return models.CompetitionConfig{RegistrationOpen: true}
}
