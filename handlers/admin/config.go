// handlers/admin/config.go - competition state controls
package admin

import (
	"cipherboard/database"
	"cipherboard/models"

	"github.com/gofiber/fiber/v2"
)

func currentConfig() (models.CompetitionConfig, error) {
	var cfg models.CompetitionConfig
	err := database.GetConfigDB().Order("id desc").First(&cfg).Error
	return cfg, err
}

// GetConfig reads the competition state fresh from the config database.
func GetConfig(c *fiber.Ctx) error {
	cfg, err := currentConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch config"})
	}
	return c.JSON(fiber.Map{"config": cfg})
}

// SetActiveDay advances or rewinds the competition day. Day 0 means not yet
// started, day 11 means finished.
func SetActiveDay(c *fiber.Ctx) error {
	var body struct {
		Day int `json:"day"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.Day < 0 || body.Day > models.ForumDays+1 {
		return c.Status(400).JSON(fiber.Map{"error": "Day must be between 0 and 11"})
	}

	cfg, err := currentConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch config"})
	}

	cfg.ActiveDay = body.Day
	if err := database.GetConfigDB().Save(&cfg).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update config"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Active day was successfully updated",
		"config":  cfg,
	})
}

// SetReleased toggles whether the current day's cipher is visible.
func SetReleased(c *fiber.Ctx) error {
	var body struct {
		Released bool `json:"released"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	cfg, err := currentConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch config"})
	}

	cfg.Released = body.Released
	if err := database.GetConfigDB().Save(&cfg).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update config"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cipher release state was successfully updated",
		"config":  cfg,
	})
}

// SetRegistration opens or closes the public registration form.
func SetRegistration(c *fiber.Ctx) error {
	var body struct {
		Open bool `json:"open"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	cfg, err := currentConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch config"})
	}

	cfg.RegistrationOpen = body.Open
	if err := database.GetConfigDB().Save(&cfg).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update config"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration state was successfully updated",
		"config":  cfg,
	})
}
