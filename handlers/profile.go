// handlers/profile.go - team profile pages and edits
package handlers

import (
	"cipherboard/database"
	"cipherboard/middleware"
	"cipherboard/models"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles lists every team for the profile map page.
func GetProfiles(c *fiber.Ctx) error {
	db := database.GetDB()

	var accounts []models.Account
	if err := db.Select("id", "username", "logo", "is_admin", "postcode", "latitude", "longitude").
		Order("id desc").Find(&accounts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch profiles"})
	}

	return c.JSON(fiber.Map{"accounts": accounts})
}

// GetProfile returns one team's public profile.
func GetProfile(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var account models.Account
	if err := db.Preload("Members").First(&account, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(account)
}

// requireOwner loads the account and checks the session belongs to it.
// Administrators may edit any profile.
func requireOwner(c *fiber.Ctx) (*models.Account, error) {
	username, err := middleware.GetUsername(c)
	if err != nil {
		return nil, fiber.NewError(401, "Not authenticated")
	}

	var account models.Account
	if err := database.GetDB().First(&account, c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(404, "Profile not found")
	}

	if account.Username != username && !middleware.IsAdmin(c) {
		return nil, fiber.NewError(401, "Not your profile")
	}
	return &account, nil
}

// UpdateBio edits the caller's own team bio.
func UpdateBio(c *fiber.Ctx) error {
	account, err := requireOwner(c)
	if err != nil {
		return err
	}

	var body struct {
		Bio string `json:"bio"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := database.GetDB().Model(account).Update("bio", body.Bio).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update bio"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// UploadLogo replaces the caller's team logo with an uploaded image.
func UploadLogo(c *fiber.Ctx) error {
	account, err := requireOwner(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "No file chosen",
		})
	}

	filename, fullpath, err := uploadService.Destination(account.Username, file.Filename)
	if err != nil {
		if err == services.ErrFileTypeNotAllowed {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "File type not allowed",
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store upload"})
	}

	if err := c.SaveFile(file, fullpath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store upload"})
	}

	if err := database.GetDB().Model(account).Update("logo", filename).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update logo"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "File successfully uploaded",
		"filename": filename,
	})
}
