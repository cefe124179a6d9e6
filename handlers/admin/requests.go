// handlers/admin/requests.go - pending registration requests
package admin

import (
	"errors"

	"cipherboard/database"
	"cipherboard/models"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetRequests lists pending registration requests, newest first.
func GetRequests(c *fiber.Ctx) error {
	db := database.GetDB()

	var requests []models.RegistrationRequest
	if err := db.Preload("Members").Order("id desc").Find(&requests).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch requests"})
	}

	return c.JSON(fiber.Map{"requests": requests})
}

// CreateRequest files a request on a team's behalf, with the laxer admin
// validation (one complete member suffices).
func CreateRequest(c *fiber.Ctx) error {
	var form services.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := regService.Submit(form, true); err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) ||
			errors.Is(err, services.ErrIncompleteForm) ||
			errors.Is(err, services.ErrTooManyMembers) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save request"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "New account was successfully requested",
	})
}

// ApproveRequest converts a pending request into a live account.
func ApproveRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Request not found"})
	}

	var body struct {
		Admin bool `json:"admin"`
	}
	_ = c.BodyParser(&body)

	account, err := regService.Approve(uint(id), body.Admin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Request not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to approve request"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Requested account was successfully added to accounts",
		"account": account,
	})
}

// RejectRequest deletes a pending request. Deletion must be confirmed.
func RejectRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Request not found"})
	}

	var body struct {
		Confirm bool `json:"confirm"`
	}
	_ = c.BodyParser(&body)
	if !body.Confirm {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Confirm deletion before clicking to delete",
		})
	}

	if err := regService.Reject(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Request not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete request"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Requested account was successfully deleted",
	})
}
