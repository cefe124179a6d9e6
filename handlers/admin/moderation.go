// handlers/admin/moderation.go - staged/published/deleted post moderation
package admin

import (
	"errors"
	"strconv"

	"cipherboard/database"
	"cipherboard/middleware"
	"cipherboard/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func epochParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("epoch"), 10, 64)
}

func moderationError(c *fiber.Ctx, err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Failed to " + action + " entry"})
}

// GetStaged lists entries awaiting moderation, oldest first so the queue is
// worked in submission order.
func GetStaged(c *fiber.Ctx) error {
	db := database.GetDB()

	var entries []models.StagedPost
	if err := db.Order("id asc").Find(&entries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch staged entries"})
	}

	return c.JSON(fiber.Map{"entries": entries})
}

// GetDeleted lists removed entries so they can be restored.
func GetDeleted(c *fiber.Ctx) error {
	db := database.GetDB()

	var entries []models.DeletedPost
	if err := db.Order("id desc").Find(&entries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch deleted entries"})
	}

	return c.JSON(fiber.Map{"entries": entries})
}

// PublishStaged scores a staged entry and moves it to the public forum.
func PublishStaged(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	var body struct {
		Score    int    `json:"score"`
		Comments string `json:"comments"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	moderator, err := middleware.GetUsername(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := modService.PublishStaged(epoch, body.Score, body.Comments, moderator); err != nil {
		return moderationError(c, err, "publish")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was successfully published",
	})
}

// AmendStaged rewrites a staged entry's text before publication.
func AmendStaged(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := modService.AmendStaged(epoch, body.Text); err != nil {
		return moderationError(c, err, "amend")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was successfully amended",
	})
}

// DeleteStaged removes a staged entry without scoring it.
func DeleteStaged(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.DeleteStaged(epoch); err != nil {
		return moderationError(c, err, "delete")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was successfully deleted",
	})
}

// PunishStaged removes a staged entry with a penalty score.
func PunishStaged(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.PunishStaged(epoch); err != nil {
		return moderationError(c, err, "punish")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was deleted with a penalty",
	})
}

// AnnotatePublished replaces a published entry's text and appends a
// moderator comment.
func AnnotatePublished(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	var body struct {
		Text     string `json:"text"`
		Comments string `json:"comments"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	moderator, err := middleware.GetUsername(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := modService.AnnotatePublished(epoch, body.Text, body.Comments, moderator); err != nil {
		return moderationError(c, err, "annotate")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was successfully annotated",
	})
}

// DeletePublished retracts a published entry.
func DeletePublished(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.DeletePublished(epoch); err != nil {
		return moderationError(c, err, "delete")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was successfully deleted",
	})
}

// PunishPublished retracts a published entry with a penalty score.
func PunishPublished(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.PunishPublished(epoch); err != nil {
		return moderationError(c, err, "punish")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was deleted with a penalty",
	})
}

// RestorePublished moves a deleted entry back to the public forum.
func RestorePublished(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.RestoreToPublished(epoch); err != nil {
		return moderationError(c, err, "restore")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was restored to the forum",
	})
}

// RestoreStaged moves a deleted entry back to the moderation queue.
func RestoreStaged(c *fiber.Ctx) error {
	epoch, err := epochParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	if err := modService.RestoreToStaged(epoch); err != nil {
		return moderationError(c, err, "restore")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry was restored to the staging queue",
	})
}
