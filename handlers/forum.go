// handlers/forum.go - daily forum listing and posting
package handlers

import (
	"os"
	"strconv"
	"time"

	"cipherboard/database"
	"cipherboard/middleware"
	"cipherboard/models"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// GetForum lists one day's published entries together with the day's cipher
// (once released) and, for a logged-in caller, how many of their own posts
// are published, awaiting moderation or penalty-deleted on this forum.
func GetForum(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Forum not found"})
	}

	cfg := middleware.GetCompetitionConfig(c)

	// Day 0 is "not started", day 11 "finished"; both render as closed.
	if day == 0 || day == models.ForumDays+1 {
		return c.JSON(fiber.Map{
			"closed":     true,
			"day":        day,
			"active_day": cfg.ActiveDay,
		})
	}
	if !models.ValidForum(day) {
		return c.Status(404).JSON(fiber.Map{"error": "Forum not found"})
	}

	db := database.GetDB()

	var entries []models.PublishedPost
	db.Where("forum = ?", day).Order("id desc").Find(&entries)

	var accounts []models.Account
	db.Select("id", "username", "logo", "is_admin").Order("id desc").Find(&accounts)

	counts := 0
	if username, err := middleware.GetUsername(c); err == nil {
		var n int64
		db.Model(&models.PublishedPost{}).Where("username = ? AND forum = ?", username, day).Count(&n)
		counts += int(n)
		db.Model(&models.StagedPost{}).Where("username = ? AND forum = ?", username, day).Count(&n)
		counts += int(n)
		db.Model(&models.DeletedPost{}).
			Where("username = ? AND forum = ? AND score = ?", username, day, models.PunishScore).Count(&n)
		counts += int(n)
	}

	cipher := ""
	if cfg.Released {
		if text, err := cipherService.ForForum(day); err == nil {
			cipher = text
		}
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"day":        day,
		"active_day": cfg.ActiveDay,
		"released":   cfg.Released,
		"entries":    entries,
		"accounts":   accounts,
		"counts":     counts,
		"cipher":     cipher,
		"date":       now.Format("2006-01-02"),
		"time":       now.Format("15:04:05"),
		"start_date": getEnv("COMP_START_DATE", "2016-06-06"),
		"start_time": getEnv("COMP_START_TIME", "09:00:00"),
		"end_time":   getEnv("COMP_END_TIME", "11:46:00"),
	})
}

// GetEntry returns a single published entry by its epoch key.
func GetEntry(c *fiber.Ctx) error {
	epoch, err := strconv.ParseInt(c.Params("epoch"), 10, 64)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	db := database.GetDB()
	var entry models.PublishedPost
	if err := db.Where("epoch = ?", epoch).First(&entry).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}

	return c.JSON(entry)
}

// CreateEntry submits a write-up (text, or an uploaded media file) to a
// day's forum. New entries are always staged for moderation first.
func CreateEntry(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil || !models.ValidForum(day) {
		return c.Status(404).JSON(fiber.Map{"error": "Forum not found"})
	}

	username, err := middleware.GetUsername(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Not authenticated"})
	}

	title := c.FormValue("title")

	now := time.Now()
	post := models.Post{
		Title:    title,
		PostedAt: now.Format(timestampLayout),
		Epoch:    now.UnixNano(),
		Score:    0,
		Username: username,
		Forum:    day,
	}

	if file, ferr := c.FormFile("file"); ferr == nil && file != nil {
		if title == "" {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "File and/or title not chosen",
			})
		}
		filename, fullpath, uerr := uploadService.Destination(username, file.Filename)
		if uerr != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "File type not allowed",
			})
		}
		snippet, ok := services.MediaSnippet(filename)
		if !ok {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "File type not allowed",
			})
		}
		if err := c.SaveFile(file, fullpath); err != nil {
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to store upload",
			})
		}
		post.Body = snippet
	} else {
		text := c.FormValue("text")
		if title == "" || text == "" {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Title and/or text not filled in",
			})
		}
		post.Body = text
	}

	db := database.GetDB()
	if err := db.Create(&models.StagedPost{Post: post}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save entry",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "New entry was successfully posted",
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
