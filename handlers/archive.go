// handlers/archive.go - read-only mirrors of past competition years
package handlers

import (
	"errors"

	"cipherboard/database"
	"cipherboard/models"
	"cipherboard/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func archiveDB(c *fiber.Ctx) (*gorm.DB, int, error) {
	year, err := c.ParamsInt("year")
	if err != nil {
		return nil, 0, fiber.NewError(404, "Archive not found")
	}
	adb, err := database.Archive(year)
	if err != nil {
		if errors.Is(err, database.ErrNoArchive) {
			return nil, 0, fiber.NewError(404, "Archive not found")
		}
		return nil, 0, fiber.NewError(500, "Archive unavailable")
	}
	return adb, year, nil
}

// GetArchiveForum lists one day's entries from a past year's site.
func GetArchiveForum(c *fiber.Ctx) error {
	adb, year, err := archiveDB(c)
	if err != nil {
		return err
	}

	day, derr := c.ParamsInt("day")
	if derr != nil || !models.ValidForum(day) {
		return c.Status(404).JSON(fiber.Map{"error": "Forum not found"})
	}

	var entries []models.PublishedPost
	adb.Where("forum = ?", day).Order("id desc").Find(&entries)

	var accounts []models.Account
	adb.Select("id", "username", "logo").Order("id desc").Find(&accounts)

	cipher := ""
	if text, cerr := cipherService.ForYear(year, day); cerr == nil {
		cipher = text
	}

	return c.JSON(fiber.Map{
		"year":     year,
		"day":      day,
		"entries":  entries,
		"accounts": accounts,
		"cipher":   cipher,
	})
}

// GetArchiveScoreboard returns a past year's final scoreboard. Archived
// years predate the division split, so this is a single ranked board.
func GetArchiveScoreboard(c *fiber.Ctx) error {
	adb, year, err := archiveDB(c)
	if err != nil {
		return err
	}

	teams, posts, lerr := loadScoreboardInput(adb)
	if lerr != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load scoreboard"})
	}

	totals := scoring.AggregateAll(teams, posts, exceptions)

	return c.JSON(fiber.Map{
		"year":  year,
		"board": scoring.BuildBoard(totals),
	})
}

// GetArchiveProfiles lists a past year's teams.
func GetArchiveProfiles(c *fiber.Ctx) error {
	adb, year, err := archiveDB(c)
	if err != nil {
		return err
	}

	var accounts []models.Account
	adb.Select("id", "username", "logo", "is_admin", "postcode").Order("id desc").Find(&accounts)

	return c.JSON(fiber.Map{"year": year, "accounts": accounts})
}

// GetArchiveProfile returns one team's profile from a past year.
func GetArchiveProfile(c *fiber.Ctx) error {
	adb, year, err := archiveDB(c)
	if err != nil {
		return err
	}

	var account models.Account
	if err := adb.Preload("Members").First(&account, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(fiber.Map{"year": year, "account": account})
}
