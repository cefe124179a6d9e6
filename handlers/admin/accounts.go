// handlers/admin/accounts.go - account administration and demographics
package admin

import (
	"errors"
	"strconv"
	"strings"

	"cipherboard/database"
	"cipherboard/models"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AccountStats summarizes the registered field for the overview page.
type AccountStats struct {
	TeamCount     int          `json:"team_count"`
	MemberCount   int          `json:"member_count"`
	AgeBuckets    [5]int       `json:"age_buckets"` // under 15, 15, 16, 17, 18
	Genders       GenderCounts `json:"genders"`
	TeamEmails    []string     `json:"team_emails"`
	TeacherEmails []string     `json:"teacher_emails"`
}

type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
	Prefer int `json:"prefer_not_to_say"`
}

func ageBucket(age string) int {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return 0
	}
	b := n - 14
	if b < 0 {
		b = 0
	}
	if b > 4 {
		b = 4
	}
	return b
}

func statsFor(accounts []models.Account) AccountStats {
	stats := AccountStats{TeamCount: len(accounts)}
	teamEmails := map[string]bool{}
	teacherEmails := map[string]bool{}

	for _, acc := range accounts {
		if acc.TeamEmail != "" && !teamEmails[acc.TeamEmail] {
			teamEmails[acc.TeamEmail] = true
			stats.TeamEmails = append(stats.TeamEmails, acc.TeamEmail)
		}
		if acc.TeacherEmail != "" && !teacherEmails[acc.TeacherEmail] {
			teacherEmails[acc.TeacherEmail] = true
			stats.TeacherEmails = append(stats.TeacherEmails, acc.TeacherEmail)
		}
		for _, m := range acc.Members {
			if !m.Populated() {
				continue
			}
			stats.MemberCount++
			stats.AgeBuckets[ageBucket(m.Age)]++
			switch m.Gender {
			case "Male":
				stats.Genders.Male++
			case "Female":
				stats.Genders.Female++
			case "Other":
				stats.Genders.Other++
			default:
				stats.Genders.Prefer++
			}
		}
	}
	return stats
}

// GetAccounts returns every account with members plus aggregate demographics.
func GetAccounts(c *fiber.Ctx) error {
	db := database.GetDB()

	var accounts []models.Account
	if err := db.Preload("Members").Order("id desc").Find(&accounts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch accounts"})
	}

	return c.JSON(fiber.Map{
		"accounts": accounts,
		"stats":    statsFor(accounts),
	})
}

// CreateAccount adds an account directly, bypassing the request queue.
func CreateAccount(c *fiber.Ctx) error {
	var body struct {
		services.RegistrationForm
		Admin bool `json:"admin"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	account, err := regService.AddAccount(body.RegistrationForm, body.Admin)
	if err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) ||
			errors.Is(err, services.ErrIncompleteForm) ||
			errors.Is(err, services.ErrTooManyMembers) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "New account was successfully added",
		"account": account,
	})
}

// DeleteAccount removes an account and its members. Deletion must be confirmed.
func DeleteAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Account not found"})
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

	if err := regService.DeleteAccount(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Account not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete account"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account was successfully deleted",
	})
}
