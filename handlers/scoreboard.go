// handlers/scoreboard.go
package handlers

import (
	"cipherboard/database"
	"cipherboard/middleware"
	"cipherboard/models"
	"cipherboard/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func teamsFromAccounts(accounts []models.Account) []scoring.Team {
	teams := make([]scoring.Team, 0, len(accounts))
	for _, acc := range accounts {
		team := scoring.Team{Username: acc.Username, IsAdmin: acc.IsAdmin}
		for _, m := range acc.Members {
			if m.Populated() {
				team.MemberTiers = append(team.MemberTiers, m.Tier)
			}
		}
		teams = append(teams, team)
	}
	return teams
}

func postScores(posts []models.PublishedPost) []scoring.PostScore {
	scores := make([]scoring.PostScore, len(posts))
	for i, p := range posts {
		scores[i] = scoring.PostScore{Username: p.Username, Science: p.IsScience(), Score: p.Score}
	}
	return scores
}

func loadScoreboardInput(db *gorm.DB) ([]scoring.Team, []scoring.PostScore, error) {
	var accounts []models.Account
	if err := db.Preload("Members").Order("id desc").Find(&accounts).Error; err != nil {
		return nil, nil, err
	}
	var posts []models.PublishedPost
	if err := db.Order("id desc").Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	return teamsFromAccounts(accounts), postScores(posts), nil
}

// GetScoreboard returns the six leaderboards: lower and upper division, each
// ranked for total, science and media scores, highest first.
func GetScoreboard(c *fiber.Ctx) error {
	cfg := middleware.GetCompetitionConfig(c)

	teams, posts, err := loadScoreboardInput(database.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load scoreboard"})
	}

	lower, upper := scoring.Aggregate(teams, posts, exceptions)

	return c.JSON(fiber.Map{
		"active_day": cfg.ActiveDay,
		"lower":      scoring.BuildBoard(lower),
		"upper":      scoring.BuildBoard(upper),
	})
}
