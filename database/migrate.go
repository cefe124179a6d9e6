// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"cipherboard/models"
)

// RunMigrations runs all main-store migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.Account{},
		&models.TeamMember{},
		&models.RegistrationRequest{},
		&models.RequestMember{},
		&models.StagedPost{},
		&models.PublishedPost{},
		&models.DeletedPost{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("Migrations completed")
}

func createIndexes() {
	db := GetDB()

	// Account indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_accounts_admin ON accounts(is_admin)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_account ON team_members(account_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_request_members_request ON request_members(request_id)")

	// Post indexes; epoch is the cross-table identity key for moderation moves
	db.Exec("CREATE INDEX IF NOT EXISTS idx_staged_posts_forum ON staged_posts(forum)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_published_posts_forum ON published_posts(forum)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_published_posts_username ON published_posts(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_deleted_posts_forum ON deleted_posts(forum)")
}
