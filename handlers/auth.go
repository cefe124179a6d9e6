// handlers/auth.go
package handlers

import (
	"os"
	"strings"
	"time"

	"cipherboard/database"
	"cipherboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	Account *AccountInfo `json:"account,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type AccountInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	School   string `json:"school"`
}

// Login authenticates a team by username or team email, both matched
// case-insensitively.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	db := database.GetDB()

	var accounts []models.Account
	if err := db.Find(&accounts).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to look up account",
		})
	}

	name := strings.TrimSpace(req.Username)
	var account *models.Account
	for i := range accounts {
		if accounts[i].MatchesLogin(name) {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid username and password combination",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid username and password combination",
		})
	}

	db.Model(account).Update("last_login", time.Now())

	token, err := generateToken(*account)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	message := "You were logged in"
	if account.IsAdmin {
		message = "You were logged in as admin"
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		Message: message,
		Account: &AccountInfo{
			ID:       account.ID,
			Username: account.Username,
			IsAdmin:  account.IsAdmin,
			School:   account.School,
		},
	})
}

// Logout ends the session. Tokens are stateless, so this is a courtesy
// endpoint for clients dropping their copy.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "You were logged out",
	})
}

func generateToken(account models.Account) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"account_id": account.ID,
		"username":   account.Username,
		"is_admin":   account.IsAdmin,
		"exp":        time.Now().Add(time.Hour * 720).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
