// handlers/registration.go
package handlers

import (
	"errors"

	"cipherboard/middleware"
	"cipherboard/services"

	"github.com/gofiber/fiber/v2"
)

// savedForm echoes a rejected submission back so the form can be re-shown
// with prior input preserved. Passwords are never echoed.
func savedForm(form services.RegistrationForm) services.RegistrationForm {
	form.Password = ""
	form.PasswordConfirm = ""
	return form
}

// Register files a new registration request. Teams do not become accounts
// until an admin approves the request.
func Register(c *fiber.Ctx) error {
	cfg := middleware.GetCompetitionConfig(c)
	if !cfg.RegistrationOpen {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Registration is closed",
		})
	}

	var form services.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if _, err := regService.Submit(form, false); err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) ||
			errors.Is(err, services.ErrIncompleteForm) ||
			errors.Is(err, services.ErrTooManyMembers) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
				"saved":   savedForm(form),
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save registration request",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "New account was successfully requested",
	})
}
