// handlers/admin/admin.go - shared admin handler wiring
package admin

import "cipherboard/services"

var (
	regService *services.RegistrationService
	modService *services.ModerationService
)

// Init wires the admin handlers. Every route in this package is registered
// behind middleware.AdminAuthMiddleware.
func Init(reg *services.RegistrationService, mod *services.ModerationService) {
	regService = reg
	modService = mod
}
