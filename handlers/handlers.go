// handlers/handlers.go - shared handler wiring
package handlers

import (
	"log"
	"os"
	"strings"

	"cipherboard/scoring"
	"cipherboard/services"
)

var (
	regService    *services.RegistrationService
	modService    *services.ModerationService
	uploadService *services.UploadService
	cipherService *services.CipherService
	exceptions    scoring.Exceptions
)

// Init wires the handler package's services. The scoreboard exception lists
// come from SCOREBOARD_EXCLUDE and SCOREBOARD_FORCE_UPPER (comma-separated
// usernames) rather than living in code.
func Init(reg *services.RegistrationService, mod *services.ModerationService) {
	regService = reg
	modService = mod
	uploadService = services.NewUploadService()
	if err := os.MkdirAll(uploadService.Dir(), 0o755); err != nil {
		log.Printf("Warning: could not create upload directory %s: %v", uploadService.Dir(), err)
	}
	cipherService = services.NewCipherService()
	exceptions = scoring.NewExceptions(
		splitList(os.Getenv("SCOREBOARD_EXCLUDE")),
		splitList(os.Getenv("SCOREBOARD_FORCE_UPPER")),
	)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
