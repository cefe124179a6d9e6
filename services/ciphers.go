// services/ciphers.go - the daily cipher files
package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cipherboard/models"
)

// CipherService serves the text of the ten daily ciphers. Files 1-5 are the
// science forum ciphers for days 1-5, files 6-10 the media forum ciphers for
// the same days.
type CipherService struct {
	dir   string
	files []string
}

// NewCipherService reads CIPHER_DIR (default ./static/ciphers) and
// CIPHER_FILES, a comma-separated list of exactly ten filenames defaulting
// to cipher1.txt..cipher10.txt.
func NewCipherService() *CipherService {
	dir := os.Getenv("CIPHER_DIR")
	if dir == "" {
		dir = "./static/ciphers"
	}

	files := make([]string, models.ForumDays)
	for i := range files {
		files[i] = fmt.Sprintf("cipher%d.txt", i+1)
	}
	if env := os.Getenv("CIPHER_FILES"); env != "" {
		parts := strings.Split(env, ",")
		for i := 0; i < len(parts) && i < models.ForumDays; i++ {
			if name := strings.TrimSpace(parts[i]); name != "" {
				files[i] = name
			}
		}
	}

	return &CipherService{dir: dir, files: files}
}

// ForForum returns the cipher text for one forum number with line breaks
// converted for display. Forum n uses the n-th cipher file.
func (s *CipherService) ForForum(n int) (string, error) {
	if !models.ValidForum(n) {
		return "", fmt.Errorf("no cipher for forum %d", n)
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, s.files[n-1]))
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	return strings.Join(lines, "<br>"), nil
}

// ForYear reads an archived year's copy of the same cipher file.
func (s *CipherService) ForYear(year, n int) (string, error) {
	if !models.ValidForum(n) {
		return "", fmt.Errorf("no cipher for forum %d", n)
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, fmt.Sprintf("%d", year), s.files[n-1]))
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	return strings.Join(lines, "<br>"), nil
}
