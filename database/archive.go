// database/archive.go - read-only stores for past competition years
package database

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoArchive is returned when no archive store is configured or a year's
// database cannot be reached.
var ErrNoArchive = errors.New("archive database not available")

var (
	archiveMu  sync.Mutex
	archiveDBs = make(map[int]*gorm.DB)
)

// Archive returns the store for one past competition year, opening it lazily.
// ARCHIVE_DATABASE_URL is a DSN template with a %d slot for the year, e.g.
// postgres://.../cipherboard_%d. Archive stores mirror the main schema and
// are only ever read.
func Archive(year int) (*gorm.DB, error) {
	tmpl := os.Getenv("ARCHIVE_DATABASE_URL")
	if tmpl == "" || !strings.Contains(tmpl, "%d") {
		return nil, ErrNoArchive
	}

	archiveMu.Lock()
	defer archiveMu.Unlock()

	if adb, ok := archiveDBs[year]; ok {
		return adb, nil
	}

	dsn := fmt.Sprintf(tmpl, year)
	adb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: year %d: %v", ErrNoArchive, year, err)
	}

	archiveDBs[year] = adb
	return adb, nil
}
