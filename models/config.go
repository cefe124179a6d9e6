// models/config.go
package models

import "time"

// CompetitionConfig is the single persisted row that gates the whole site:
// which day's forums are open, whether the ciphers have been released and
// whether registration accepts new requests. It is read once per request and
// updated in place by admin toggles, never deleted.
type CompetitionConfig struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ActiveDay        int       `gorm:"default:0" json:"active_day"`
	Released         bool      `gorm:"default:false" json:"released"`
	RegistrationOpen bool      `gorm:"default:true" json:"registration_open"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (CompetitionConfig) TableName() string {
	return "competition_config"
}
