// models/account.go
package models

import (
	"strings"
	"time"
)

// MaxTeamMembers is the largest team the competition accepts.
const MaxTeamMembers = 5

type Tier string

const (
	TierLower Tier = "GCSE"
	TierUpper Tier = "ALevel"
)

// Account is a competing team, or an administrator account.
type Account struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`

	// Denormalized running total; the scoreboard recomputes from posts.
	Score int `gorm:"default:0" json:"score"`

	TeamEmail    string  `json:"team_email"`
	School       string  `json:"school"`
	Postcode     string  `json:"postcode"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TeacherName  string  `json:"teacher_name"`
	TeacherEmail string  `json:"teacher_email"`

	Bio  string `gorm:"type:text" json:"bio"`
	Logo string `json:"logo"`

	Members []TeamMember `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

func (Account) TableName() string {
	return "accounts"
}

// MatchesLogin reports whether name identifies this account. Usernames and
// team emails both work, compared case-insensitively with trailing whitespace
// on the stored username ignored.
func (a *Account) MatchesLogin(name string) bool {
	name = strings.ToLower(name)
	return name == strings.ToLower(strings.TrimRight(a.Username, " ")) ||
		(a.TeamEmail != "" && name == strings.ToLower(a.TeamEmail))
}

// MemberInfo is the per-member slice of the registration form. Age is kept as
// entered; forms occasionally submit non-numeric values and the original data
// is preserved verbatim through request approval.
type MemberInfo struct {
	Slot          int    `gorm:"not null" json:"slot"`
	Name          string `json:"name"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	Tier          Tier   `json:"tier"`
	TakesPhysics  string `json:"takes_physics"`
	PhysicsRating string `json:"physics_rating"`
	ScienceRating string `json:"science_rating"`
	ScienceWords  string `json:"science_words"`
}

// Populated reports whether this member slot is in use.
func (m MemberInfo) Populated() bool {
	return m.Name != ""
}

type TeamMember struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"not null;index" json:"account_id"`
	MemberInfo
}

func (TeamMember) TableName() string {
	return "team_members"
}
