// models/request.go
package models

import "time"

// RegistrationRequest is a pending team registration. It mirrors Account
// field-for-field minus the things only approval produces (admin flag, score,
// coordinates); an admin either converts it into an Account or deletes it.
type RegistrationRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Password string `gorm:"not null" json:"-"`

	TeamEmail    string `json:"team_email"`
	School       string `json:"school"`
	Postcode     string `json:"postcode"`
	TeacherName  string `json:"teacher_name"`
	TeacherEmail string `json:"teacher_email"`

	Members []RequestMember `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}

type RequestMember struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RequestID uint `gorm:"not null;index" json:"request_id"`
	MemberInfo
}

func (RequestMember) TableName() string {
	return "request_members"
}
