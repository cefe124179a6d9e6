// services/registration.go - registration requests and their promotion to accounts
package services

import (
	"errors"

	"cipherboard/geo"
	"cipherboard/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrPasswordMismatch is returned when the password confirmation differs.
	ErrPasswordMismatch = errors.New("password and confirmation did not match")

	// ErrIncompleteForm is returned when a required field is blank. The form
	// requires everything up to a minimum of two complete members.
	ErrIncompleteForm = errors.New("all fields must be filled up to a minimum of two members")

	// ErrTooManyMembers is returned when the form carries more member slots
	// than a team may have.
	ErrTooManyMembers = errors.New("a team has at most five members")
)

// RegistrationForm is the sign-up submission. Members carries up to five
// slots in order; trailing blank slots are dropped before saving.
type RegistrationForm struct {
	Username        string              `json:"username"`
	Password        string              `json:"password"`
	PasswordConfirm string              `json:"password_confirm"`
	TeamEmail       string              `json:"team_email"`
	School          string              `json:"school"`
	Postcode        string              `json:"postcode"`
	TeacherName     string              `json:"teacher_name"`
	TeacherEmail    string              `json:"teacher_email"`
	Members         []models.MemberInfo `json:"members"`
}

// memberComplete reports whether a slot has every survey field filled in.
// "Choose" is the sign-up form's unselected dropdown sentinel.
func memberComplete(m models.MemberInfo) bool {
	chosen := func(v string) bool { return v != "" && v != "Choose" }
	return m.Name != "" && m.Age != "" &&
		chosen(m.Gender) && chosen(string(m.Tier)) &&
		chosen(m.TakesPhysics) && chosen(m.PhysicsRating) &&
		chosen(m.ScienceRating) && m.ScienceWords != ""
}

// Validate checks a public sign-up submission: team details, a matching
// password confirmation and at least the first two members complete.
func (f *RegistrationForm) Validate() error {
	if len(f.Members) > models.MaxTeamMembers {
		return ErrTooManyMembers
	}
	if f.Password != f.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if f.Username == "" || f.Password == "" ||
		f.School == "" || f.Postcode == "" ||
		f.TeacherName == "" || f.TeacherEmail == "" {
		return ErrIncompleteForm
	}
	if len(f.Members) < 2 || !memberComplete(f.Members[0]) || !memberComplete(f.Members[1]) {
		return ErrIncompleteForm
	}
	return nil
}

// ValidateAdmin checks the laxer admin-created request: credentials, school
// and one named member with an age.
func (f *RegistrationForm) ValidateAdmin() error {
	if len(f.Members) > models.MaxTeamMembers {
		return ErrTooManyMembers
	}
	if f.Password != f.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if f.Username == "" || f.Password == "" || f.School == "" {
		return ErrIncompleteForm
	}
	if len(f.Members) < 1 || f.Members[0].Name == "" || f.Members[0].Age == "" {
		return ErrIncompleteForm
	}
	return nil
}

// usedMembers keeps the leading run of slots that have both a name and an
// age, renumbering them 1..n. A blank slot ends the team.
func usedMembers(members []models.MemberInfo) []models.MemberInfo {
	var used []models.MemberInfo
	for _, m := range members {
		if m.Name == "" || m.Age == "" {
			break
		}
		m.Slot = len(used) + 1
		used = append(used, m)
	}
	return used
}

// RegistrationService persists sign-up requests and promotes them to live
// accounts on admin approval.
type RegistrationService struct {
	db       *gorm.DB
	geocoder *geo.Client
}

func NewRegistrationService(db *gorm.DB, geocoder *geo.Client) *RegistrationService {
	return &RegistrationService{db: db, geocoder: geocoder}
}

// Submit validates a sign-up form and stores it as a pending request. The
// password is hashed here and the hash is what approval later copies across.
func (s *RegistrationService) Submit(form RegistrationForm, adminForm bool) (*models.RegistrationRequest, error) {
	var err error
	if adminForm {
		err = form.ValidateAdmin()
	} else {
		err = form.Validate()
	}
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	req := models.RegistrationRequest{
		Username:     form.Username,
		Password:     string(hash),
		TeamEmail:    form.TeamEmail,
		School:       form.School,
		Postcode:     form.Postcode,
		TeacherName:  form.TeacherName,
		TeacherEmail: form.TeacherEmail,
	}
	for _, m := range usedMembers(form.Members) {
		req.Members = append(req.Members, models.RequestMember{MemberInfo: m})
	}

	if err := s.db.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// accountFromRequest copies every request field verbatim into a fresh
// account with score zero and the given coordinates and admin flag.
func accountFromRequest(req *models.RegistrationRequest, lat, lng float64, isAdmin bool) models.Account {
	acc := models.Account{
		Username:     req.Username,
		Password:     req.Password,
		IsAdmin:      isAdmin,
		Score:        0,
		TeamEmail:    req.TeamEmail,
		School:       req.School,
		Postcode:     req.Postcode,
		Latitude:     lat,
		Longitude:    lng,
		TeacherName:  req.TeacherName,
		TeacherEmail: req.TeacherEmail,
	}
	for _, m := range req.Members {
		acc.Members = append(acc.Members, models.TeamMember{MemberInfo: m.MemberInfo})
	}
	return acc
}

// Approve promotes a pending request to a live account: geocode the postcode
// (falling back to a fixed coordinate, never failing), copy all fields and
// member slots verbatim, then delete the request. Account creation and
// request deletion are one transaction.
func (s *RegistrationService) Approve(requestID uint, makeAdmin bool) (*models.Account, error) {
	var req models.RegistrationRequest
	if err := s.db.Preload("Members").First(&req, requestID).Error; err != nil {
		return nil, err
	}

	lat, lng := s.geocoder.Lookup(req.Postcode)
	acc := accountFromRequest(&req, lat, lng, makeAdmin)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", req.ID).Delete(&models.RequestMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Reject deletes a pending request without creating an account.
func (s *RegistrationService) Reject(requestID uint) error {
	var req models.RegistrationRequest
	if err := s.db.First(&req, requestID).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", req.ID).Delete(&models.RequestMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
}

// AddAccount creates an account directly, bypassing the request queue. Used
// by admins for late registrations and house accounts.
func (s *RegistrationService) AddAccount(form RegistrationForm, makeAdmin bool) (*models.Account, error) {
	if form.Username == "" || form.Password == "" {
		return nil, ErrIncompleteForm
	}
	if len(form.Members) > models.MaxTeamMembers {
		return nil, ErrTooManyMembers
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := models.Account{
		Username:     form.Username,
		Password:     string(hash),
		IsAdmin:      makeAdmin,
		Score:        0,
		TeamEmail:    form.TeamEmail,
		School:       form.School,
		Postcode:     form.Postcode,
		TeacherName:  form.TeacherName,
		TeacherEmail: form.TeacherEmail,
	}
	for _, m := range usedMembers(form.Members) {
		acc.Members = append(acc.Members, models.TeamMember{MemberInfo: m})
	}

	if err := s.db.Create(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// DeleteAccount removes an account and its member rows.
func (s *RegistrationService) DeleteAccount(accountID uint) error {
	var acc models.Account
	if err := s.db.First(&acc, accountID).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", acc.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&acc).Error
	})
}
