package services

import (
	"testing"

	"cipherboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeMember(name, age string) models.MemberInfo {
	return models.MemberInfo{
		Name:          name,
		Age:           age,
		Gender:        "Female",
		Tier:          models.TierLower,
		TakesPhysics:  "Yes",
		PhysicsRating: "4",
		ScienceRating: "5",
		ScienceWords:  "fun interesting hard",
	}
}

func validForm() RegistrationForm {
	return RegistrationForm{
		Username:        "The Enigmatics",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
		TeamEmail:       "team@example.org",
		School:          "Bitterne Park",
		Postcode:        "SO17 1BJ",
		TeacherName:     "Ms Smith",
		TeacherEmail:    "smith@example.org",
		Members: []models.MemberInfo{
			completeMember("Ada", "15"),
			completeMember("Charles", "16"),
		},
	}
}

func TestFormValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RegistrationForm)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(f *RegistrationForm) {},
		},
		{
			name: "password mismatch",
			mutate: func(f *RegistrationForm) {
				f.PasswordConfirm = "different"
			},
			wantErr: ErrPasswordMismatch,
		},
		{
			name: "missing school",
			mutate: func(f *RegistrationForm) {
				f.School = ""
			},
			wantErr: ErrIncompleteForm,
		},
		{
			name: "missing teacher email",
			mutate: func(f *RegistrationForm) {
				f.TeacherEmail = ""
			},
			wantErr: ErrIncompleteForm,
		},
		{
			name: "only one member",
			mutate: func(f *RegistrationForm) {
				f.Members = f.Members[:1]
			},
			wantErr: ErrIncompleteForm,
		},
		{
			name: "second member left on dropdown sentinel",
			mutate: func(f *RegistrationForm) {
				f.Members[1].Gender = "Choose"
			},
			wantErr: ErrIncompleteForm,
		},
		{
			name: "second member missing survey answer",
			mutate: func(f *RegistrationForm) {
				f.Members[1].ScienceWords = ""
			},
			wantErr: ErrIncompleteForm,
		},
		{
			name: "six members",
			mutate: func(f *RegistrationForm) {
				for i := 3; i <= 6; i++ {
					f.Members = append(f.Members, completeMember("Extra", "15"))
				}
			},
			wantErr: ErrTooManyMembers,
		},
		{
			name: "incomplete trailing member is allowed",
			mutate: func(f *RegistrationForm) {
				f.Members = append(f.Members, models.MemberInfo{Name: "Maybe"})
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := validForm()
			tt.mutate(&form)

			err := form.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormValidateAdmin(t *testing.T) {
	t.Parallel()

	form := RegistrationForm{
		Username:        "staff",
		Password:        "pw",
		PasswordConfirm: "pw",
		School:          "HQ",
		Members:         []models.MemberInfo{{Name: "Sam", Age: "30"}},
	}
	assert.NoError(t, form.ValidateAdmin())

	form.Members = nil
	assert.ErrorIs(t, form.ValidateAdmin(), ErrIncompleteForm)
}

func TestUsedMembers(t *testing.T) {
	t.Parallel()

	members := []models.MemberInfo{
		{Slot: 1, Name: "Ada", Age: "15"},
		{Slot: 2, Name: "Charles", Age: "16"},
		{Slot: 3}, // blank slot ends the team
		{Slot: 4, Name: "Ghost", Age: "17"},
	}

	used := usedMembers(members)

	require.Len(t, used, 2)
	assert.Equal(t, "Ada", used[0].Name)
	assert.Equal(t, 1, used[0].Slot)
	assert.Equal(t, "Charles", used[1].Name)
	assert.Equal(t, 2, used[1].Slot)
}

func TestUsedMembersRenumbers(t *testing.T) {
	t.Parallel()

	used := usedMembers([]models.MemberInfo{{Slot: 5, Name: "Solo", Age: "18"}})
	require.Len(t, used, 1)
	assert.Equal(t, 1, used[0].Slot)
}

func TestAccountFromRequest(t *testing.T) {
	t.Parallel()

	req := &models.RegistrationRequest{
		Username:     "The Enigmatics",
		Password:     "$2a$10$hash",
		TeamEmail:    "team@example.org",
		School:       "Bitterne Park",
		Postcode:     "SO17 1BJ",
		TeacherName:  "Ms Smith",
		TeacherEmail: "smith@example.org",
		Members: []models.RequestMember{
			{MemberInfo: completeMember("Ada", "15")},
			{MemberInfo: completeMember("Charles", "16")},
		},
	}

	acc := accountFromRequest(req, 50.935, -1.396, false)

	assert.Equal(t, req.Username, acc.Username)
	assert.Equal(t, req.Password, acc.Password)
	assert.Equal(t, req.TeamEmail, acc.TeamEmail)
	assert.Equal(t, req.School, acc.School)
	assert.Equal(t, req.Postcode, acc.Postcode)
	assert.Equal(t, req.TeacherName, acc.TeacherName)
	assert.Equal(t, req.TeacherEmail, acc.TeacherEmail)
	assert.Equal(t, 50.935, acc.Latitude)
	assert.Equal(t, -1.396, acc.Longitude)
	assert.False(t, acc.IsAdmin)
	assert.Zero(t, acc.Score)

	require.Len(t, acc.Members, 2)
	assert.Equal(t, "Ada", acc.Members[0].Name)
	assert.Equal(t, "Charles", acc.Members[1].Name)
}

func TestAccountFromRequestAdmin(t *testing.T) {
	t.Parallel()

	acc := accountFromRequest(&models.RegistrationRequest{Username: "staff"}, 0, 0, true)
	assert.True(t, acc.IsAdmin)
}
