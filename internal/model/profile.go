package model

import "github.com/rotisserie/eris"

// UserProfile is the per-user document held by the record store. Email is the
// immutable identifier supplied by the authentication boundary; PastInterviews
// only ever grows.
type UserProfile struct {
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	Education      string            `json:"education"`
	PastInterviews []InterviewRecord `json:"past_interviews"`
}

// Incomplete reports whether the profile still carries default empty fields.
// An incomplete profile sends the dashboard straight to the edit form.
func (p *UserProfile) Incomplete() bool {
	return p.Name == "" || p.Education == ""
}

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Name      string `json:"name"`
	Education string `json:"education"`
}

// Validate requires both fields to be non-empty; a failed update must leave
// the stored profile untouched.
func (u ProfileUpdate) Validate() error {
	if u.Name == "" {
		return eris.New("profile update: name is required")
	}
	if u.Education == "" {
		return eris.New("profile update: education is required")
	}
	return nil
}
