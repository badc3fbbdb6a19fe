package models

import "time"

// User is an alumni network member. Unverified users exist between
// registration and a successful code check; they cannot log in and are not
// listed in the directory.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	PassoutYear  int
	Headline     string
	Bio          string
	Location     string
	Company      string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileChanges lists the editable fields; nil fields stay unchanged.
type ProfileChanges struct {
	FirstName *string
	LastName  *string
	Headline  *string
	Bio       *string
	Location  *string
	Company   *string
}

// Empty reports whether nothing would change.
func (p ProfileChanges) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Headline == nil &&
		p.Bio == nil && p.Location == nil && p.Company == nil
}

// DirectoryQuery narrows the member listing. A zero Limit means no limit.
type DirectoryQuery struct {
	Limit  int
	Search string
}
