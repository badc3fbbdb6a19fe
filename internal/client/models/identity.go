// Package models defines the records the alumnet client exchanges with the
// API and the form payloads it validates before sending.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated user or any member listed in the directory.
type Identity struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Headline    string `json:"headline,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	PassoutYear int    `json:"passout_year,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Batch renders the passout year or "N/A" when unknown.
func (i Identity) Batch() string {
	if i.PassoutYear == 0 {
		return "N/A"
	}
	return fmt.Sprint(i.PassoutYear)
}

// JobPosting is an entry on the job board.
type JobPosting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	ApplyURL    string    `json:"apply_url,omitempty"`
	PostedBy    string    `json:"posted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
