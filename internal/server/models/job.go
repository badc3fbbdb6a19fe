package models

import "time"

type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	ApplyURL    string
	PostedBy    string
	CreatedAt   time.Time
}
