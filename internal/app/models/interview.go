package models

import (
	"time"
)

// Interview defines a management interview log entry. Immutable once created.
type Interview struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Company   string    `json:"company" db:"company"`
	Region    Region    `json:"region" db:"region"`
	Source    string    `json:"source" db:"source" example:"CNBC"`
	Link      string    `json:"link" db:"link"`
	Summary   string    `json:"summary" db:"summary"`
	AddedBy   int64     `json:"addedBy" db:"added_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// InterviewWithUser is an interview resolved with the contributing user.
type InterviewWithUser struct {
	Interview
	AddedByUser *User `json:"addedByUser"`
}
