package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"sarah.chen"`              // Unique login name
	Email     string    `json:"email" db:"email" example:"sarah.chen@company.com"`        // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role      RoleType  `json:"role" db:"role" example:"analyst"`                         // User's role (analyst or fund_manager)
	FirstName *string   `json:"firstName,omitempty" db:"first_name" example:"Sarah"`      // User's first name (nullable)
	LastName  *string   `json:"lastName,omitempty" db:"last_name" example:"Chen"`         // User's last name (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}
