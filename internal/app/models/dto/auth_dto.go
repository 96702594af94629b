package dto

import "github.com/emreakn/researchdesk/internal/app/models"

// TokenResponse is returned after a successful register or login.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"604800"` // Seconds until the token expires
	User      *models.User `json:"user"`
}
