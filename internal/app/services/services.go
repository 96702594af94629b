// Package services implements the application's business rules over the
// storage layer: authentication, the research post feed with enrichment and
// filtering, and the interview log.
package services

import (
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
)

// Services bundles every application service for dependency injection.
type Services struct {
	Auth      AuthService
	Post      PostService
	Interview InterviewService
}

// NewServices wires all services over a single store.
func NewServices(store storage.Storage, jwtService *auth.JWTService) *Services {
	return &Services{
		Auth:      NewAuthService(store, jwtService),
		Post:      NewPostService(store),
		Interview: NewInterviewService(store),
	}
}
