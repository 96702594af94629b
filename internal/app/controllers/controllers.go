// Package controllers contains the gin HTTP handlers. Each controller wraps a
// service, binds and validates requests, and maps service errors onto the
// shared response envelope.
package controllers

import (
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/pkg/filestorage"
)

// Controllers bundles every HTTP controller for route registration.
type Controllers struct {
	Auth        *AuthController
	Post        *PostController
	FundManager *FundManagerController
	Interview   *InterviewController
	Summarize   *SummarizeController
}

// NewControllers wires all controllers over the given services.
func NewControllers(svc *services.Services, fileStorage *filestorage.LocalStorage) *Controllers {
	return &Controllers{
		Auth:        NewAuthController(svc.Auth),
		Post:        NewPostController(svc.Post, fileStorage),
		FundManager: NewFundManagerController(svc.Post),
		Interview:   NewInterviewController(svc.Interview),
		Summarize:   NewSummarizeController(),
	}
}
