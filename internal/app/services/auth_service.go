package services

import (
	"context"
	"errors"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/models/dto"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
)

// AuthService defines account registration, login and identity lookup.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type authService struct {
	store      storage.Storage
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Storage, jwtService *auth.JWTService) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
	}
}

// Register creates an account and returns a signed token for it. Username and
// email must be unused.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.ErrUsernameAlreadyExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleType(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("username", user.Username).
		Str("role", string(user.Role)).Msg("User registered")

	return s.issueToken(user)
}

// Login verifies credentials by username and returns a signed token.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Do not reveal whether the username exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User logged in")
	return s.issueToken(user)
}

// GetUser returns the user record for the given id.
func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *authService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}
