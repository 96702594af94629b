package services

import (
	"context"
	"errors"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
)

// InterviewService defines the management interview log: append and list.
type InterviewService interface {
	CreateInterview(ctx context.Context, interview *models.Interview) (*models.InterviewWithUser, error)
	GetInterviews(ctx context.Context) ([]*models.InterviewWithUser, error)
}

type interviewService struct {
	store storage.Storage
}

// NewInterviewService creates a new InterviewService.
func NewInterviewService(store storage.Storage) InterviewService {
	return &interviewService{store: store}
}

// CreateInterview appends an entry to the interview log.
func (s *interviewService) CreateInterview(ctx context.Context, interview *models.Interview) (*models.InterviewWithUser, error) {
	created, err := s.store.CreateInterview(ctx, interview)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("interview_id", created.ID).Str("company", created.Company).
		Msg("Interview logged")

	return s.withUser(ctx, created)
}

// GetInterviews lists the interview log with contributing users resolved.
func (s *interviewService) GetInterviews(ctx context.Context) ([]*models.InterviewWithUser, error) {
	interviews, err := s.store.ListInterviews(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]*models.InterviewWithUser, 0, len(interviews))
	for _, interview := range interviews {
		withUser, err := s.withUser(ctx, interview)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, withUser)
	}
	return resolved, nil
}

func (s *interviewService) withUser(ctx context.Context, interview *models.Interview) (*models.InterviewWithUser, error) {
	user, err := s.store.GetUser(ctx, interview.AddedBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Error().Int64("interview_id", interview.ID).Int64("added_by", interview.AddedBy).
				Msg("Interview references missing user")
			return nil, apperrors.ErrDataIntegrity
		}
		return nil, err
	}

	return &models.InterviewWithUser{Interview: *interview, AddedByUser: user}, nil
}
