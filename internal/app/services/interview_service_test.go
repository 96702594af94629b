package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
)

func TestInterviewService(t *testing.T) {
	store := storage.NewMemStorage()
	svc := NewInterviewService(store)
	ctx := context.Background()

	analyst, err := store.CreateUser(ctx, &models.User{
		Username: "priya.sharma", Email: "priya.sharma@example.com", Password: "hashed", Role: models.RoleAnalyst,
	})
	require.NoError(t, err)

	created, err := svc.CreateInterview(ctx, &models.Interview{
		Title:   "Tata Motors CEO on EV strategy",
		Company: "Tata Motors",
		Region:  models.RegionIndia,
		Source:  "CNBC",
		Link:    "https://example.com/interview",
		Summary: "EV roadmap and capex plans",
		AddedBy: analyst.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AddedByUser)
	assert.Equal(t, analyst.Username, created.AddedByUser.Username)

	t.Run("listing resolves contributors", func(t *testing.T) {
		interviews, err := svc.GetInterviews(ctx)
		require.NoError(t, err)
		require.Len(t, interviews, 1)
		assert.Equal(t, "Tata Motors", interviews[0].Company)
		require.NotNil(t, interviews[0].AddedByUser)
		assert.Equal(t, analyst.ID, interviews[0].AddedByUser.ID)
	})

	t.Run("dangling contributor is an integrity fault", func(t *testing.T) {
		_, err := store.CreateInterview(ctx, &models.Interview{
			Title:   "Ghost interview",
			Company: "Ghost Corp",
			Region:  models.RegionAsia,
			Source:  "TV",
			AddedBy: 999,
		})
		require.NoError(t, err)

		_, err = svc.GetInterviews(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	})
}
