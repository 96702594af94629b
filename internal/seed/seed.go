// Package seed fills an empty store with demonstration data: four users,
// three research notes with reactions and comments, one fund manager like and
// one interview entry.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
	"github.com/emreakn/researchdesk/internal/pkg/summarize"
)

const seedPassword = "password123"

// Run populates the store if it holds no users yet. Safe to call on every
// startup.
func Run(ctx context.Context, store storage.Storage) error {
	if _, err := store.GetUserByUsername(ctx, "sarah.chen"); err == nil {
		logger.Debug().Msg("Seed data already present, skipping")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check for seed data: %w", err)
	}

	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	sarah, err := createUser(ctx, store, "sarah.chen", models.RoleAnalyst, hashed, "Sarah", "Chen")
	if err != nil {
		return err
	}
	david, err := createUser(ctx, store, "david.kim", models.RoleAnalyst, hashed, "David", "Kim")
	if err != nil {
		return err
	}
	priya, err := createUser(ctx, store, "priya.sharma", models.RoleAnalyst, hashed, "Priya", "Sharma")
	if err != nil {
		return err
	}
	manager, err := createUser(ctx, store, "john.manager", models.RoleFundManager, hashed, "John", "Manager")
	if err != nil {
		return err
	}

	reliance, err := createPost(ctx, store, sarah.ID, "Reliance Industries", models.RegionIndia,
		"Reliance Industries reported a 15% jump in quarterly profit driven by the retail and telecom segments. "+
			"Jio subscriber additions remain strong. Refining margins normalized after last year's spike.")
	if err != nil {
		return err
	}
	samsung, err := createPost(ctx, store, david.ID, "Samsung Electronics", models.RegionAsia,
		"Samsung Electronics guided for a recovery in memory pricing through the second half. "+
			"HBM capacity is sold out for the year. Foundry utilization is still below 70%.")
	if err != nil {
		return err
	}
	tesla, err := createPost(ctx, store, priya.ID, "Tesla Inc", models.RegionDevelopedMarkets,
		"Tesla Inc delivered 5% fewer vehicles than consensus expected. "+
			"Energy storage deployments doubled year over year. Margin pressure from price cuts continues.")
	if err != nil {
		return err
	}

	reactions := []struct {
		postID int64
		userID int64
		rtype  models.ReactionType
	}{
		{reliance.ID, david.ID, models.ReactionMmi},
		{reliance.ID, priya.ID, models.ReactionMmi},
		{samsung.ID, sarah.ID, models.ReactionNews},
		{tesla.ID, david.ID, models.ReactionTbd},
	}
	for _, r := range reactions {
		if _, err := store.AddReaction(ctx, r.postID, r.userID, r.rtype); err != nil {
			return fmt.Errorf("failed to seed reaction: %w", err)
		}
	}

	if _, err := store.AddComment(ctx, reliance.ID, david.ID, "Retail mix shift is the real story here."); err != nil {
		return fmt.Errorf("failed to seed comment: %w", err)
	}
	if _, err := store.AddComment(ctx, samsung.ID, priya.ID, "Worth watching how HBM pricing holds into next year."); err != nil {
		return fmt.Errorf("failed to seed comment: %w", err)
	}

	if _, err := store.AddFundManagerLike(ctx, reliance.ID, manager.ID); err != nil {
		return fmt.Errorf("failed to seed like: %w", err)
	}

	if _, err := store.CreateInterview(ctx, &models.Interview{
		Title:   "Tata Motors CFO on the EV transition",
		Company: "Tata Motors",
		Region:  models.RegionIndia,
		Source:  "CNBC",
		Link:    "https://www.cnbc.com/tata-motors-ev-interview",
		Summary: "Capex plans for the EV lineup and expectations for JLR margins.",
		AddedBy: priya.ID,
	}); err != nil {
		return fmt.Errorf("failed to seed interview: %w", err)
	}

	logger.Info().Msg("Seed data created")
	return nil
}

func createUser(ctx context.Context, store storage.Storage, username string, role models.RoleType, hashed, first, last string) (*models.User, error) {
	user, err := store.CreateUser(ctx, &models.User{
		Username:  username,
		Email:     username + "@researchdesk.app",
		Password:  hashed,
		Role:      role,
		FirstName: &first,
		LastName:  &last,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
	}
	return user, nil
}

func createPost(ctx context.Context, store storage.Storage, authorID int64, company string, region models.Region, content string) (*models.Post, error) {
	generated := summarize.Summarize(content)
	post, err := store.CreatePost(ctx, &models.Post{
		AuthorID: authorID,
		Company:  company,
		Region:   region,
		Content:  content,
		Headline: generated.Headline,
		Summary:  generated.Summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed post for %s: %w", company, err)
	}
	return post, nil
}
