package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
)

func newTestUser(t *testing.T, s *MemStorage, username string, role models.RoleType) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func newTestPost(t *testing.T, s *MemStorage, authorID int64, company string, region models.Region) *models.Post {
	t.Helper()
	post, err := s.CreatePost(context.Background(), &models.Post{
		AuthorID: authorID,
		Company:  company,
		Region:   region,
		Content:  "content about " + company,
		Headline: company + " headline",
		Summary:  company + " summary",
	})
	require.NoError(t, err)
	return post
}

func TestMemStorage_Users(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	created := newTestUser(t, s, "sarah.chen", models.RoleAnalyst)
	assert.Equal(t, int64(1), created.ID)

	t.Run("lookup by id", func(t *testing.T) {
		user, err := s.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "sarah.chen", user.Username)
	})

	t.Run("lookup by username", func(t *testing.T) {
		user, err := s.GetUserByUsername(ctx, "sarah.chen")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("lookup by email", func(t *testing.T) {
		user, err := s.GetUserByEmail(ctx, "sarah.chen@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.GetUser(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestMemStorage_ListPosts(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)

	first := newTestPost(t, s, author.ID, "Reliance Industries", models.RegionIndia)
	second := newTestPost(t, s, author.ID, "Samsung Electronics", models.RegionAsia)
	third := newTestPost(t, s, author.ID, "Tesla Inc", models.RegionDevelopedMarkets)

	t.Run("insertion order", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, "", nil)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
		assert.Equal(t, third.ID, posts[2].ID)
	})

	t.Run("region filter", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, string(models.RegionAsia), nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, second.ID, posts[0].ID)
	})

	t.Run("region all disables filter", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, models.RegionAll, nil)
		require.NoError(t, err)
		assert.Len(t, posts, 3)
	})

	t.Run("from date excludes older posts", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		posts, err := s.ListPosts(ctx, "", &future)
		require.NoError(t, err)
		assert.Empty(t, posts)

		past := time.Now().Add(-time.Hour)
		posts, err = s.ListPosts(ctx, "", &past)
		require.NoError(t, err)
		assert.Len(t, posts, 3)
	})

	t.Run("company substring is case insensitive", func(t *testing.T) {
		posts, err := s.ListPostsByCompany(ctx, "RELIANCE")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, first.ID, posts[0].ID)

		posts, err = s.ListPostsByCompany(ctx, "sung elec")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, second.ID, posts[0].ID)
	})

	t.Run("by author", func(t *testing.T) {
		other := newTestUser(t, s, "other", models.RoleAnalyst)
		mine, err := s.ListPostsByAuthor(ctx, author.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 3)

		none, err := s.ListPostsByAuthor(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestMemStorage_UpdatePost(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)
	post := newTestPost(t, s, author.ID, "Tesla Inc", models.RegionDevelopedMarkets)

	updated, err := s.UpdatePost(ctx, post.ID, models.PostUpdate{
		Headline: "Revised headline",
		Content:  "Revised content",
		Company:  "Tesla Motors",
		Region:   models.RegionAsia,
	})
	require.NoError(t, err)

	assert.Equal(t, post.ID, updated.ID)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.Equal(t, "Revised headline", updated.Headline)
	assert.Equal(t, "Tesla Motors", updated.Company)
	assert.Equal(t, models.RegionAsia, updated.Region)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)

	_, err = s.UpdatePost(ctx, 999, models.PostUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestMemStorage_Reactions(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)
	reader := newTestUser(t, s, "reader", models.RoleAnalyst)
	post := newTestPost(t, s, author.ID, "Acme Corp", models.RegionIndia)

	t.Run("add to missing post", func(t *testing.T) {
		_, err := s.AddReaction(ctx, 999, reader.ID, models.ReactionMmi)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("distinct types coexist for one user", func(t *testing.T) {
		_, err := s.AddReaction(ctx, post.ID, reader.ID, models.ReactionMmi)
		require.NoError(t, err)

		_, err = s.AddReaction(ctx, post.ID, reader.ID, models.ReactionNews)
		require.NoError(t, err)

		reactions, err := s.ReactionsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, reactions, 2)
		assert.Equal(t, models.ReactionMmi, reactions[0].Type)
		assert.Equal(t, models.ReactionNews, reactions[1].Type)
	})

	t.Run("re-add same type replaces, not duplicates", func(t *testing.T) {
		_, err := s.AddReaction(ctx, post.ID, reader.ID, models.ReactionNews)
		require.NoError(t, err)

		reactions, err := s.ReactionsByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, reactions, 2)
	})

	t.Run("remove reports presence", func(t *testing.T) {
		removed, err := s.RemoveReaction(ctx, post.ID, reader.ID, models.ReactionNews)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.RemoveReaction(ctx, post.ID, reader.ID, models.ReactionNews)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("remove wrong type is a no-op", func(t *testing.T) {
		removed, err := s.RemoveReaction(ctx, post.ID, reader.ID, models.ReactionTbd)
		require.NoError(t, err)
		assert.False(t, removed)

		// The mmi reaction from above is untouched
		reactions, err := s.ReactionsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, reactions, 1)
		assert.Equal(t, models.ReactionMmi, reactions[0].Type)
	})
}

func TestMemStorage_Comments(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)
	post := newTestPost(t, s, author.ID, "Acme Corp", models.RegionIndia)

	_, err := s.AddComment(ctx, 999, author.ID, "lost")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	first, err := s.AddComment(ctx, post.ID, author.ID, "first")
	require.NoError(t, err)
	second, err := s.AddComment(ctx, post.ID, author.ID, "second")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	comments, err := s.CommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestMemStorage_FundManagerLikes(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)
	managerOne := newTestUser(t, s, "manager.one", models.RoleFundManager)
	managerTwo := newTestUser(t, s, "manager.two", models.RoleFundManager)
	post := newTestPost(t, s, author.ID, "Acme Corp", models.RegionIndia)
	other := newTestPost(t, s, author.ID, "Beta Ltd", models.RegionAsia)

	t.Run("duplicate like rejected", func(t *testing.T) {
		_, err := s.AddFundManagerLike(ctx, post.ID, managerOne.ID)
		require.NoError(t, err)

		_, err = s.AddFundManagerLike(ctx, post.ID, managerOne.ID)
		assert.ErrorIs(t, err, apperrors.ErrLikeExists)
	})

	t.Run("flag is global across managers", func(t *testing.T) {
		liked, err := s.HasFundManagerLike(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = s.HasFundManagerLike(ctx, other.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		_, err = s.AddFundManagerLike(ctx, other.ID, managerTwo.ID)
		require.NoError(t, err)

		posts, err := s.ListLikedPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, post.ID, posts[0].ID)
		assert.Equal(t, other.ID, posts[1].ID)
	})

	t.Run("remove reports presence", func(t *testing.T) {
		removed, err := s.RemoveFundManagerLike(ctx, post.ID, managerOne.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.RemoveFundManagerLike(ctx, post.ID, managerOne.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		liked, err := s.HasFundManagerLike(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestMemStorage_Interviews(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	analyst := newTestUser(t, s, "priya.sharma", models.RoleAnalyst)

	created, err := s.CreateInterview(ctx, &models.Interview{
		Title:   "Tata Motors CEO on EV strategy",
		Company: "Tata Motors",
		Region:  models.RegionIndia,
		Source:  "CNBC",
		Link:    "https://example.com/interview",
		Summary: "Discussion of the EV roadmap",
		AddedBy: analyst.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	interviews, err := s.ListInterviews(ctx)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, analyst.ID, interviews[0].AddedBy)
}

func TestMemStorage_ReturnsCopies(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()
	author := newTestUser(t, s, "analyst", models.RoleAnalyst)
	post := newTestPost(t, s, author.ID, "Acme Corp", models.RegionIndia)

	got, err := s.GetPost(ctx, post.ID)
	require.NoError(t, err)
	got.Company = "mutated"

	again, err := s.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", again.Company)
}
