// Package storage provides the persistence layer for users, posts, reactions,
// comments, fund manager likes and interviews. Two implementations exist: an
// in-memory store used for development and tests, and a PostgreSQL store for
// production deployments. Both satisfy the Storage interface and are selected
// via the database.driver configuration key.
package storage

import (
	"context"
	"time"

	"github.com/emreakn/researchdesk/internal/app/models"
)

// Storage defines raw entity operations. Cross-entity reads (enrichment,
// filtering beyond region and date) belong to the service layer so both
// implementations share a single semantics.
type Storage interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Posts
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	// ListPosts returns posts in insertion order, optionally narrowed by
	// region (models.RegionAll disables the filter) and a lower creation
	// time bound (nil disables it).
	ListPosts(ctx context.Context, region string, from *time.Time) ([]*models.Post, error)
	// ListPostsByCompany matches the company field by case-insensitive
	// substring.
	ListPostsByCompany(ctx context.Context, company string) ([]*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id int64, update models.PostUpdate) (*models.Post, error)

	// Reactions
	// AddReaction replaces any existing reaction of the same type by the
	// same user on the same post, so a (post, user, type) triple carries
	// at most one reaction. Reactions of other types coexist.
	AddReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (*models.Reaction, error)
	// RemoveReaction reports whether a matching reaction existed.
	RemoveReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (bool, error)
	ReactionsByPost(ctx context.Context, postID int64) ([]*models.Reaction, error)

	// Comments
	AddComment(ctx context.Context, postID, userID int64, content string) (*models.Comment, error)
	CommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error)

	// Fund manager likes
	// AddFundManagerLike returns apperrors.ErrLikeExists if the user has
	// already liked the post.
	AddFundManagerLike(ctx context.Context, postID, userID int64) (*models.FundManagerLike, error)
	// RemoveFundManagerLike reports whether the user had liked the post.
	RemoveFundManagerLike(ctx context.Context, postID, userID int64) (bool, error)
	// HasFundManagerLike reports whether any fund manager has liked the post.
	HasFundManagerLike(ctx context.Context, postID int64) (bool, error)
	// ListLikedPosts returns posts liked by at least one fund manager,
	// regardless of which one, in insertion order.
	ListLikedPosts(ctx context.Context) ([]*models.Post, error)

	// Interviews
	CreateInterview(ctx context.Context, interview *models.Interview) (*models.Interview, error)
	ListInterviews(ctx context.Context) ([]*models.Interview, error)
}
