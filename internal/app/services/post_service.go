package services

import (
	"context"
	"errors"
	"time"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
	"github.com/emreakn/researchdesk/internal/pkg/summarize"
)

// PostFilters narrows the feed query. Company takes precedence over every
// other field: when set, the result is the case-insensitive company match and
// nothing else. Of the four thresholds at most one applies, in the order
// MinMmi, MinTbd, MinNews, MinReactions.
type PostFilters struct {
	Region       string
	Company      string
	MinMmi       *int
	MinTbd       *int
	MinNews      *int
	MinReactions *int
	FromDate     *time.Time
}

// PostService defines post feed operations: creation, enrichment, filtered
// listing, reactions, comments and fund manager likes.
type PostService interface {
	CreatePost(ctx context.Context, authorID int64, company string, region models.Region, content string, attachments []string) (*models.PostWithDetails, error)
	GetPost(ctx context.Context, id int64) (*models.PostWithDetails, error)
	GetPosts(ctx context.Context, filters PostFilters) ([]*models.PostWithDetails, error)
	GetPostsByUser(ctx context.Context, userID int64) ([]*models.PostWithDetails, error)
	UpdatePost(ctx context.Context, id int64, update models.PostUpdate) (*models.PostWithDetails, error)

	AddReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (*models.Reaction, error)
	RemoveReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) error

	AddComment(ctx context.Context, postID, userID int64, content string) (*models.CommentWithAuthor, error)

	LikePost(ctx context.Context, postID, userID int64) (*models.FundManagerLike, error)
	UnlikePost(ctx context.Context, postID, userID int64) error
	GetLikedPosts(ctx context.Context) ([]*models.PostWithDetails, error)
}

type postService struct {
	store storage.Storage
}

// NewPostService creates a new PostService over the given store.
func NewPostService(store storage.Storage) PostService {
	return &postService{store: store}
}

// CreatePost stores a new post, deriving its headline and summary from the
// content.
func (s *postService) CreatePost(ctx context.Context, authorID int64, company string, region models.Region, content string, attachments []string) (*models.PostWithDetails, error) {
	generated := summarize.Summarize(content)

	post, err := s.store.CreatePost(ctx, &models.Post{
		AuthorID:    authorID,
		Company:     company,
		Region:      region,
		Content:     content,
		Headline:    generated.Headline,
		Summary:     generated.Summary,
		Attachments: attachments,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("post_id", post.ID).Int64("author_id", authorID).
		Str("company", company).Msg("Post created")

	return s.enrichPost(ctx, post)
}

// GetPost returns a single post with details.
func (s *postService) GetPost(ctx context.Context, id int64) (*models.PostWithDetails, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrichPost(ctx, post)
}

// GetPosts returns the enriched feed narrowed by the given filters.
func (s *postService) GetPosts(ctx context.Context, filters PostFilters) ([]*models.PostWithDetails, error) {
	// The company search is its own path and ignores every other filter.
	if filters.Company != "" {
		posts, err := s.store.ListPostsByCompany(ctx, filters.Company)
		if err != nil {
			return nil, err
		}
		return s.enrichPosts(ctx, posts)
	}

	posts, err := s.store.ListPosts(ctx, filters.Region, filters.FromDate)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrichPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	threshold, count := selectThreshold(filters)
	if threshold == nil {
		return enriched, nil
	}

	filtered := make([]*models.PostWithDetails, 0, len(enriched))
	for _, post := range enriched {
		if count(post.ReactionCounts) >= *threshold {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}

// selectThreshold picks the single applicable reaction threshold along with
// the tally it compares against.
func selectThreshold(filters PostFilters) (*int, func(models.ReactionCounts) int) {
	switch {
	case filters.MinMmi != nil:
		return filters.MinMmi, func(c models.ReactionCounts) int { return c.Mmi }
	case filters.MinTbd != nil:
		return filters.MinTbd, func(c models.ReactionCounts) int { return c.Tbd }
	case filters.MinNews != nil:
		return filters.MinNews, func(c models.ReactionCounts) int { return c.News }
	case filters.MinReactions != nil:
		return filters.MinReactions, models.ReactionCounts.Total
	}
	return nil, nil
}

// GetPostsByUser returns the enriched posts authored by the given user.
func (s *postService) GetPostsByUser(ctx context.Context, userID int64) ([]*models.PostWithDetails, error) {
	posts, err := s.store.ListPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts)
}

// UpdatePost replaces the mutable fields of a post. Authorship is not
// checked; any authenticated analyst can revise a note.
func (s *postService) UpdatePost(ctx context.Context, id int64, update models.PostUpdate) (*models.PostWithDetails, error) {
	post, err := s.store.UpdatePost(ctx, id, update)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("post_id", id).Msg("Post updated")
	return s.enrichPost(ctx, post)
}

// AddReaction tags a post, replacing the user's previous reaction if present.
func (s *postService) AddReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (*models.Reaction, error) {
	return s.store.AddReaction(ctx, postID, userID, reactionType)
}

// RemoveReaction removes the user's reaction of the given type.
func (s *postService) RemoveReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) error {
	removed, err := s.store.RemoveReaction(ctx, postID, userID, reactionType)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrReactionNotFound
	}
	return nil
}

// AddComment appends a comment and resolves its author.
func (s *postService) AddComment(ctx context.Context, postID, userID int64, content string) (*models.CommentWithAuthor, error) {
	comment, err := s.store.AddComment(ctx, postID, userID, content)
	if err != nil {
		return nil, err
	}

	author, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CommentWithAuthor{Comment: *comment, Author: author}, nil
}

// LikePost records a fund manager like on a post.
func (s *postService) LikePost(ctx context.Context, postID, userID int64) (*models.FundManagerLike, error) {
	like, err := s.store.AddFundManagerLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("post_id", postID).Int64("user_id", userID).Msg("Post liked by fund manager")
	return like, nil
}

// UnlikePost removes the fund manager's like from a post.
func (s *postService) UnlikePost(ctx context.Context, postID, userID int64) error {
	removed, err := s.store.RemoveFundManagerLike(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrLikeNotFound
	}
	return nil
}

// GetLikedPosts returns every post liked by at least one fund manager,
// enriched. The listing is shared; it is not scoped to the requesting manager.
func (s *postService) GetLikedPosts(ctx context.Context) ([]*models.PostWithDetails, error) {
	posts, err := s.store.ListLikedPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts)
}

// enrichPost joins a raw post with its author, reactions, comments, per-type
// tallies and the fund manager flag. A missing author means the store is
// corrupt and surfaces as a data integrity error.
func (s *postService) enrichPost(ctx context.Context, post *models.Post) (*models.PostWithDetails, error) {
	author, err := s.store.GetUser(ctx, post.AuthorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Error().Int64("post_id", post.ID).Int64("author_id", post.AuthorID).
				Msg("Post references missing author")
			return nil, apperrors.ErrDataIntegrity
		}
		return nil, err
	}

	reactions, err := s.store.ReactionsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	var counts models.ReactionCounts
	for _, r := range reactions {
		switch r.Type {
		case models.ReactionMmi:
			counts.Mmi++
		case models.ReactionTbd:
			counts.Tbd++
		case models.ReactionNews:
			counts.News++
		}
	}

	comments, err := s.store.CommentsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	withAuthors := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		commentAuthor, err := s.store.GetUser(ctx, c.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.ErrDataIntegrity
			}
			return nil, err
		}
		withAuthors = append(withAuthors, models.CommentWithAuthor{Comment: *c, Author: commentAuthor})
	}

	liked, err := s.store.HasFundManagerLike(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &models.PostWithDetails{
		Post:                 *post,
		Author:               author,
		Reactions:            reactions,
		Comments:             withAuthors,
		ReactionCounts:       counts,
		IsLikedByFundManager: liked,
	}, nil
}

func (s *postService) enrichPosts(ctx context.Context, posts []*models.Post) ([]*models.PostWithDetails, error) {
	enriched := make([]*models.PostWithDetails, 0, len(posts))
	for _, post := range posts {
		details, err := s.enrichPost(ctx, post)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, details)
	}
	return enriched, nil
}
