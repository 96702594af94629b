package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
)

// MemStorage is an in-memory Storage implementation. It keeps every
// collection in a map guarded by a single RWMutex and assigns ids from
// monotonic counters, so iterating ids in ascending order yields insertion
// order. All returned records are copies; callers never alias internal state.
type MemStorage struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	posts      map[int64]*models.Post
	reactions  map[int64]*models.Reaction
	comments   map[int64]*models.Comment
	likes      map[int64]*models.FundManagerLike
	interviews map[int64]*models.Interview

	nextUserID      int64
	nextPostID      int64
	nextReactionID  int64
	nextCommentID   int64
	nextLikeID      int64
	nextInterviewID int64
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:      make(map[int64]*models.User),
		posts:      make(map[int64]*models.Post),
		reactions:  make(map[int64]*models.Reaction),
		comments:   make(map[int64]*models.Comment),
		likes:      make(map[int64]*models.FundManagerLike),
		interviews: make(map[int64]*models.Interview),

		nextUserID:      1,
		nextPostID:      1,
		nextReactionID:  1,
		nextCommentID:   1,
		nextLikeID:      1,
		nextInterviewID: 1,
	}
}

var _ Storage = (*MemStorage)(nil)

// sortedIDs returns the map keys in ascending order.
func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Attachments = append([]string(nil), p.Attachments...)
	return &c
}

// CreateUser stores a new user and assigns its id.
func (s *MemStorage) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyUser(user)
	stored.ID = s.nextUserID
	s.nextUserID++
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.users[stored.ID] = stored

	return copyUser(stored), nil
}

// GetUser retrieves a user by id.
func (s *MemStorage) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetUserByUsername retrieves a user by exact username.
func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if s.users[id].Username == username {
			return copyUser(s.users[id]), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetUserByEmail retrieves a user by exact email.
func (s *MemStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if s.users[id].Email == email {
			return copyUser(s.users[id]), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// CreatePost stores a new post and assigns its id.
func (s *MemStorage) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyPost(post)
	stored.ID = s.nextPostID
	s.nextPostID++
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if stored.Attachments == nil {
		stored.Attachments = []string{}
	}
	s.posts[stored.ID] = stored

	return copyPost(stored), nil
}

// GetPost retrieves a post by id.
func (s *MemStorage) GetPost(_ context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return copyPost(post), nil
}

// ListPosts returns posts in insertion order, filtered by region and a lower
// creation time bound when given.
func (s *MemStorage) ListPosts(_ context.Context, region string, from *time.Time) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(s.posts))
	for _, id := range sortedIDs(s.posts) {
		post := s.posts[id]
		if region != "" && region != models.RegionAll && string(post.Region) != region {
			continue
		}
		if from != nil && post.CreatedAt.Before(*from) {
			continue
		}
		posts = append(posts, copyPost(post))
	}
	return posts, nil
}

// ListPostsByCompany matches the company field by case-insensitive substring.
func (s *MemStorage) ListPostsByCompany(_ context.Context, company string) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(company)
	posts := make([]*models.Post, 0)
	for _, id := range sortedIDs(s.posts) {
		post := s.posts[id]
		if strings.Contains(strings.ToLower(post.Company), needle) {
			posts = append(posts, copyPost(post))
		}
	}
	return posts, nil
}

// ListPostsByAuthor returns the posts created by the given user in insertion order.
func (s *MemStorage) ListPostsByAuthor(_ context.Context, authorID int64) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0)
	for _, id := range sortedIDs(s.posts) {
		if s.posts[id].AuthorID == authorID {
			posts = append(posts, copyPost(s.posts[id]))
		}
	}
	return posts, nil
}

// UpdatePost overwrites the mutable fields of a post. Id, author and
// creation time are preserved.
func (s *MemStorage) UpdatePost(_ context.Context, id int64, update models.PostUpdate) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}

	post.Headline = update.Headline
	post.Content = update.Content
	post.Company = update.Company
	post.Region = update.Region

	return copyPost(post), nil
}

// AddReaction records a reaction, replacing any previous reaction of the same
// type by the same user on the same post. Reactions of other types are kept.
func (s *MemStorage) AddReaction(_ context.Context, postID, userID int64, reactionType models.ReactionType) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, apperrors.ErrPostNotFound
	}

	for id, r := range s.reactions {
		if r.PostID == postID && r.UserID == userID && r.Type == reactionType {
			delete(s.reactions, id)
		}
	}

	reaction := &models.Reaction{
		ID:        s.nextReactionID,
		PostID:    postID,
		UserID:    userID,
		Type:      reactionType,
		CreatedAt: time.Now(),
	}
	s.nextReactionID++
	s.reactions[reaction.ID] = reaction

	stored := *reaction
	return &stored, nil
}

// RemoveReaction deletes the user's reaction of the given type and reports
// whether one existed.
func (s *MemStorage) RemoveReaction(_ context.Context, postID, userID int64, reactionType models.ReactionType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.reactions {
		if r.PostID == postID && r.UserID == userID && r.Type == reactionType {
			delete(s.reactions, id)
			return true, nil
		}
	}
	return false, nil
}

// ReactionsByPost returns a post's reactions in insertion order.
func (s *MemStorage) ReactionsByPost(_ context.Context, postID int64) ([]*models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reactions := make([]*models.Reaction, 0)
	for _, id := range sortedIDs(s.reactions) {
		if s.reactions[id].PostID == postID {
			stored := *s.reactions[id]
			reactions = append(reactions, &stored)
		}
	}
	return reactions, nil
}

// AddComment appends a comment to a post.
func (s *MemStorage) AddComment(_ context.Context, postID, userID int64, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, apperrors.ErrPostNotFound
	}

	comment := &models.Comment{
		ID:        s.nextCommentID,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.nextCommentID++
	s.comments[comment.ID] = comment

	stored := *comment
	return &stored, nil
}

// CommentsByPost returns a post's comments in insertion order.
func (s *MemStorage) CommentsByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*models.Comment, 0)
	for _, id := range sortedIDs(s.comments) {
		if s.comments[id].PostID == postID {
			stored := *s.comments[id]
			comments = append(comments, &stored)
		}
	}
	return comments, nil
}

// AddFundManagerLike records a like, rejecting duplicates per (post, user).
func (s *MemStorage) AddFundManagerLike(_ context.Context, postID, userID int64) (*models.FundManagerLike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, apperrors.ErrPostNotFound
	}

	for _, like := range s.likes {
		if like.PostID == postID && like.UserID == userID {
			return nil, apperrors.ErrLikeExists
		}
	}

	like := &models.FundManagerLike{
		ID:        s.nextLikeID,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	s.nextLikeID++
	s.likes[like.ID] = like

	stored := *like
	return &stored, nil
}

// RemoveFundManagerLike deletes the user's like on a post and reports whether
// one existed.
func (s *MemStorage) RemoveFundManagerLike(_ context.Context, postID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, like := range s.likes {
		if like.PostID == postID && like.UserID == userID {
			delete(s.likes, id)
			return true, nil
		}
	}
	return false, nil
}

// HasFundManagerLike reports whether any fund manager has liked the post.
func (s *MemStorage) HasFundManagerLike(_ context.Context, postID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, like := range s.likes {
		if like.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

// ListLikedPosts returns posts liked by at least one fund manager, in
// insertion order of the posts.
func (s *MemStorage) ListLikedPosts(_ context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	liked := make(map[int64]bool, len(s.likes))
	for _, like := range s.likes {
		liked[like.PostID] = true
	}

	posts := make([]*models.Post, 0, len(liked))
	for _, id := range sortedIDs(s.posts) {
		if liked[id] {
			posts = append(posts, copyPost(s.posts[id]))
		}
	}
	return posts, nil
}

// CreateInterview stores a new interview log entry and assigns its id.
func (s *MemStorage) CreateInterview(_ context.Context, interview *models.Interview) (*models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *interview
	stored.ID = s.nextInterviewID
	s.nextInterviewID++
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.interviews[stored.ID] = &stored

	out := stored
	return &out, nil
}

// ListInterviews returns all interview entries in insertion order.
func (s *MemStorage) ListInterviews(_ context.Context) ([]*models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interviews := make([]*models.Interview, 0, len(s.interviews))
	for _, id := range sortedIDs(s.interviews) {
		stored := *s.interviews[id]
		interviews = append(interviews, &stored)
	}
	return interviews, nil
}
