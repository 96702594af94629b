package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/db"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/dberrors"
)

// PostgresStorage is the PostgreSQL-backed Storage implementation.
type PostgresStorage struct {
	pool *pgxpool.Pool
	sq   squirrel.StatementBuilderType
}

// NewPostgresStorage creates a Storage backed by the given connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{
		pool: pool,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ Storage = (*PostgresStorage)(nil)

const userColumns = "id, username, email, password, role, first_name, last_name, created_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user and returns it with the generated id.
func (s *PostgresStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := s.sq.Insert("users").
		Columns("username", "email", "password", "role", "first_name", "last_name").
		Values(user.Username, user.Email, user.Password, user.Role, user.FirstName, user.LastName).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert user query: %w", err)
	}

	created, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return created, nil
}

// GetUser retrieves a user by id.
func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.getUserWhere(ctx, squirrel.Eq{"id": id})
}

// GetUserByUsername retrieves a user by exact username.
func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserWhere(ctx, squirrel.Eq{"username": username})
}

// GetUserByEmail retrieves a user by exact email.
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserWhere(ctx, squirrel.Eq{"email": email})
}

func (s *PostgresStorage) getUserWhere(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	query, args, err := s.sq.Select(userColumns).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	user, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

const postColumns = "id, author_id, company, region, content, headline, summary, attachments, created_at"

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.Company, &post.Region,
		&post.Content, &post.Headline, &post.Summary, &post.Attachments, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	if post.Attachments == nil {
		post.Attachments = []string{}
	}
	return &post, nil
}

func (s *PostgresStorage) queryPosts(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Post, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select posts query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// CreatePost inserts a new post and returns it with the generated id.
func (s *PostgresStorage) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	attachments := post.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	query, args, err := s.sq.Insert("posts").
		Columns("author_id", "company", "region", "content", "headline", "summary", "attachments").
		Values(post.AuthorID, post.Company, post.Region, post.Content, post.Headline, post.Summary, attachments).
		Suffix("RETURNING " + postColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert post query: %w", err)
	}

	created, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return created, nil
}

// GetPost retrieves a post by id.
func (s *PostgresStorage) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := s.sq.Select(postColumns).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select post query: %w", err)
	}

	post, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

// ListPosts returns posts in insertion order, filtered by region and a lower
// creation time bound when given.
func (s *PostgresStorage) ListPosts(ctx context.Context, region string, from *time.Time) ([]*models.Post, error) {
	builder := s.sq.Select(postColumns).
		From("posts").
		OrderBy("id ASC")

	if region != "" && region != models.RegionAll {
		builder = builder.Where(squirrel.Eq{"region": region})
	}
	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *from})
	}

	return s.queryPosts(ctx, builder)
}

// ListPostsByCompany matches the company field by case-insensitive substring.
func (s *PostgresStorage) ListPostsByCompany(ctx context.Context, company string) ([]*models.Post, error) {
	builder := s.sq.Select(postColumns).
		From("posts").
		Where(squirrel.ILike{"company": "%" + company + "%"}).
		OrderBy("id ASC")

	return s.queryPosts(ctx, builder)
}

// ListPostsByAuthor returns the posts created by the given user in insertion order.
func (s *PostgresStorage) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	builder := s.sq.Select(postColumns).
		From("posts").
		Where(squirrel.Eq{"author_id": authorID}).
		OrderBy("id ASC")

	return s.queryPosts(ctx, builder)
}

// UpdatePost overwrites the mutable fields of a post.
func (s *PostgresStorage) UpdatePost(ctx context.Context, id int64, update models.PostUpdate) (*models.Post, error) {
	query, args, err := s.sq.Update("posts").
		Set("headline", update.Headline).
		Set("content", update.Content).
		Set("company", update.Company).
		Set("region", update.Region).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + postColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update post query: %w", err)
	}

	post, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// AddReaction replaces the user's previous reaction of the same type on the
// post, if any, inside a single transaction.
func (s *PostgresStorage) AddReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (*models.Reaction, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	var reaction models.Reaction
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		delQuery, delArgs, err := s.sq.Delete("reactions").
			Where(squirrel.Eq{"post_id": postID, "user_id": userID, "type": reactionType}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete reaction query: %w", err)
		}
		if _, err := tx.Exec(ctx, delQuery, delArgs...); err != nil {
			return fmt.Errorf("failed to delete previous reaction: %w", err)
		}

		insQuery, insArgs, err := s.sq.Insert("reactions").
			Columns("post_id", "user_id", "type").
			Values(postID, userID, reactionType).
			Suffix("RETURNING id, post_id, user_id, type, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert reaction query: %w", err)
		}
		return tx.QueryRow(ctx, insQuery, insArgs...).
			Scan(&reaction.ID, &reaction.PostID, &reaction.UserID, &reaction.Type, &reaction.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}
	return &reaction, nil
}

// RemoveReaction deletes the user's reaction of the given type and reports
// whether one existed.
func (s *PostgresStorage) RemoveReaction(ctx context.Context, postID, userID int64, reactionType models.ReactionType) (bool, error) {
	query, args, err := s.sq.Delete("reactions").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID, "type": reactionType}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete reaction query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete reaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReactionsByPost returns a post's reactions in insertion order.
func (s *PostgresStorage) ReactionsByPost(ctx context.Context, postID int64) ([]*models.Reaction, error) {
	query, args, err := s.sq.Select("id, post_id, user_id, type, created_at").
		From("reactions").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select reactions query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	reactions := make([]*models.Reaction, 0)
	for rows.Next() {
		var r models.Reaction
		if err := rows.Scan(&r.ID, &r.PostID, &r.UserID, &r.Type, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reactions = append(reactions, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reactions: %w", err)
	}
	return reactions, nil
}

// AddComment appends a comment to a post.
func (s *PostgresStorage) AddComment(ctx context.Context, postID, userID int64, content string) (*models.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	query, args, err := s.sq.Insert("comments").
		Columns("post_id", "user_id", "content").
		Values(postID, userID, content).
		Suffix("RETURNING id, post_id, user_id, content, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert comment query: %w", err)
	}

	var comment models.Comment
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return &comment, nil
}

// CommentsByPost returns a post's comments in insertion order.
func (s *PostgresStorage) CommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query, args, err := s.sq.Select("id, post_id, user_id, content, created_at").
		From("comments").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select comments query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

// AddFundManagerLike records a like, rejecting duplicates per (post, user) via
// the unique index.
func (s *PostgresStorage) AddFundManagerLike(ctx context.Context, postID, userID int64) (*models.FundManagerLike, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	query, args, err := s.sq.Insert("fund_manager_likes").
		Columns("post_id", "user_id").
		Values(postID, userID).
		Suffix("RETURNING id, post_id, user_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert like query: %w", err)
	}

	var like models.FundManagerLike
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrLikeExists
		}
		return nil, fmt.Errorf("failed to insert like: %w", err)
	}
	return &like, nil
}

// RemoveFundManagerLike deletes the user's like on a post and reports whether
// one existed.
func (s *PostgresStorage) RemoveFundManagerLike(ctx context.Context, postID, userID int64) (bool, error) {
	query, args, err := s.sq.Delete("fund_manager_likes").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete like query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasFundManagerLike reports whether any fund manager has liked the post.
func (s *PostgresStorage) HasFundManagerLike(ctx context.Context, postID int64) (bool, error) {
	query, args, err := s.sq.Select("1").
		From("fund_manager_likes").
		Where(squirrel.Eq{"post_id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build select like query: %w", err)
	}

	var one int
	err = s.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query like: %w", err)
	}
	return true, nil
}

// ListLikedPosts returns posts liked by at least one fund manager, in
// insertion order of the posts.
func (s *PostgresStorage) ListLikedPosts(ctx context.Context) ([]*models.Post, error) {
	builder := s.sq.Select("p.id, p.author_id, p.company, p.region, p.content, p.headline, p.summary, p.attachments, p.created_at").
		From("posts p").
		Where("EXISTS (SELECT 1 FROM fund_manager_likes l WHERE l.post_id = p.id)").
		OrderBy("p.id ASC")

	return s.queryPosts(ctx, builder)
}

// CreateInterview inserts a new interview log entry.
func (s *PostgresStorage) CreateInterview(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	query, args, err := s.sq.Insert("interviews").
		Columns("title", "company", "region", "source", "link", "summary", "added_by").
		Values(interview.Title, interview.Company, interview.Region, interview.Source,
			interview.Link, interview.Summary, interview.AddedBy).
		Suffix("RETURNING id, title, company, region, source, link, summary, added_by, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert interview query: %w", err)
	}

	var created models.Interview
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&created.ID, &created.Title, &created.Company, &created.Region, &created.Source,
			&created.Link, &created.Summary, &created.AddedBy, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert interview: %w", err)
	}
	return &created, nil
}

// ListInterviews returns all interview entries in insertion order.
func (s *PostgresStorage) ListInterviews(ctx context.Context) ([]*models.Interview, error) {
	query, args, err := s.sq.Select("id, title, company, region, source, link, summary, added_by, created_at").
		From("interviews").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select interviews query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		var iv models.Interview
		err := rows.Scan(&iv.ID, &iv.Title, &iv.Company, &iv.Region, &iv.Source,
			&iv.Link, &iv.Summary, &iv.AddedBy, &iv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, &iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interviews: %w", err)
	}
	return interviews, nil
}
