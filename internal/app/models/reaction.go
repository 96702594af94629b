package models

import (
	"time"
)

// Reaction defines a reaction tag attached to a post by a user.
// At most one reaction of a given type exists per (post, user) pair;
// adding a duplicate replaces the previous one.
type Reaction struct {
	ID        int64        `json:"id" db:"id"`
	PostID    int64        `json:"postId" db:"post_id"`
	UserID    int64        `json:"userId" db:"user_id"`
	Type      ReactionType `json:"type" db:"type" example:"mmi"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
}

// Comment defines a comment on a post. Append-only.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FundManagerLike is a bookmark-style marker applied by a fund manager.
// Once any fund manager has liked a post the flag is globally visible.
type FundManagerLike struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
