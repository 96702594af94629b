package models

import (
	"time"
)

// Post defines the research note model based on the 'posts' table
type Post struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	AuthorID    int64     `json:"authorId" db:"author_id" example:"2"`
	Company     string    `json:"company" db:"company" example:"Reliance Industries"`
	Region      Region    `json:"region" db:"region" example:"india"`
	Content     string    `json:"content" db:"content"`
	Headline    string    `json:"headline" db:"headline"`
	Summary     string    `json:"summary" db:"summary"`
	Attachments []string  `json:"attachments" db:"attachments"` // Stored filenames, may be empty
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PostUpdate carries the mutable post fields for an update operation.
// Author and id are immutable.
type PostUpdate struct {
	Headline string
	Content  string
	Company  string
	Region   Region
}

// ReactionCounts is the per-type reaction tally of a post.
type ReactionCounts struct {
	Mmi  int `json:"mmi" example:"3"`
	Tbd  int `json:"tbd" example:"0"`
	News int `json:"news" example:"1"`
}

// Total returns the sum of all per-type counts.
func (c ReactionCounts) Total() int {
	return c.Mmi + c.Tbd + c.News
}

// CommentWithAuthor is a comment resolved with its author record.
type CommentWithAuthor struct {
	Comment
	Author *User `json:"author"`
}

// PostWithDetails is the fully joined, read-only representation of a post:
// the raw post plus author, reactions, comments with authors, per-type
// reaction counts and the global fund-manager flag. It is derived, never stored.
type PostWithDetails struct {
	Post
	Author               *User               `json:"author"`
	Reactions            []*Reaction         `json:"reactions"`
	Comments             []CommentWithAuthor `json:"comments"`
	ReactionCounts       ReactionCounts      `json:"reactionCounts"`
	IsLikedByFundManager bool                `json:"isLikedByFundManager"`
}
