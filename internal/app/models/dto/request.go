package dto

// RegisterRequest carries the fields for creating an account.
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=50" example:"sarah.chen"`
	Email     string  `json:"email" binding:"required,email" example:"sarah.chen@company.com"`
	Password  string  `json:"password" binding:"required,min=6" example:"password123"`
	Role      string  `json:"role" binding:"required,oneof=analyst fund_manager" example:"analyst"`
	FirstName *string `json:"firstName,omitempty" example:"Sarah"`
	LastName  *string `json:"lastName,omitempty" example:"Chen"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"sarah.chen"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdatePostRequest carries the mutable fields of a post. All fields are
// required; the update replaces them wholesale.
type UpdatePostRequest struct {
	Headline string `json:"headline" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Company  string `json:"company" binding:"required"`
	Region   string `json:"region" binding:"required,oneof=india asia developed_markets"`
}

// ReactionRequest selects one of the fixed reaction tags.
type ReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=mmi tbd news" example:"mmi"`
}

// CommentRequest carries a new comment body.
type CommentRequest struct {
	Content string `json:"content" binding:"required" example:"Agree with the margin thesis."`
}

// SummarizeRequest carries raw research text to summarize.
type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateInterviewRequest carries the fields of a management interview entry.
type CreateInterviewRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
	Region  string `json:"region" binding:"required,oneof=india asia developed_markets"`
	Source  string `json:"source" binding:"required" example:"CNBC"`
	Link    string `json:"link" binding:"omitempty,url"`
	Summary string `json:"summary"`
}
