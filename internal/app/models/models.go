package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAnalyst     RoleType = "analyst"
	RoleFundManager RoleType = "fund_manager"
)

// Region is one of the fixed market categories a post or interview is tagged with.
type Region string

const (
	RegionIndia            Region = "india"
	RegionAsia             Region = "asia"
	RegionDevelopedMarkets Region = "developed_markets"
)

// RegionAll is the query sentinel meaning "no region filter".
const RegionAll = "all"

// ValidRegion reports whether s is one of the fixed regions.
func ValidRegion(s string) bool {
	switch Region(s) {
	case RegionIndia, RegionAsia, RegionDevelopedMarkets:
		return true
	}
	return false
}

// ReactionType is one of the fixed reaction tags a user can attach to a post.
type ReactionType string

const (
	ReactionMmi  ReactionType = "mmi"
	ReactionTbd  ReactionType = "tbd"
	ReactionNews ReactionType = "news"
)

// ValidReactionType reports whether s is one of the fixed reaction tags.
func ValidReactionType(s string) bool {
	switch ReactionType(s) {
	case ReactionMmi, ReactionTbd, ReactionNews:
		return true
	}
	return false
}
