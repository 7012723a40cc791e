package store

import "time"

// Community is a named grouping that posts belong to
type Community struct {
	ID          string
	Name        string
	Description *string
	Icon        *string
	ThemeColor  *string
	CreatedBy   string
	CreatedAt   time.Time
}

// Post is a user-authored content item within a community
type Post struct {
	ID          string
	CommunityID string
	UserID      string
	Content     string
	ImageURLs   []string
	CreatedAt   time.Time
}

// CreateCommunityParams carries the fields for a new community.
// Optional fields are nil when absent.
type CreateCommunityParams struct {
	Name        string
	Description *string
	Icon        *string
	ThemeColor  *string
	CreatedBy   string
}

// CreatePostParams carries the fields for a new post
type CreatePostParams struct {
	CommunityID string
	UserID      string
	Content     string
	ImageURLs   []string
}

// ListPostsParams filters and paginates the feed. CommunityID is empty
// for the global feed. Limit and Offset are expected pre-clamped by the
// caller.
type ListPostsParams struct {
	CommunityID string
	Limit       int
	Offset      int
}

// LikeResult distinguishes a fresh like from a duplicate attempt.
// A duplicate is an expected race outcome, not an error.
type LikeResult int

const (
	// LikeCreated means a new like record was inserted
	LikeCreated LikeResult = iota
	// LikeExists means the (post, user) pair was already liked
	LikeExists
)
