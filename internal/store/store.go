// Package store defines the persistence contract for communities, posts
// and likes, with a PostgreSQL implementation and an in-memory double
// sharing the same behavior.
package store

import "context"

// Store is the capability interface handlers depend on. Lookups return
// (nil, nil) when the row does not exist; errors mean the collaborator
// itself failed.
type Store interface {
	CreateCommunity(ctx context.Context, params CreateCommunityParams) (*Community, error)
	ListCommunities(ctx context.Context) ([]Community, error)
	GetCommunityByID(ctx context.Context, id string) (*Community, error)

	CreatePost(ctx context.Context, params CreatePostParams) (*Post, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]Post, error)
	GetPostByID(ctx context.Context, id string) (*Post, error)

	LikePost(ctx context.Context, postID, userID string) (LikeResult, error)
	UnlikePost(ctx context.Context, postID, userID string) (bool, error)

	// CountLikes returns like counts keyed by post id. Posts with no
	// likes are simply absent; an empty input yields an empty map
	// without touching the database.
	CountLikes(ctx context.Context, postIDs []string) (map[string]int, error)

	// GetLikedPostIDs returns the subset of postIDs liked by userID
	GetLikedPostIDs(ctx context.Context, postIDs []string, userID string) (map[string]struct{}, error)
}
