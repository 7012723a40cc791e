package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hobbykit/internal/database"
)

// postgresStore implements Store on top of PostgreSQL. Referential
// integrity (cascade deletes, the unique like constraint) lives in the
// schema; this layer only translates calls into queries.
type postgresStore struct {
	db database.Service
}

// NewPostgres creates a PostgreSQL-backed store
func NewPostgres(db database.Service) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) CreateCommunity(ctx context.Context, params CreateCommunityParams) (*Community, error) {
	const q = `
		INSERT INTO communities (name, description, icon, theme_color, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, icon, theme_color, created_by, created_at
	`
	var c Community
	err := s.db.QueryRow(ctx, q,
		params.Name, params.Description, params.Icon, params.ThemeColor, params.CreatedBy,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.ThemeColor, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert community: %w", err)
	}
	return &c, nil
}

func (s *postgresStore) ListCommunities(ctx context.Context) ([]Community, error) {
	const q = `
		SELECT id, name, description, icon, theme_color, created_by, created_at
		FROM communities
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	defer rows.Close()

	var communities []Community
	for rows.Next() {
		var c Community
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.ThemeColor, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan community: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

func (s *postgresStore) GetCommunityByID(ctx context.Context, id string) (*Community, error) {
	const q = `
		SELECT id, name, description, icon, theme_color, created_by, created_at
		FROM communities
		WHERE id = $1
	`
	var c Community
	err := s.db.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.ThemeColor, &c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get community: %w", err)
	}
	return &c, nil
}

func (s *postgresStore) CreatePost(ctx context.Context, params CreatePostParams) (*Post, error) {
	imageURLs := params.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	const q = `
		INSERT INTO posts (community_id, user_id, content, image_urls)
		VALUES ($1, $2, $3, $4)
		RETURNING id, community_id, user_id, content, image_urls, created_at
	`
	var p Post
	err := s.db.QueryRow(ctx, q,
		params.CommunityID, params.UserID, params.Content, imageURLs,
	).Scan(&p.ID, &p.CommunityID, &p.UserID, &p.Content, &p.ImageURLs, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &p, nil
}

func (s *postgresStore) ListPosts(ctx context.Context, params ListPostsParams) ([]Post, error) {
	q := `
		SELECT id, community_id, user_id, content, image_urls, created_at
		FROM posts
	`
	args := []any{}
	if params.CommunityID != "" {
		q += ` WHERE community_id = $1`
		args = append(args, params.CommunityID)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.CommunityID, &p.UserID, &p.Content, &p.ImageURLs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *postgresStore) GetPostByID(ctx context.Context, id string) (*Post, error) {
	const q = `
		SELECT id, community_id, user_id, content, image_urls, created_at
		FROM posts
		WHERE id = $1
	`
	var p Post
	err := s.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.CommunityID, &p.UserID, &p.Content, &p.ImageURLs, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (s *postgresStore) LikePost(ctx context.Context, postID, userID string) (LikeResult, error) {
	// The unique constraint on (post_id, user_id) resolves concurrent
	// like races; a conflicting insert reports LikeExists instead of
	// surfacing a constraint error.
	const q = `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	tag, err := s.db.Exec(ctx, q, postID, userID)
	if err != nil {
		return LikeExists, fmt.Errorf("insert like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return LikeExists, nil
	}
	return LikeCreated, nil
}

func (s *postgresStore) UnlikePost(ctx context.Context, postID, userID string) (bool, error) {
	const q = `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`
	tag, err := s.db.Exec(ctx, q, postID, userID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *postgresStore) CountLikes(ctx context.Context, postIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(postIDs) == 0 {
		return counts, nil
	}
	const q = `
		SELECT post_id, COUNT(*)
		FROM likes
		WHERE post_id = ANY($1::uuid[])
		GROUP BY post_id
	`
	rows, err := s.db.Query(ctx, q, postIDs)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("scan like count: %w", err)
		}
		counts[postID] = count
	}
	return counts, rows.Err()
}

func (s *postgresStore) GetLikedPostIDs(ctx context.Context, postIDs []string, userID string) (map[string]struct{}, error) {
	liked := make(map[string]struct{})
	if len(postIDs) == 0 {
		return liked, nil
	}
	const q = `
		SELECT post_id
		FROM likes
		WHERE user_id = $1 AND post_id = ANY($2::uuid[])
	`
	rows, err := s.db.Query(ctx, q, userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("get liked post ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("scan liked post id: %w", err)
		}
		liked[postID] = struct{}{}
	}
	return liked, rows.Err()
}
