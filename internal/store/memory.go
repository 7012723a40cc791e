package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store with the same contract as the
// PostgreSQL implementation. It backs the handler tests and local runs
// without a database.
type MemoryStore struct {
	mu          sync.Mutex
	communities []Community
	posts       []Post
	likes       map[string]map[string]time.Time // postID -> userID -> likedAt
}

// NewMemory creates an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{
		likes: make(map[string]map[string]time.Time),
	}
}

func (s *MemoryStore) CreateCommunity(ctx context.Context, params CreateCommunityParams) (*Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Community{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
		Icon:        params.Icon,
		ThemeColor:  params.ThemeColor,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	s.communities = append(s.communities, c)
	return &c, nil
}

func (s *MemoryStore) ListCommunities(ctx context.Context) ([]Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Community, len(s.communities))
	copy(out, s.communities)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetCommunityByID(ctx context.Context, id string) (*Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.communities {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreatePost(ctx context.Context, params CreatePostParams) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	imageURLs := params.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	p := Post{
		ID:          uuid.New().String(),
		CommunityID: params.CommunityID,
		UserID:      params.UserID,
		Content:     params.Content,
		ImageURLs:   imageURLs,
		CreatedAt:   time.Now().UTC(),
	}
	s.posts = append(s.posts, p)
	return &p, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context, params ListPostsParams) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []Post
	for _, p := range s.posts {
		if params.CommunityID == "" || p.CommunityID == params.CommunityID {
			filtered = append(filtered, p)
		}
	}
	// Newest first; insertion order breaks created-at ties
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if params.Offset >= len(filtered) {
		return nil, nil
	}
	end := params.Offset + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[params.Offset:end], nil
}

func (s *MemoryStore) GetPostByID(ctx context.Context, id string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) LikePost(ctx context.Context, postID, userID string) (LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.likes[postID][userID]; ok {
		return LikeExists, nil
	}
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[string]time.Time)
	}
	s.likes[postID][userID] = time.Now().UTC()
	return LikeCreated, nil
}

func (s *MemoryStore) UnlikePost(ctx context.Context, postID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.likes[postID][userID]; !ok {
		return false, nil
	}
	delete(s.likes[postID], userID)
	return true, nil
}

func (s *MemoryStore) CountLikes(ctx context.Context, postIDs []string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, postID := range postIDs {
		if n := len(s.likes[postID]); n > 0 {
			counts[postID] = n
		}
	}
	return counts, nil
}

func (s *MemoryStore) GetLikedPostIDs(ctx context.Context, postIDs []string, userID string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := make(map[string]struct{})
	for _, postID := range postIDs {
		if _, ok := s.likes[postID][userID]; ok {
			liked[postID] = struct{}{}
		}
	}
	return liked, nil
}
