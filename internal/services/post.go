package services

import (
	"context"
	"fmt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
)

// PostService handles post creation, engagement and the hydrated feed
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	clock Clock
}

// NewPostService creates a new post service
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, clock Clock) *PostService {
	return &PostService{posts: posts, users: users, clock: clock}
}

// CreatePost stores a post at the head of the feed with no likes or comments.
func (s *PostService) CreatePost(ctx context.Context, userID, caption, imageURL, song string) (*models.Post, error) {
	post := &models.Post{
		UserID:    userID,
		Caption:   caption,
		ImageURL:  imageURL,
		Song:      song,
		CreatedAt: s.clock.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return post, nil
}

// ToggleLike flips userID in the post's likes. A missing post is ignored.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	return s.posts.ToggleLike(ctx, postID, userID)
}

// AddComment appends a comment; it reports false when the post does not exist.
// Blank text is rejected by callers.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) (bool, error) {
	comment := &models.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: s.clock.now(),
	}
	return s.posts.AddComment(ctx, postID, comment)
}

// ListPosts returns every post joined with its author and commenters.
func (s *PostService) ListPosts(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	dir := newDirectory(users)
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, dir.hydratePost(p, s.clock))
	}
	return views, nil
}
