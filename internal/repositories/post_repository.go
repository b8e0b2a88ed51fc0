package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ids"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	AddComment(ctx context.Context, postID string, comment *models.Comment) (bool, error)
}

// StorePostRepository implements PostRepository over the posts collection
type StorePostRepository struct {
	posts *Collection[models.Post]
}

// NewStorePostRepository creates a new StorePostRepository
func NewStorePostRepository(c *Collections) *StorePostRepository {
	return &StorePostRepository{posts: Open[models.Post](c, PostsKey)}
}

// CreatePost puts a new post at the head of the collection with empty engagement
func (r *StorePostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = ids.New()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.Likes = []string{}
	post.Comments = []models.Comment{}

	return r.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		return append([]models.Post{*post}, posts...), nil
	})
}

// GetPostByID retrieves a post by ID
func (r *StorePostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.posts.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetAllPosts retrieves every post, most recent first
func (r *StorePostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.posts.ReadAll(ctx)
}

// ToggleLike flips userID's like on the post and reports whether the post is now liked.
// An unknown post is left alone and reported as not liked.
func (r *StorePostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked := false
	err := r.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		idx := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == postID })
		if idx == -1 {
			return nil, ErrSkipWrite
		}
		posts[idx].Likes, liked = toggleID(posts[idx].Likes, userID)
		return posts, nil
	})
	return liked, err
}

// AddComment appends comment to the post. It reports false, without error, when the post does not exist.
func (r *StorePostRepository) AddComment(ctx context.Context, postID string, comment *models.Comment) (bool, error) {
	if comment.ID == "" {
		comment.ID = ids.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	added := false
	err := r.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		idx := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == postID })
		if idx == -1 {
			return nil, ErrSkipWrite
		}
		posts[idx].Comments = append(posts[idx].Comments, *comment)
		added = true
		return posts, nil
	})
	return added, err
}
