package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/orion/backend/internal/models"
)

func TestPostRepository_CreatePrepends(t *testing.T) {
	c, _ := newTestCollections(t)
	repo := NewStorePostRepository(c)
	ctx := context.Background()

	first := &models.Post{UserID: "u1", Caption: "first"}
	second := &models.Post{UserID: "u1", Caption: "second"}
	require.NoError(t, repo.CreatePost(ctx, first))
	require.NoError(t, repo.CreatePost(ctx, second))

	posts, err := repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Caption)
	assert.Equal(t, []string{}, posts[0].Likes)
	assert.Equal(t, []models.Comment{}, posts[0].Comments)
	assert.False(t, posts[0].CreatedAt.IsZero())
}

func TestPostRepository_ToggleLike(t *testing.T) {
	c, _ := newTestCollections(t)
	repo := NewStorePostRepository(c)
	ctx := context.Background()
	post := &models.Post{UserID: "u1"}
	require.NoError(t, repo.CreatePost(ctx, post))

	liked, err := repo.ToggleLike(ctx, post.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.Likes)

	liked, err = repo.ToggleLike(ctx, post.ID, "u2")
	require.NoError(t, err)
	assert.False(t, liked)

	got, _ = repo.GetPostByID(ctx, post.ID)
	assert.Empty(t, got.Likes)
}

func TestPostRepository_MissingTargetsAreSilent(t *testing.T) {
	c, store := newTestCollections(t)
	repo := NewStorePostRepository(c)
	ctx := context.Background()
	require.NoError(t, repo.CreatePost(ctx, &models.Post{UserID: "u1"}))
	before, _, _ := store.Get(ctx, PostsKey)

	liked, err := repo.ToggleLike(ctx, "nope", "u2")
	require.NoError(t, err)
	assert.False(t, liked)

	added, err := repo.AddComment(ctx, "nope", &models.Comment{UserID: "u2", Text: "hi"})
	require.NoError(t, err)
	assert.False(t, added)

	after, _, _ := store.Get(ctx, PostsKey)
	assert.Equal(t, before, after)
}

func TestPostRepository_AddComment(t *testing.T) {
	c, _ := newTestCollections(t)
	repo := NewStorePostRepository(c)
	ctx := context.Background()
	post := &models.Post{UserID: "u1"}
	require.NoError(t, repo.CreatePost(ctx, post))

	comment := &models.Comment{UserID: "u2", Text: "nice"}
	added, err := repo.AddComment(ctx, post.ID, comment)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NotEmpty(t, comment.ID)

	got, _ := repo.GetPostByID(ctx, post.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "nice", got.Comments[0].Text)
}

func TestReelRepository_LikesAndComments(t *testing.T) {
	c, _ := newTestCollections(t)
	repo := NewStoreReelRepository(c)
	ctx := context.Background()
	reel := &models.Reel{UserID: "u1", Desc: "orbit"}
	require.NoError(t, repo.CreateReel(ctx, reel))

	liked, err := repo.ToggleLike(ctx, reel.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.IncrementCommentsCount(ctx, reel.ID))
	require.NoError(t, repo.IncrementCommentsCount(ctx, reel.ID))
	require.NoError(t, repo.IncrementCommentsCount(ctx, "nope"))

	got, err := repo.GetReelByID(ctx, reel.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Comments)
	assert.Equal(t, []string{"u2"}, got.Likes)
}
