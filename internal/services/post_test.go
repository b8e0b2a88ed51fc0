package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_ListPostsHydrates(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ada := f.register(t, "ada")
	bob := f.register(t, "bob")

	post, err := f.posts.CreatePost(ctx, ada.ID, "first light", "https://img/1.png", "")
	require.NoError(t, err)
	added, err := f.posts.AddComment(ctx, bob.ID, post.ID, "stunning")
	require.NoError(t, err)
	assert.True(t, added)

	f.now = f.now.Add(90 * time.Second)

	views, err := f.posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, ada.ID, v.User.ID)
	assert.Empty(t, v.User.Password)
	assert.Equal(t, "1m", v.TimeAgo)
	require.Len(t, v.Comments, 1)
	require.NotNil(t, v.Comments[0].User)
	assert.Equal(t, bob.ID, v.Comments[0].User.ID)
	assert.Empty(t, v.Comments[0].User.Password)
}

func TestPostService_UnknownAuthor(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.posts.CreatePost(ctx, "ghost", "orphan", "https://img/2.png", "")
	require.NoError(t, err)

	views, err := f.posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "unknown", views[0].User.ID)
	assert.Equal(t, "@unknown", views[0].User.Handle)
}

func TestPostService_ToggleLikeTwiceRestores(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ada := f.register(t, "ada")
	post, err := f.posts.CreatePost(ctx, ada.ID, "", "https://img/1.png", "")
	require.NoError(t, err)

	liked, err := f.posts.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = f.posts.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err := f.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	_, err = f.posts.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReelService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ada := f.register(t, "ada")

	reel, err := f.reels.CreateReel(ctx, ada.ID, "orbit", "https://cdn/v.mp4", "Starman", true)
	require.NoError(t, err)
	_, err = f.reels.CreateReel(ctx, "ghost", "lost", "https://cdn/w.mp4", "", true)
	require.NoError(t, err)
	require.NoError(t, f.reels.AddComment(ctx, reel.ID))

	views, err := f.reels.ListReels(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Unknown", views[0].User)
	assert.Empty(t, views[0].UserAvatar)
	assert.Equal(t, "ada", views[1].User)
	assert.Equal(t, ada.Avatar, views[1].UserAvatar)
	assert.Equal(t, 1, views[1].Comments)
}
