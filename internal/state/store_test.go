package state

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/pkg/kvstore"
	"github.com/anonto42/orion/backend/pkg/media"
)

type harness struct {
	store   *Store
	kv      *kvstore.MemoryStore
	users   *repositories.StoreUserRepository
	posts   *repositories.StorePostRepository
	notifs  *repositories.StoreNotificationRepository
	postSvc *services.PostService
	reelSvc *services.ReelService
	media   *media.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithPosts(t, nil)
}

// newHarnessWithPosts lets a test wrap the post repository the services read through.
func newHarnessWithPosts(t *testing.T, wrap func(repositories.PostRepository) repositories.PostRepository) *harness {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	c := repositories.NewCollections(kv)
	session := repositories.NewCollections(kvstore.NewMemoryStore())

	h := &harness{
		kv:     kv,
		users:  repositories.NewStoreUserRepository(c),
		posts:  repositories.NewStorePostRepository(c),
		notifs: repositories.NewStoreNotificationRepository(c),
		media:  media.NewService(nil, nil),
	}
	var posts repositories.PostRepository = h.posts
	if wrap != nil {
		posts = wrap(posts)
	}
	h.postSvc = services.NewPostService(posts, h.users, nil)
	h.reelSvc = services.NewReelService(repositories.NewStoreReelRepository(c), h.users)

	h.store = New(Deps{
		Auth:          services.NewAuthService(h.users, repositories.NewStoreSessionRepository(c)),
		Users:         services.NewUserService(h.users),
		Posts:         h.postSvc,
		Reels:         h.reelSvc,
		Notifications: services.NewNotificationService(h.notifs, h.users, nil, nil),
		Stories:       services.NewStoryService(repositories.NewStoreStoryRepository(session), h.users, nil),
		Media:         h.media,
		ShareBaseURL:  "https://orion.app/",
	})
	return h
}

// seedUser stores a user directly so tests do not pay for password hashing twice.
func (h *harness) seedUser(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Handle: "@" + name, Email: name + "@orion.dev"}
	require.NoError(t, h.users.CreateUser(context.Background(), u))
	return u
}

func (h *harness) signup(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := h.store.Signup(context.Background(), models.RegisterRequest{
		Name: name, Handle: name, Email: name + "@orion.dev", Password: "pw-" + name,
	})
	require.NoError(t, err)
	return u
}

func TestStore_SignedOutActionsAreRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.store.TogglePostLike(ctx, "p1"), ErrNotAuthenticated)
	_, err := h.store.ToggleFollow(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.store.AddPost(ctx, "hi", media.File{}, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, h.store.IsAuthenticated())
}

func TestStore_LikeNotifiesAuthorOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u1 := h.seedUser(t, "ada")
	post, err := h.postSvc.CreatePost(ctx, u1.ID, "nebula", "https://img/n.png", "")
	require.NoError(t, err)
	require.Empty(t, post.Likes)

	u2 := h.signup(t, "bob")
	require.Len(t, h.store.Feed(), 1)

	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))

	stored, err := h.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u2.ID}, stored.Likes)

	notifs, err := h.notifs.GetByRecipientID(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, u2.ID, notifs[0].SenderID)
	assert.Equal(t, models.NotificationLike, notifs[0].Type)
	assert.Equal(t, post.ID, notifs[0].ContentID)

	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))

	stored, _ = h.posts.GetPostByID(ctx, post.ID)
	assert.Empty(t, stored.Likes)
	notifs, _ = h.notifs.GetByRecipientID(ctx, u1.ID)
	assert.Len(t, notifs, 1)

	// liking again after unliking is deduplicated
	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))
	notifs, _ = h.notifs.GetByRecipientID(ctx, u1.ID)
	assert.Len(t, notifs, 1)
}

func TestStore_LikeOwnPostDoesNotNotify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	me := h.signup(t, "ada")

	post, err := h.store.AddPost(ctx, "selfie", media.File{Name: "a.png", ContentType: "image/png"}, "")
	require.NoError(t, err)
	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))

	feed := h.store.Feed()
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsLiked)
	assert.Equal(t, []string{me.ID}, feed[0].Likes)

	notifs, _ := h.notifs.GetByRecipientID(ctx, me.ID)
	assert.Empty(t, notifs)
}

func TestStore_OptimisticLikeVisibleBeforeRefresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.seedUser(t, "ada")
	post, _ := h.postSvc.CreatePost(ctx, author.ID, "", "https://img/1.png", "")
	h.signup(t, "bob")

	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))
	feed := h.store.Feed()
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsLiked)
	assert.Len(t, feed[0].Likes, 1)
}

func TestStore_StaleRefetchIsDiscarded(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.seedUser(t, "ada")
	post, _ := h.postSvc.CreatePost(ctx, author.ID, "", "https://img/1.png", "")
	h.signup(t, "bob")

	// a refetch starts before the optimistic like
	h.store.mu.RLock()
	startRev := h.store.rev.feed
	h.store.mu.RUnlock()
	stale, err := h.postSvc.ListPosts(ctx)
	require.NoError(t, err)

	require.NoError(t, h.store.TogglePostLike(ctx, post.ID))
	assert.False(t, h.store.applyFeed(stale, startRev))

	feed := h.store.Feed()
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsLiked, "stale refetch must not undo the local like")

	require.NoError(t, h.store.RefreshData(ctx))
	assert.True(t, h.store.Feed()[0].IsLiked)
}

// likeDuringList runs hook once, right after the posts are read, the next time it is armed.
type likeDuringList struct {
	repositories.PostRepository
	hook func()
}

func (r *likeDuringList) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := r.PostRepository.GetAllPosts(ctx)
	if hook := r.hook; hook != nil {
		r.hook = nil
		hook()
	}
	return posts, err
}

func TestStore_AddPostSurvivesConcurrentLike(t *testing.T) {
	var repo *likeDuringList
	h := newHarnessWithPosts(t, func(p repositories.PostRepository) repositories.PostRepository {
		repo = &likeDuringList{PostRepository: p}
		return repo
	})
	ctx := context.Background()
	author := h.seedUser(t, "ada")
	older, err := h.postSvc.CreatePost(ctx, author.ID, "", "https://img/1.png", "")
	require.NoError(t, err)
	me := h.signup(t, "bob")
	require.Len(t, h.store.Feed(), 1)

	repo.hook = func() {
		require.NoError(t, h.store.TogglePostLike(ctx, older.ID))
	}

	created, err := h.store.AddPost(ctx, "fresh", media.File{Name: "a.png", ContentType: "image/png", Data: []byte("png")}, "")
	require.NoError(t, err)
	assert.Nil(t, repo.hook, "the like must have interleaved with the refresh")

	feed := h.store.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, created.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	assert.True(t, feed[1].IsLiked)
	assert.Equal(t, []string{me.ID}, feed[1].Likes)
}

func TestStore_SaveSurvivesRefresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.seedUser(t, "ada")
	post, _ := h.postSvc.CreatePost(ctx, author.ID, "", "https://img/1.png", "")
	h.signup(t, "bob")

	assert.True(t, h.store.TogglePostSave(post.ID))
	require.NoError(t, h.store.RefreshData(ctx))
	assert.True(t, h.store.Feed()[0].IsSaved)

	assert.False(t, h.store.TogglePostSave(post.ID))
	assert.False(t, h.store.Feed()[0].IsSaved)
}

func TestStore_ToggleFollowNotifiesAndReconciles(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	target := h.seedUser(t, "ada")
	me := h.signup(t, "bob")

	following, err := h.store.ToggleFollow(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.True(t, h.store.IsFollowing(target.ID))

	notifs, _ := h.notifs.GetByRecipientID(ctx, target.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationFollow, notifs[0].Type)
	assert.Equal(t, me.ID, notifs[0].SenderID)

	following, err = h.store.ToggleFollow(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, h.store.IsFollowing(target.ID))

	// unknown targets are rolled back from the optimistic follow-set
	following, err = h.store.ToggleFollow(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, h.store.IsFollowing("ghost"))
}

func TestStore_CommentOnPost(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.seedUser(t, "ada")
	post, _ := h.postSvc.CreatePost(ctx, author.ID, "", "https://img/1.png", "")
	me := h.signup(t, "bob")

	assert.ErrorIs(t, h.store.CommentOnPost(ctx, post.ID, "   "), ErrEmptyComment)

	require.NoError(t, h.store.CommentOnPost(ctx, post.ID, "Beautiful"))

	feed := h.store.Feed()
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "Beautiful", feed[0].Comments[0].Text)
	require.NotNil(t, feed[0].Comments[0].User)
	assert.Equal(t, me.ID, feed[0].Comments[0].User.ID)

	notifs, _ := h.notifs.GetByRecipientID(ctx, author.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationComment, notifs[0].Type)
	assert.Equal(t, "Beautiful", notifs[0].Preview)

	// missing posts are ignored
	require.NoError(t, h.store.CommentOnPost(ctx, "missing", "hello"))
}

func TestStore_ReelsFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signup(t, "ada")

	reel, err := h.store.AddReel(ctx, "liftoff", media.File{Name: "generated_video.mp4", ContentType: "video/mp4", Data: []byte("v")}, "Starman")
	require.NoError(t, err)
	assert.True(t, reel.IsVideo)
	assert.True(t, strings.HasPrefix(reel.VideoURL, media.LocalPrefix))

	require.NoError(t, h.store.ToggleReelLike(ctx, reel.ID))
	require.NoError(t, h.store.CommentOnReel(ctx, reel.ID))
	assert.True(t, h.store.ToggleReelSave(reel.ID))

	reels := h.store.Reels()
	require.Len(t, reels, 1)
	assert.True(t, reels[0].IsLiked)
	assert.True(t, reels[0].IsSaved)
	assert.Equal(t, 1, reels[0].Comments)
	assert.Equal(t, "ada", reels[0].User)

	require.NoError(t, h.store.RefreshData(ctx))
	reels = h.store.Reels()
	assert.Equal(t, 1, reels[0].Comments)
	assert.True(t, reels[0].IsLiked)
	assert.True(t, reels[0].IsSaved)
}

func TestStore_FeedIsNewestFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.seedUser(t, "ada")

	older := &models.Post{UserID: author.ID, Caption: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Post{UserID: author.ID, Caption: "newer", CreatedAt: time.Now()}
	// stored out of order on purpose
	require.NoError(t, h.posts.CreatePost(ctx, newer))
	require.NoError(t, h.posts.CreatePost(ctx, older))

	h.signup(t, "bob")
	feed := h.store.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, "newer", feed[0].Caption)
}

func TestStore_LogoutResetsButKeepsData(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signup(t, "ada")

	_, err := h.store.AddPost(ctx, "kept", media.File{Name: "a.png"}, "")
	require.NoError(t, err)
	_, err = h.store.AddStory(ctx, media.File{Name: "s.png", ContentType: "image/png"})
	require.NoError(t, err)
	require.Len(t, h.store.Stories(), 1)

	require.NoError(t, h.store.Logout(ctx))

	snap := h.store.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.CurrentUser.ID)
	assert.Empty(t, snap.Feed)
	assert.Empty(t, snap.Stories)
	assert.Empty(t, snap.Following)

	_, found, err := h.kv.Get(ctx, repositories.AuthTokenKey)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = h.store.Login(ctx, "ada@orion.dev", "pw-ada")
	require.NoError(t, err)
	assert.Len(t, h.store.Feed(), 1)
	assert.Empty(t, h.store.Stories())
}

func TestStore_InitRestoresSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ada := h.seedUser(t, "ada")
	bob := h.seedUser(t, "bob")
	_, err := h.users.ToggleFollow(ctx, ada.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, h.store.Init(ctx))
	assert.False(t, h.store.IsAuthenticated())

	require.NoError(t, h.kv.Set(ctx, repositories.AuthTokenKey, []byte(ada.ID)))
	require.NoError(t, h.store.Init(ctx))

	user, ok := h.store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, ada.ID, user.ID)
	assert.True(t, h.store.IsFollowing(bob.ID))
}

func TestStore_Notifications(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ada := h.signup(t, "ada")
	bob := h.seedUser(t, "bob")

	_, err := h.notifs.CreateNotification(ctx, &models.Notification{
		RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationFollow,
	})
	require.NoError(t, err)
	require.NoError(t, h.store.RefreshData(ctx))

	snap := h.store.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, 1, snap.UnreadCount)
	require.NotNil(t, snap.Notifications[0].Sender)
	assert.Equal(t, bob.ID, snap.Notifications[0].Sender.ID)

	require.NoError(t, h.store.MarkNotificationsRead(ctx))
	assert.Equal(t, 0, h.store.Snapshot().UnreadCount)

	count, err := h.notifs.GetUnreadCount(ctx, ada.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_StoriesFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	me := h.signup(t, "ada")

	story, err := h.store.AddStory(ctx, media.File{Name: "s.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(story.ImageURL, media.LocalPrefix))

	stories := h.store.Stories()
	require.Len(t, stories, 1)
	require.NotNil(t, stories[0].User)
	assert.Equal(t, me.ID, stories[0].User.ID)

	require.NoError(t, h.store.MarkStoryViewed(ctx, story.ID))
	assert.True(t, h.store.Stories()[0].IsViewed)

	require.NoError(t, h.store.DeleteStory(ctx, story.ID))
	assert.Empty(t, h.store.Stories())
}

func TestStore_UpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signup(t, "ada")

	bio := "Orbiting"
	updated, err := h.store.UpdateProfile(ctx, models.UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Orbiting", updated.Bio)

	user, _ := h.store.CurrentUser()
	assert.Equal(t, "Orbiting", user.Bio)
	assert.Empty(t, user.Password)
}

func TestStore_ShareLink(t *testing.T) {
	h := newHarness(t)

	link, err := h.store.ShareLink("post", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://orion.app/post/abc123", link)

	link, err = h.store.ShareLink("reel", "r1")
	require.NoError(t, err)
	assert.Equal(t, "https://orion.app/reel/r1", link)

	_, err = h.store.ShareLink("story", "s1")
	assert.ErrorIs(t, err, ErrInvalidShareKind)
}
