package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
	"github.com/anonto42/orion/backend/pkg/kvstore"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data any) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() {}

type fixture struct {
	store         *kvstore.MemoryStore
	users         *repositories.StoreUserRepository
	auth          *AuthService
	userSvc       *UserService
	posts         *PostService
	reels         *ReelService
	notifications *NotificationService
	stories       *StoryService
	now           time.Time
}

func newFixture(t *testing.T, publisher *MockPublisher) *fixture {
	t.Helper()

	f := &fixture{
		store: kvstore.NewMemoryStore(),
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := Clock(func() time.Time { return f.now })

	c := repositories.NewCollections(f.store)
	f.users = repositories.NewStoreUserRepository(c)
	f.auth = NewAuthService(f.users, repositories.NewStoreSessionRepository(c))
	f.auth.hashCost = bcrypt.MinCost
	f.userSvc = NewUserService(f.users)
	f.posts = NewPostService(repositories.NewStorePostRepository(c), f.users, clock)
	f.reels = NewReelService(repositories.NewStoreReelRepository(c), f.users)
	if publisher == nil {
		f.notifications = NewNotificationService(repositories.NewStoreNotificationRepository(c), f.users, nil, clock)
	} else {
		f.notifications = NewNotificationService(repositories.NewStoreNotificationRepository(c), f.users, publisher, clock)
	}
	f.stories = NewStoryService(repositories.NewStoreStoryRepository(c), f.users, clock)
	return f
}

func (f *fixture) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), models.RegisterRequest{
		Name:     name,
		Handle:   name,
		Email:    name + "@orion.dev",
		Password: "secret-" + name,
	})
	require.NoError(t, err)
	return u
}
