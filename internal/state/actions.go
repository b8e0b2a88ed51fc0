package state

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/pkg/media"
)

// generatedVideoName is the file name the AI video flow gives its output. Such files
// are kept local instead of being uploaded again.
const generatedVideoName = "generated_video.mp4"

// TogglePostLike flips the like in the snapshot first, then persists it. A LIKE
// notification goes to the author when the like was added by someone else.
func (s *Store) TogglePostLike(ctx context.Context, postID string) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	userID := s.currentUser.ID

	var authorID, imageURL string
	for i := range s.feed {
		p := &s.feed[i]
		if p.ID != postID {
			continue
		}
		p.Likes, p.IsLiked = toggleMember(p.Likes, userID)
		authorID, imageURL = p.UserID, p.ImageURL
		s.rev.feed++
		break
	}
	s.mu.Unlock()

	liked, err := s.deps.Posts.ToggleLike(ctx, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to toggle post like: %w", err)
	}
	if !liked {
		return nil
	}

	if authorID == "" {
		post, err := s.deps.Posts.GetPost(ctx, postID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return nil
			}
			return err
		}
		authorID, imageURL = post.UserID, post.ImageURL
	}
	if authorID == userID {
		return nil
	}

	if _, err := s.deps.Notifications.Create(ctx, authorID, userID, models.NotificationLike, postID, imageURL); err != nil {
		return err
	}
	return nil
}

func (s *Store) ToggleReelLike(ctx context.Context, reelID string) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	userID := s.currentUser.ID
	for i := range s.reels {
		r := &s.reels[i]
		if r.ID == reelID {
			r.Likes, r.IsLiked = toggleMember(r.Likes, userID)
			s.rev.reels++
			break
		}
	}
	s.mu.Unlock()

	if _, err := s.deps.Reels.ToggleLike(ctx, userID, reelID); err != nil {
		return fmt.Errorf("failed to toggle reel like: %w", err)
	}
	return nil
}

// TogglePostSave flips the session-local saved flag. Saves are never persisted.
func (s *Store) TogglePostSave(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := toggleSet(s.savedPosts, postID)
	for i := range s.feed {
		if s.feed[i].ID == postID {
			s.feed[i].IsSaved = saved
		}
	}
	return saved
}

func (s *Store) ToggleReelSave(reelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := toggleSet(s.savedReels, reelID)
	for i := range s.reels {
		if s.reels[i].ID == reelID {
			s.reels[i].IsSaved = saved
		}
	}
	return saved
}

func toggleSet(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

// ToggleFollow flips the follow-set first, then persists the edge and reconciles the
// set with the stored result. Following someone notifies them.
func (s *Store) ToggleFollow(ctx context.Context, targetUserID string) (bool, error) {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return false, ErrNotAuthenticated
	}
	userID := s.currentUser.ID
	toggleSet(s.following, targetUserID)
	s.mu.Unlock()

	following, err := s.deps.Users.ToggleFollow(ctx, userID, targetUserID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.authenticated && s.currentUser.ID == userID {
		if following {
			s.following[targetUserID] = struct{}{}
		} else {
			delete(s.following, targetUserID)
		}
		s.currentUser.Following = followingList(s.following)
	}
	s.mu.Unlock()

	if following {
		if _, err := s.deps.Notifications.Create(ctx, targetUserID, userID, models.NotificationFollow, "", ""); err != nil {
			return following, err
		}
	}
	return following, nil
}

func followingList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// IsFollowing answers from the cached follow-set.
func (s *Store) IsFollowing(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.following[userID]
	return ok
}

// CommentOnPost persists a comment, notifies a non-self author and reloads.
func (s *Store) CommentOnPost(ctx context.Context, postID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}
	userID, err := s.session()
	if err != nil {
		return err
	}

	added, err := s.deps.Posts.AddComment(ctx, userID, postID, text)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	if added {
		post, err := s.deps.Posts.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			if _, err := s.deps.Notifications.Create(ctx, post.UserID, userID, models.NotificationComment, postID, text); err != nil {
				return err
			}
		}
	}

	return s.RefreshData(ctx)
}

// CommentOnReel bumps the reel's comment counter locally and in storage.
func (s *Store) CommentOnReel(ctx context.Context, reelID string) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	for i := range s.reels {
		if s.reels[i].ID == reelID {
			s.reels[i].Comments++
			s.rev.reels++
			break
		}
	}
	s.mu.Unlock()

	if err := s.deps.Reels.AddComment(ctx, reelID); err != nil {
		return fmt.Errorf("failed to count reel comment: %w", err)
	}
	return nil
}

// AddPost uploads the image and stores the post, then reloads.
func (s *Store) AddPost(ctx context.Context, caption string, image media.File, song string) (*models.Post, error) {
	userID, err := s.session()
	if err != nil {
		return nil, err
	}

	imageURL := s.deps.Media.Upload(ctx, image)
	post, err := s.deps.Posts.CreatePost(ctx, userID, caption, imageURL, song)
	if err != nil {
		return nil, err
	}

	if err := s.RefreshData(ctx); err != nil {
		log.Warn().Err(err).Msg("Refresh after new post failed")
	}
	return post, nil
}

// AddReel stores a reel. Generated videos stay local; everything else is uploaded.
func (s *Store) AddReel(ctx context.Context, caption string, file media.File, song string) (*models.Reel, error) {
	userID, err := s.session()
	if err != nil {
		return nil, err
	}

	var mediaURL string
	if file.Name == generatedVideoName {
		mediaURL = s.deps.Media.StoreLocal(file)
	} else {
		mediaURL = s.deps.Media.Upload(ctx, file)
	}

	reel, err := s.deps.Reels.CreateReel(ctx, userID, caption, mediaURL, song, file.IsVideo())
	if err != nil {
		return nil, err
	}

	if err := s.RefreshData(ctx); err != nil {
		log.Warn().Err(err).Msg("Refresh after new reel failed")
	}
	return reel, nil
}

// AddStory keeps the image local and records a session-only story.
func (s *Store) AddStory(ctx context.Context, image media.File) (*models.Story, error) {
	userID, err := s.session()
	if err != nil {
		return nil, err
	}

	story, err := s.deps.Stories.CreateStory(ctx, userID, s.deps.Media.StoreLocal(image))
	if err != nil {
		return nil, err
	}
	return story, s.reloadStories(ctx)
}

func (s *Store) DeleteStory(ctx context.Context, storyID string) error {
	if _, err := s.session(); err != nil {
		return err
	}
	if err := s.deps.Stories.DeleteStory(ctx, storyID); err != nil {
		return err
	}
	return s.reloadStories(ctx)
}

func (s *Store) MarkStoryViewed(ctx context.Context, storyID string) error {
	if _, err := s.session(); err != nil {
		return err
	}
	if err := s.deps.Stories.MarkViewed(ctx, storyID); err != nil {
		return err
	}
	return s.reloadStories(ctx)
}

func (s *Store) reloadStories(ctx context.Context) error {
	stories, err := s.deps.Stories.ListStories(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stories = stories
	s.mu.Unlock()
	return nil
}

// MarkNotificationsRead persists the read state and mirrors it in the snapshot.
func (s *Store) MarkNotificationsRead(ctx context.Context) error {
	userID, err := s.session()
	if err != nil {
		return err
	}
	if err := s.deps.Notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	s.rev.notifications++
	s.mu.Unlock()
	return nil
}

func (s *Store) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.deps.Users.SearchUsers(ctx, query)
}

func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.deps.Users.GetUser(ctx, userID)
}
