package notify

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/metrics"
	"github.com/rooming-app/rooming/internal/models"
)

const notificationsPrefix = "notifications-"

// Pusher delivers a freshly fanned-out notification to the recipient's live
// connections. Delivery is best effort; the stored list is the source of
// truth.
type Pusher interface {
	Push(userID string, notification models.Notification)
}

// Service writes notifications into each recipient's stored list. Every
// event fans out to the target user's list, never the actor's, and
// self-notification is suppressed on all paths.
type Service struct {
	store  kv.Store
	mu     sync.Mutex
	pusher Pusher
}

// NewService creates the fan-out service.
func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// SetPusher attaches a real-time delivery channel. Optional.
func (s *Service) SetPusher(pusher Pusher) {
	s.pusher = pusher
}

func (s *Service) load(ctx context.Context, userID string) []models.Notification {
	raw, ok, err := s.store.Get(ctx, notificationsPrefix+userID)
	if err != nil {
		logger.Log.Warn("Failed to read notifications",
			logger.WithUserID(userID),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return nil
	}

	var list []models.Notification
	if err := json.Unmarshal(raw, &list); err != nil {
		logger.Log.Warn("Malformed notification list, treating as empty",
			logger.WithUserID(userID),
			zap.Error(err),
		)
		return nil
	}
	return list
}

func (s *Service) save(ctx context.Context, userID string, list []models.Notification) error {
	if list == nil {
		list = []models.Notification{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, notificationsPrefix+userID, raw)
}

// deliver prepends the notification to the recipient's list and pushes it to
// live connections when a pusher is attached.
func (s *Service) deliver(ctx context.Context, n models.Notification) {
	s.mu.Lock()
	list := append([]models.Notification{n}, s.load(ctx, n.UserID)...)
	err := s.save(ctx, n.UserID, list)
	s.mu.Unlock()

	if err != nil {
		logger.Log.Warn("Failed to persist notification",
			logger.WithUserID(n.UserID),
			zap.Error(err),
		)
		return
	}

	metrics.Get().NotificationsFannedOut.WithLabelValues(string(n.Type)).Inc()

	if s.pusher != nil {
		s.pusher.Push(n.UserID, n)
	}
}

// OnLike notifies the post author that actor liked their post.
func (s *Service) OnLike(ctx context.Context, post *models.Post, actor *models.User) {
	if post.UserID == actor.ID {
		return
	}
	s.deliver(ctx, models.NewLikeNotification(post.UserID, actor, post.ID))
}

// OnComment notifies the post author about a new comment.
func (s *Service) OnComment(ctx context.Context, post *models.Post, actor *models.User, comment *models.Comment) {
	if post.UserID == actor.ID {
		return
	}
	s.deliver(ctx, models.NewCommentNotification(post.UserID, actor, post.ID, comment.ID, comment.Content))
}

// OnFollow notifies target that actor followed them.
func (s *Service) OnFollow(ctx context.Context, actor *models.User, targetID string) {
	if targetID == actor.ID {
		return
	}
	s.deliver(ctx, models.NewFollowNotification(targetID, actor))
}

// OnMention notifies each mentioned user exactly once per text body.
// mentionedIDs is already deduplicated and actor-free (the resolver's
// contract); the guard here keeps a bad caller from self-notifying.
// commentID is empty for mentions in a post body.
func (s *Service) OnMention(ctx context.Context, actor *models.User, mentionedIDs []string, postID, commentID, content string) {
	for _, recipientID := range mentionedIDs {
		if recipientID == actor.ID {
			continue
		}
		s.deliver(ctx, models.NewMentionNotification(recipientID, actor, postID, commentID, content))
	}
}

// List returns the user's notifications, newest first.
func (s *Service) List(ctx context.Context, userID string) []models.Notification {
	list := s.load(ctx, userID)
	if list == nil {
		return []models.Notification{}
	}
	return list
}

// MarkRead flags one notification as read. Unknown ids are a no-op.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx, userID)
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return s.save(ctx, userID, list)
		}
	}
	return nil
}

// MarkAllRead flags every notification as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx, userID)
	for i := range list {
		list[i].Read = true
	}
	return s.save(ctx, userID, list)
}

// UnreadCount counts unread notifications; a malformed stored list counts
// as zero.
func (s *Service) UnreadCount(ctx context.Context, userID string) int {
	count := 0
	for _, n := range s.load(ctx, userID) {
		if !n.Read {
			count++
		}
	}
	return count
}
