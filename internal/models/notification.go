package models

import "time"

// NotificationType discriminates the four notification kinds.
type NotificationType string

const (
	NotificationMention NotificationType = "mention"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification is a fan-out record stored in the recipient's list.
// Which optional fields are set depends on Type; construct through the
// New*Notification helpers so each kind carries exactly its field subset.
type Notification struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"` // recipient
	Type           NotificationType `json:"type"`
	FromUserID     string           `json:"from_user_id"`
	FromUserName   string           `json:"from_user_name"`
	FromUserAvatar string           `json:"from_user_avatar,omitempty"`
	PostID         string           `json:"post_id,omitempty"`    // mention, like, comment
	CommentID      string           `json:"comment_id,omitempty"` // comment, comment-mention
	Content        string           `json:"content,omitempty"`    // comment/mention body excerpt
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
}

func newNotification(kind NotificationType, recipientID string, actor *User) Notification {
	return Notification{
		ID:             NewID(),
		UserID:         recipientID,
		Type:           kind,
		FromUserID:     actor.ID,
		FromUserName:   actor.Name,
		FromUserAvatar: actor.Avatar,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewLikeNotification records that actor liked the recipient's post.
func NewLikeNotification(recipientID string, actor *User, postID string) Notification {
	n := newNotification(NotificationLike, recipientID, actor)
	n.PostID = postID
	return n
}

// NewCommentNotification records a new comment on the recipient's post.
func NewCommentNotification(recipientID string, actor *User, postID, commentID, content string) Notification {
	n := newNotification(NotificationComment, recipientID, actor)
	n.PostID = postID
	n.CommentID = commentID
	n.Content = content
	return n
}

// NewFollowNotification records that actor started following the recipient.
func NewFollowNotification(recipientID string, actor *User) Notification {
	return newNotification(NotificationFollow, recipientID, actor)
}

// NewMentionNotification records an @mention of the recipient. commentID is
// empty when the mention came from a post body.
func NewMentionNotification(recipientID string, actor *User, postID, commentID, content string) Notification {
	n := newNotification(NotificationMention, recipientID, actor)
	n.PostID = postID
	n.CommentID = commentID
	n.Content = content
	return n
}
