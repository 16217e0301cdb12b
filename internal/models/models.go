package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a Rooming account. IDs are UUIDs for native registrations and
// "{provider}-{providerUserID}" for OAuth accounts.
type User struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	ResidenceType string   `json:"residence_type,omitempty"`

	// Native auth only; never serialized to clients.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Post is a shared room photo set.
//
// UserName and UserAvatar are snapshots of the author taken at creation time;
// they deliberately do not follow later profile edits.
type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserAvatar  string    `json:"user_avatar,omitempty"`
	Images      []string  `json:"images"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	LikeCount   int       `json:"like_count"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// Comment on a Post. Author fields are creation-time snapshots like the
// post's. Edits happen in place and flip Edited.
type Comment struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name"`
	UserAvatar string     `json:"user_avatar,omitempty"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	Edited     bool       `json:"edited,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// PostUpdate is the partial-update payload for a post. Nil fields are left
// untouched.
type PostUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// NewID generates a fresh entity ID.
func NewID() string {
	return uuid.New().String()
}
