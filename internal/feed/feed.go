package feed

import (
	"strings"

	"github.com/rooming-app/rooming/internal/models"
)

// Type selects between the global feed and the social-graph-filtered feed.
type Type string

const (
	TypeAll       Type = "all"
	TypeFollowing Type = "following"
)

// ParseType maps a query value onto a feed type, defaulting to all.
func ParseType(value string) Type {
	if value == string(TypeFollowing) {
		return TypeFollowing
	}
	return TypeAll
}

// Filtered derives the visible post set for a viewer. It is a pure function
// of its inputs: posts are never mutated and their order is preserved
// (newest first, as the repository keeps them).
//
// The following feed is empty for anonymous viewers and for viewers who
// follow nobody; otherwise it includes the viewer's own posts alongside
// posts from followed users.
func Filtered(viewerID string, feedType Type, following []string, posts []models.Post) []models.Post {
	if feedType != TypeFollowing {
		return posts
	}
	if viewerID == "" || len(following) == 0 {
		return nil
	}

	followed := make(map[string]struct{}, len(following)+1)
	for _, id := range following {
		followed[strings.TrimSpace(id)] = struct{}{}
	}
	followed[strings.TrimSpace(viewerID)] = struct{}{}

	var visible []models.Post
	for _, post := range posts {
		if _, ok := followed[strings.TrimSpace(post.UserID)]; ok {
			visible = append(visible, post)
		}
	}
	return visible
}
