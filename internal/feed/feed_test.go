package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rooming-app/rooming/internal/models"
)

func postBy(userID, title string) models.Post {
	return models.Post{ID: title, UserID: userID, Title: title}
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeAll, ParseType(""))
	assert.Equal(t, TypeAll, ParseType("all"))
	assert.Equal(t, TypeAll, ParseType("garbage"))
	assert.Equal(t, TypeFollowing, ParseType("following"))
}

func TestFilteredAllReturnsEverything(t *testing.T) {
	posts := []models.Post{postBy("a", "p1"), postBy("b", "p2")}

	visible := Filtered("viewer", TypeAll, nil, posts)
	assert.Equal(t, posts, visible)
}

func TestFilteredFollowingEmptyWhenFollowingNobody(t *testing.T) {
	posts := []models.Post{postBy("viewer", "own"), postBy("b", "p2")}

	assert.Nil(t, Filtered("viewer", TypeFollowing, nil, posts))
	assert.Nil(t, Filtered("", TypeFollowing, []string{"b"}, posts))
}

func TestFilteredFollowingIncludesOwnPosts(t *testing.T) {
	posts := []models.Post{
		postBy("viewer", "own"),
		postBy("followed", "theirs"),
		postBy("stranger", "hidden"),
	}

	visible := Filtered("viewer", TypeFollowing, []string{"followed"}, posts)
	titles := make([]string, 0, len(visible))
	for _, post := range visible {
		titles = append(titles, post.Title)
	}
	assert.Equal(t, []string{"own", "theirs"}, titles)
}

func TestFilteredPreservesOrder(t *testing.T) {
	posts := []models.Post{
		postBy("a", "newest"),
		postBy("b", "middle"),
		postBy("a", "oldest"),
	}

	visible := Filtered("viewer", TypeFollowing, []string{"a", "b"}, posts)
	assert.Equal(t, "newest", visible[0].Title)
	assert.Equal(t, "middle", visible[1].Title)
	assert.Equal(t, "oldest", visible[2].Title)
}

func TestFilteredTrimsWhitespaceIDs(t *testing.T) {
	posts := []models.Post{postBy("followed", "p")}

	visible := Filtered("viewer", TypeFollowing, []string{" followed "}, posts)
	assert.Len(t, visible, 1)
}
