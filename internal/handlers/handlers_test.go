package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/mention"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/notify"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/social"
)

// HandlersTestSuite drives the API over an in-memory store. Requests
// authenticate with an X-User-ID header stand-in for the JWT middleware.
type HandlersTestSuite struct {
	suite.Suite
	store    kv.Store
	repo     *repository.Repository
	graph    *social.Graph
	notify   *notify.Service
	router   *gin.Engine
	handlers *Handlers

	alice models.User
	bob   models.User
}

func (suite *HandlersTestSuite) SetupTest() {
	logger.InitializeForTests()
	gin.SetMode(gin.TestMode)

	suite.store = kv.NewMemory()
	repo, err := repository.New(context.Background(), suite.store)
	require.NoError(suite.T(), err)
	suite.repo = repo

	suite.graph = social.NewGraph(suite.store)
	suite.notify = notify.NewService(suite.store)
	resolver := mention.NewResolver(repo, repo, repo, suite.graph)
	suite.handlers = NewHandlers(repo, suite.graph, suite.notify, resolver)

	suite.alice = suite.createUser("alice")
	suite.bob = suite.createUser("bob")

	suite.router = gin.New()
	suite.router.Use(suite.testAuthMiddleware())

	api := suite.router.Group("/api/v1")
	api.GET("/feed", suite.handlers.GetFeed)
	api.POST("/posts", suite.handlers.CreatePost)
	api.GET("/posts/:id", suite.handlers.GetPost)
	api.PUT("/posts/:id", suite.handlers.UpdatePost)
	api.DELETE("/posts/:id", suite.handlers.DeletePost)
	api.POST("/posts/:id/like", suite.handlers.ToggleLike)
	api.POST("/posts/:id/comments", suite.handlers.CreateComment)
	api.PUT("/posts/:id/comments/:commentID", suite.handlers.UpdateComment)
	api.DELETE("/posts/:id/comments/:commentID", suite.handlers.DeleteComment)
	api.GET("/users/:id/profile", suite.handlers.GetUserProfile)
	api.GET("/users/:id/posts", suite.handlers.GetUserPosts)
	api.GET("/users/:id/followers", suite.handlers.GetUserFollowers)
	api.GET("/users/:id/following", suite.handlers.GetUserFollowing)
	api.POST("/users/:id/follow", suite.handlers.FollowUser)
	api.DELETE("/users/:id/follow", suite.handlers.UnfollowUser)
	api.GET("/mentions/candidates", suite.handlers.GetMentionCandidates)
	api.POST("/mentions/parse", suite.handlers.ParseMentions)
	api.GET("/notifications", suite.handlers.GetNotifications)
	api.GET("/notifications/unread-count", suite.handlers.GetUnreadCount)
	api.POST("/notifications/:id/read", suite.handlers.MarkNotificationRead)
	api.POST("/notifications/read-all", suite.handlers.MarkAllNotificationsRead)
}

// testAuthMiddleware resolves X-User-ID into the context keys the real JWT
// middleware sets. Requests without the header stay anonymous.
func (suite *HandlersTestSuite) testAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			if user, err := suite.repo.UserByID(userID); err == nil {
				c.Set("user", user)
				c.Set("user_id", user.ID)
			}
		}
		c.Next()
	}
}

func (suite *HandlersTestSuite) createUser(name string) models.User {
	user := models.User{
		ID:        models.NewID(),
		Email:     name + "@example.com",
		Name:      name,
		Avatar:    "https://example.com/" + name + ".png",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(suite.T(), suite.repo.AddUser(context.Background(), user))
	return user
}

func (suite *HandlersTestSuite) request(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *HandlersTestSuite) createPost(author models.User, title, description string) models.Post {
	w := suite.request(http.MethodPost, "/api/v1/posts", author.ID, gin.H{
		"images":      []string{"https://example.com/room.jpg"},
		"title":       title,
		"description": description,
		"tags":        []string{"거실"},
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var post models.Post
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

// ---------------------------------------------------------------------------
// Posts

func (suite *HandlersTestSuite) TestCreatePost() {
	post := suite.createPost(suite.alice, "새 거실", "이사 완료!")

	assert.Equal(suite.T(), suite.alice.ID, post.UserID)
	assert.Equal(suite.T(), suite.alice.Name, post.UserName)
	assert.Equal(suite.T(), suite.alice.Avatar, post.UserAvatar)
	assert.NotNil(suite.T(), post.Comments)
	assert.Equal(suite.T(), 0, post.LikeCount)
}

func (suite *HandlersTestSuite) TestCreatePostValidation() {
	w := suite.request(http.MethodPost, "/api/v1/posts", suite.alice.ID, gin.H{
		"title": "no images",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/posts", "", gin.H{
		"images": []string{"x"}, "title": "anon",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestGetPost() {
	post := suite.createPost(suite.alice, "방", "")

	w := suite.request(http.MethodGet, "/api/v1/posts/"+post.ID, suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/posts/missing", suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "post_not_found", suite.decode(w)["error"])
}

func (suite *HandlersTestSuite) TestPostResponsesCarryViewerLikeState() {
	post := suite.createPost(suite.alice, "room", "")
	suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)

	// Post detail reflects the requesting viewer
	w := suite.request(http.MethodGet, "/api/v1/posts/"+post.ID, suite.bob.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), true, suite.decode(w)["liked"])

	w = suite.request(http.MethodGet, "/api/v1/posts/"+post.ID, suite.alice.ID, nil)
	assert.Equal(suite.T(), false, suite.decode(w)["liked"])

	// Anonymous viewers still get the field
	w = suite.request(http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	liked, present := suite.decode(w)["liked"]
	assert.True(suite.T(), present)
	assert.Equal(suite.T(), false, liked)

	// Feed and profile-post listings carry it too
	w = suite.request(http.MethodGet, "/api/v1/feed", suite.bob.ID, nil)
	feedPosts := suite.decode(w)["posts"].([]any)
	require.Len(suite.T(), feedPosts, 1)
	assert.Equal(suite.T(), true, feedPosts[0].(map[string]any)["liked"])

	w = suite.request(http.MethodGet, "/api/v1/users/"+suite.alice.ID+"/posts", suite.bob.ID, nil)
	userPosts := suite.decode(w)["posts"].([]any)
	require.Len(suite.T(), userPosts, 1)
	assert.Equal(suite.T(), true, userPosts[0].(map[string]any)["liked"])
}

func (suite *HandlersTestSuite) TestUpdatePostOwnerOnly() {
	post := suite.createPost(suite.alice, "before", "")

	w := suite.request(http.MethodPut, "/api/v1/posts/"+post.ID, suite.bob.ID, gin.H{"title": "hacked"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "not_post_owner", suite.decode(w)["error"])

	w = suite.request(http.MethodPut, "/api/v1/posts/"+post.ID, suite.alice.ID, gin.H{"title": "after"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "after", suite.decode(w)["title"])
}

func (suite *HandlersTestSuite) TestDeletePost() {
	post := suite.createPost(suite.alice, "temp", "")

	w := suite.request(http.MethodDelete, "/api/v1/posts/"+post.ID, suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, "/api/v1/posts/"+post.ID, suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/posts/"+post.ID, suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// ---------------------------------------------------------------------------
// Feed

func (suite *HandlersTestSuite) TestFeedAll() {
	suite.createPost(suite.alice, "first", "")
	suite.createPost(suite.bob, "second", "")

	w := suite.request(http.MethodGet, "/api/v1/feed", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := suite.decode(w)
	posts := body["posts"].([]any)
	require.Len(suite.T(), posts, 2)
	// Newest first
	assert.Equal(suite.T(), "second", posts[0].(map[string]any)["title"])
}

func (suite *HandlersTestSuite) TestFeedServesAnonymousViewers() {
	suite.createPost(suite.alice, "공개 거실", "")

	w := suite.request(http.MethodGet, "/api/v1/feed", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	posts := suite.decode(w)["posts"].([]any)
	require.Len(suite.T(), posts, 1)
	first := posts[0].(map[string]any)
	assert.Equal(suite.T(), "공개 거실", first["title"])
	assert.Equal(suite.T(), false, first["liked"])

	// Anonymous following feed is empty, not an error
	w = suite.request(http.MethodGet, "/api/v1/feed?type=following", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.decode(w)["posts"])
}

func (suite *HandlersTestSuite) TestFeedFollowing() {
	suite.createPost(suite.bob, "bobs room", "")
	carol := suite.createUser("carol")
	suite.createPost(carol, "carols room", "")
	suite.createPost(suite.alice, "my room", "")

	// Following nobody: empty following feed even with own posts
	w := suite.request(http.MethodGet, "/api/v1/feed?type=following", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.decode(w)["posts"])

	suite.request(http.MethodPost, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)

	w = suite.request(http.MethodGet, "/api/v1/feed?type=following", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	posts := suite.decode(w)["posts"].([]any)
	require.Len(suite.T(), posts, 2)
	// Own posts and bob's, not carol's
	titles := []string{
		posts[0].(map[string]any)["title"].(string),
		posts[1].(map[string]any)["title"].(string),
	}
	assert.ElementsMatch(suite.T(), []string{"my room", "bobs room"}, titles)
}

// ---------------------------------------------------------------------------
// Likes

func (suite *HandlersTestSuite) TestToggleLike() {
	post := suite.createPost(suite.alice, "room", "")

	w := suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := suite.decode(w)
	assert.Equal(suite.T(), true, body["liked"])
	assert.Equal(suite.T(), float64(1), body["like_count"])

	// Author gets a like notification
	w = suite.request(http.MethodGet, "/api/v1/notifications", suite.alice.ID, nil)
	notifications := suite.decode(w)["notifications"].([]any)
	require.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), "like", notifications[0].(map[string]any)["type"])

	// Second toggle removes the like without a second notification
	w = suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)
	body = suite.decode(w)
	assert.Equal(suite.T(), false, body["liked"])
	assert.Equal(suite.T(), float64(0), body["like_count"])

	w = suite.request(http.MethodGet, "/api/v1/notifications", suite.alice.ID, nil)
	assert.Len(suite.T(), suite.decode(w)["notifications"].([]any), 1)
}

func (suite *HandlersTestSuite) TestLikeIsPerViewer() {
	post := suite.createPost(suite.alice, "room", "")
	carol := suite.createUser("carol")

	suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)
	w := suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", carol.ID, nil)
	assert.Equal(suite.T(), float64(2), suite.decode(w)["like_count"])

	// Bob unliking leaves carol's like in place
	w = suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)
	assert.Equal(suite.T(), float64(1), suite.decode(w)["like_count"])
}

func (suite *HandlersTestSuite) TestSelfLikeDoesNotNotify() {
	post := suite.createPost(suite.alice, "room", "")

	suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.alice.ID, nil)

	w := suite.request(http.MethodGet, "/api/v1/notifications/unread-count", suite.alice.ID, nil)
	assert.Equal(suite.T(), float64(0), suite.decode(w)["unread"])
}

// ---------------------------------------------------------------------------
// Comments

func (suite *HandlersTestSuite) TestCommentLifecycle() {
	post := suite.createPost(suite.alice, "room", "")

	w := suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", suite.bob.ID, gin.H{
		"content": "조명 정보 궁금해요",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(suite.T(), suite.bob.ID, comment.UserID)
	assert.Equal(suite.T(), suite.bob.Name, comment.UserName)

	// Author notified
	w = suite.request(http.MethodGet, "/api/v1/notifications", suite.alice.ID, nil)
	notifications := suite.decode(w)["notifications"].([]any)
	require.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), "comment", notifications[0].(map[string]any)["type"])

	// Only the comment author may edit
	commentPath := "/api/v1/posts/" + post.ID + "/comments/" + comment.ID
	w = suite.request(http.MethodPut, commentPath, suite.alice.ID, gin.H{"content": "edited"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPut, commentPath, suite.bob.ID, gin.H{"content": "edited"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := suite.decode(w)
	assert.Equal(suite.T(), "edited", body["content"])
	assert.Equal(suite.T(), true, body["edited"])

	w = suite.request(http.MethodDelete, commentPath, suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, commentPath, suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "comment_not_found", suite.decode(w)["error"])
}

func (suite *HandlersTestSuite) TestCommentMentioningAuthorNotifiesBoth() {
	post := suite.createPost(suite.alice, "room", "")

	w := suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", suite.bob.ID, gin.H{
		"content": "@alice 방 너무 좋아요!",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	// The author gets the comment record and the mention record as two
	// separate notifications
	w = suite.request(http.MethodGet, "/api/v1/notifications", suite.alice.ID, nil)
	notifications := suite.decode(w)["notifications"].([]any)
	require.Len(suite.T(), notifications, 2)

	types := make([]string, 0, 2)
	for _, raw := range notifications {
		n := raw.(map[string]any)
		types = append(types, n["type"].(string))
		assert.Equal(suite.T(), post.ID, n["post_id"])
		assert.Equal(suite.T(), suite.bob.ID, n["from_user_id"])
	}
	assert.ElementsMatch(suite.T(), []string{"comment", "mention"}, types)
}

// ---------------------------------------------------------------------------
// Follow graph

func (suite *HandlersTestSuite) TestFollowUnfollow() {
	w := suite.request(http.MethodPost, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := suite.decode(w)
	assert.Equal(suite.T(), true, body["following"])
	assert.Equal(suite.T(), float64(1), body["follower_count"])

	// Bob gets a follow notification; a repeat follow does not duplicate it
	suite.request(http.MethodPost, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)
	w = suite.request(http.MethodGet, "/api/v1/notifications", suite.bob.ID, nil)
	assert.Len(suite.T(), suite.decode(w)["notifications"].([]any), 1)

	w = suite.request(http.MethodGet, "/api/v1/users/"+suite.bob.ID+"/followers", suite.alice.ID, nil)
	users := suite.decode(w)["users"].([]any)
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "alice", users[0].(map[string]any)["name"])

	w = suite.request(http.MethodDelete, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), float64(0), suite.decode(w)["follower_count"])
}

func (suite *HandlersTestSuite) TestFollowUnknownUser() {
	w := suite.request(http.MethodPost, "/api/v1/users/missing/follow", suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestUserProfile() {
	suite.request(http.MethodPost, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)

	w := suite.request(http.MethodGet, "/api/v1/users/"+suite.bob.ID+"/profile", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := suite.decode(w)
	assert.Equal(suite.T(), "bob", body["name"])
	assert.Equal(suite.T(), float64(1), body["follower_count"])
	assert.Equal(suite.T(), true, body["is_following"])

	// Anonymous viewers get no is_following field
	w = suite.request(http.MethodGet, "/api/v1/users/"+suite.bob.ID+"/profile", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	_, present := suite.decode(w)["is_following"]
	assert.False(suite.T(), present)
}

// ---------------------------------------------------------------------------
// Mentions

func (suite *HandlersTestSuite) TestMentionInPostFansOut() {
	suite.createPost(suite.bob, "bobs room", "")

	suite.createPost(suite.alice, "hello", "구경와요 @bob")

	w := suite.request(http.MethodGet, "/api/v1/notifications", suite.bob.ID, nil)
	notifications := suite.decode(w)["notifications"].([]any)
	require.Len(suite.T(), notifications, 1)
	first := notifications[0].(map[string]any)
	assert.Equal(suite.T(), "mention", first["type"])
	assert.Equal(suite.T(), suite.alice.ID, first["from_user_id"])
}

func (suite *HandlersTestSuite) TestParseMentionsEndpoint() {
	suite.createPost(suite.bob, "bobs room", "")

	w := suite.request(http.MethodPost, "/api/v1/mentions/parse", suite.alice.ID, gin.H{
		"text": "hi @bob!",
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	segments := suite.decode(w)["segments"].([]any)
	require.Len(suite.T(), segments, 3)
	mentionSegment := segments[1].(map[string]any)
	assert.Equal(suite.T(), "mention", mentionSegment["type"])
	assert.Equal(suite.T(), suite.bob.ID, mentionSegment["resolved_user_id"])
}

func (suite *HandlersTestSuite) TestMentionCandidates() {
	suite.createPost(suite.bob, "bobs room", "")
	suite.request(http.MethodPost, "/api/v1/users/"+suite.bob.ID+"/follow", suite.alice.ID, nil)

	w := suite.request(http.MethodGet, "/api/v1/mentions/candidates?q=bo", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	candidates := suite.decode(w)["candidates"].([]any)
	require.Len(suite.T(), candidates, 1)
	assert.Equal(suite.T(), "bob", candidates[0].(map[string]any)["name"])

	// No follows means no candidates
	w = suite.request(http.MethodGet, "/api/v1/mentions/candidates", suite.bob.ID, nil)
	assert.Empty(suite.T(), suite.decode(w)["candidates"])
}

// ---------------------------------------------------------------------------
// Notifications

func (suite *HandlersTestSuite) TestNotificationReadFlow() {
	post := suite.createPost(suite.alice, "room", "")
	suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", suite.bob.ID, nil)
	suite.request(http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", suite.bob.ID, gin.H{"content": "nice"})

	w := suite.request(http.MethodGet, "/api/v1/notifications", suite.alice.ID, nil)
	body := suite.decode(w)
	notifications := body["notifications"].([]any)
	require.Len(suite.T(), notifications, 2)
	assert.Equal(suite.T(), float64(2), body["unread"])
	// Newest first: the comment came after the like
	assert.Equal(suite.T(), "comment", notifications[0].(map[string]any)["type"])

	first := notifications[0].(map[string]any)["id"].(string)
	w = suite.request(http.MethodPost, "/api/v1/notifications/"+first+"/read", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/notifications/unread-count", suite.alice.ID, nil)
	assert.Equal(suite.T(), float64(1), suite.decode(w)["unread"])

	w = suite.request(http.MethodPost, "/api/v1/notifications/read-all", suite.alice.ID, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/notifications/unread-count", suite.alice.ID, nil)
	assert.Equal(suite.T(), float64(0), suite.decode(w)["unread"])
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
