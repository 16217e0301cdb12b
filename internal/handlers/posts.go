package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/feed"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/middleware"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/repository"
)

// CreatePostRequest is the new-post payload
type CreatePostRequest struct {
	Images      []string `json:"images" binding:"required,min=1"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// postView is the wire shape for posts: the post plus the requesting
// viewer's computed like state. Anonymous viewers always see liked=false.
type postView struct {
	models.Post
	Liked bool `json:"liked"`
}

func (h *Handlers) viewPost(ctx context.Context, post models.Post, viewerID string) postView {
	return postView{
		Post:  post,
		Liked: viewerID != "" && h.repo.Liked(ctx, post.ID, viewerID),
	}
}

func (h *Handlers) viewPosts(ctx context.Context, posts []models.Post, viewerID string) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, h.viewPost(ctx, post, viewerID))
	}
	return views
}

// GetFeed returns posts for the requested feed type, newest first. The
// global feed serves anonymous viewers; the following feed is empty
// without a signed-in viewer.
// GET /api/v1/feed?type=all|following
func (h *Handlers) GetFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	feedType := feed.ParseType(c.DefaultQuery("type", "all"))

	start := time.Now()
	var following []string
	if feedType == feed.TypeFollowing && viewerID != "" {
		following = h.graph.Following(c.Request.Context(), viewerID)
	}
	posts := feed.Filtered(viewerID, feedType, following, h.repo.Posts())
	middleware.RecordFeedGeneration(string(feedType), time.Since(start))

	views := h.viewPosts(c.Request.Context(), posts, viewerID)
	c.JSON(http.StatusOK, gin.H{
		"posts": views,
		"meta": gin.H{
			"type":  feedType,
			"count": len(views),
		},
	})
}

// CreatePost publishes a new post and fans out any @mentions in the body
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	post := models.Post{
		ID:          models.NewID(),
		UserID:      currentUser.ID,
		UserName:    currentUser.Name,
		UserAvatar:  currentUser.Avatar,
		Images:      req.Images,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Comments:    []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := h.repo.AddPost(c.Request.Context(), post); err != nil {
		logger.Log.Error("Failed to create post",
			logger.WithUserID(currentUser.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
		return
	}

	mentioned := h.mentions.ExtractMentionedIDs(post.Description, currentUser.ID)
	h.notify.OnMention(c.Request.Context(), currentUser, mentioned, post.ID, "", post.Description)

	c.JSON(http.StatusCreated, h.viewPost(c.Request.Context(), post, currentUser.ID))
}

// GetPost returns a single post with the viewer's like state
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	post, err := h.repo.PostByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
		return
	}
	c.JSON(http.StatusOK, h.viewPost(c.Request.Context(), *post, c.GetString("user_id")))
}

// UpdatePost applies a partial edit; only the author may edit
// PUT /api/v1/posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	post, err := h.repo.PostByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
		return
	}
	if post.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_post_owner"})
		return
	}

	var update models.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	updated, err := h.repo.UpdatePost(c.Request.Context(), post.ID, update)
	if err != nil {
		logger.Log.Error("Failed to update post",
			logger.WithPostID(post.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
		return
	}

	c.JSON(http.StatusOK, h.viewPost(c.Request.Context(), *updated, currentUser.ID))
}

// DeletePost removes a post; only the author may delete
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	post, err := h.repo.PostByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
		return
	}
	if post.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_post_owner"})
		return
	}

	if err := h.repo.DeletePost(c.Request.Context(), post.ID); err != nil {
		logger.Log.Error("Failed to delete post",
			logger.WithPostID(post.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post_deleted"})
}

// ToggleLike flips the viewer's like on a post and notifies the author
// when the flip lands on liked
// POST /api/v1/posts/:id/like
func (h *Handlers) ToggleLike(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	post, err := h.repo.PostByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like_failed"})
		return
	}

	liked := h.repo.ToggleLike(c.Request.Context(), post.ID, currentUser.ID)
	if liked {
		h.notify.OnLike(c.Request.Context(), post, currentUser)
	}

	// Re-read for the post-flip count
	post, err = h.repo.PostByID(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":      liked,
		"like_count": post.LikeCount,
	})
}
