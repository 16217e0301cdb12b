package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
)

// GetUserProfile returns a public profile plus graph counts
// GET /api/v1/users/:id/profile
func (h *Handlers) GetUserProfile(c *gin.Context) {
	userID := c.Param("id")
	profile, err := h.repo.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	ctx := c.Request.Context()
	response := gin.H{
		"id":              profile.ID,
		"name":            profile.Name,
		"avatar":          profile.Avatar,
		"interests":       profile.Interests,
		"residence_type":  profile.ResidenceType,
		"created_at":      profile.CreatedAt,
		"follower_count":  h.graph.FollowerCount(ctx, userID),
		"following_count": h.graph.FollowingCount(ctx, userID),
	}

	// Tell the signed-in viewer whether they already follow this profile
	if viewerID := c.GetString("user_id"); viewerID != "" {
		response["is_following"] = h.graph.IsFollowing(ctx, viewerID, userID)
	}

	c.JSON(http.StatusOK, response)
}

// GetUserPosts returns the user's posts, newest first, with the viewer's
// like state on each
// GET /api/v1/users/:id/posts
func (h *Handlers) GetUserPosts(c *gin.Context) {
	userID := c.Param("id")
	if _, err := h.repo.UserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	var posts []models.Post
	for _, post := range h.repo.Posts() {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}

	views := h.viewPosts(c.Request.Context(), posts, c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"posts": views, "meta": gin.H{"count": len(views)}})
}

// FollowUser adds a follow edge and notifies the target on a new edge
// POST /api/v1/users/:id/follow
func (h *Handlers) FollowUser(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	targetID := c.Param("id")
	if _, err := h.repo.UserByID(targetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	created, err := h.graph.Follow(c.Request.Context(), currentUser.ID, targetID)
	if err != nil {
		logger.Log.Error("Failed to follow",
			logger.WithUserID(currentUser.ID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "follow_failed"})
		return
	}

	if created {
		h.notify.OnFollow(c.Request.Context(), currentUser, targetID)
	}

	c.JSON(http.StatusOK, gin.H{
		"following":      true,
		"follower_count": h.graph.FollowerCount(c.Request.Context(), targetID),
	})
}

// UnfollowUser removes a follow edge; idempotent
// DELETE /api/v1/users/:id/follow
func (h *Handlers) UnfollowUser(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	targetID := c.Param("id")
	if _, err := h.repo.UserByID(targetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	if err := h.graph.Unfollow(c.Request.Context(), currentUser.ID, targetID); err != nil {
		logger.Log.Error("Failed to unfollow",
			logger.WithUserID(currentUser.ID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unfollow_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following":      false,
		"follower_count": h.graph.FollowerCount(c.Request.Context(), targetID),
	})
}

// GetUserFollowers lists the users following :id
// GET /api/v1/users/:id/followers
func (h *Handlers) GetUserFollowers(c *gin.Context) {
	userID := c.Param("id")
	if _, err := h.repo.UserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	users := h.resolveUsers(h.graph.Followers(c.Request.Context(), userID))
	c.JSON(http.StatusOK, gin.H{"users": users, "meta": gin.H{"count": len(users)}})
}

// GetUserFollowing lists the users :id follows
// GET /api/v1/users/:id/following
func (h *Handlers) GetUserFollowing(c *gin.Context) {
	userID := c.Param("id")
	if _, err := h.repo.UserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	users := h.resolveUsers(h.graph.Following(c.Request.Context(), userID))
	c.JSON(http.StatusOK, gin.H{"users": users, "meta": gin.H{"count": len(users)}})
}

// resolveUsers maps graph ids onto public profiles, dropping ids whose
// account no longer exists.
func (h *Handlers) resolveUsers(ids []string) []gin.H {
	users := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		user, err := h.repo.UserByID(id)
		if err != nil {
			continue
		}
		users = append(users, gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"avatar": user.Avatar,
		})
	}
	return users
}
