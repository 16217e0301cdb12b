package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/repository"
)

// CommentRequest is the create/edit payload
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment adds a comment to a post, notifying the post author and
// anyone @mentioned in the body
// POST /api/v1/posts/:id/comments
func (h *Handlers) CreateComment(c *gin.Context) {
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

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	comment := models.Comment{
		ID:         models.NewID(),
		UserID:     currentUser.ID,
		UserName:   currentUser.Name,
		UserAvatar: currentUser.Avatar,
		Content:    req.Content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.repo.AddComment(c.Request.Context(), post.ID, comment); err != nil {
		logger.Log.Error("Failed to add comment",
			logger.WithPostID(post.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comment_failed"})
		return
	}

	h.notify.OnComment(c.Request.Context(), post, currentUser, &comment)

	mentioned := h.mentions.ExtractMentionedIDs(comment.Content, currentUser.ID)
	h.notify.OnMention(c.Request.Context(), currentUser, mentioned, post.ID, comment.ID, comment.Content)

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits a comment in place; only the author may edit
// PUT /api/v1/posts/:id/comments/:commentID
func (h *Handlers) UpdateComment(c *gin.Context) {
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

	commentID := c.Param("commentID")
	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
		return
	}
	if target.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_comment_owner"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	updated, err := h.repo.UpdateComment(c.Request.Context(), post.ID, commentID, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) || errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteComment removes a comment; only the author may delete
// DELETE /api/v1/posts/:id/comments/:commentID
func (h *Handlers) DeleteComment(c *gin.Context) {
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

	commentID := c.Param("commentID")
	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
		return
	}
	if target.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_comment_owner"})
		return
	}

	if err := h.repo.DeleteComment(c.Request.Context(), post.ID, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) || errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment_deleted"})
}
