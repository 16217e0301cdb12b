package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rooming-app/rooming/internal/mention"
	"github.com/rooming-app/rooming/internal/models"
)

// GetMentionCandidates ranks the viewer's followed users for @mention
// autocomplete
// GET /api/v1/mentions/candidates?q=...
func (h *Handlers) GetMentionCandidates(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	query := c.Query("q")
	candidates := h.mentions.RankCandidates(c.Request.Context(), currentUser.ID, query)
	if candidates == nil {
		candidates = []mention.Candidate{}
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"meta": gin.H{
			"query": query,
			"count": len(candidates),
		},
	})
}

// ParseMentionsRequest carries a text body to segment
type ParseMentionsRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseMentions splits a text body into text and mention segments so
// clients can render @names as links
// POST /api/v1/mentions/parse
func (h *Handlers) ParseMentions(c *gin.Context) {
	var req ParseMentionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"segments": h.mentions.Parse(req.Text)})
}
