package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/auth"
	"github.com/rooming-app/rooming/internal/config"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/validation"
)

// AuthHandlers serves registration, login, and the OAuth flows
type AuthHandlers struct {
	authService *auth.Service
	repo        *repository.Repository
	oauthCfg    *config.OAuthConfig
}

// NewAuthHandlers creates the auth handler set. oauthCfg may be nil when
// the OAuth routes are not mounted.
func NewAuthHandlers(authService *auth.Service, repo *repository.Repository, oauthCfg *config.OAuthConfig) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		repo:        repo,
		oauthCfg:    oauthCfg,
	}
}

// Register creates a native email/password account
// POST /api/v1/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
		case errors.Is(err, auth.ErrInvalidNickname):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_nickname"})
		case errors.Is(err, auth.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
		case errors.Is(err, auth.ErrNameExists):
			c.JSON(http.StatusConflict, gin.H{"error": "nickname_taken"})
		default:
			logger.Log.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration_failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a native account
// POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		logger.Log.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleOAuth starts the Google flow
// GET /api/v1/auth/google
func (h *AuthHandlers) GoogleOAuth(c *gin.Context) {
	authURL, err := h.authService.GoogleAuthURL(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to start Google flow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oauth_unavailable"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback finishes the Google flow and redirects to the client
// GET /api/v1/auth/google/callback
func (h *AuthHandlers) GoogleCallback(c *gin.Context) {
	resp, err := h.authService.HandleGoogleCallback(c.Request.Context(), c.Query("state"), c.Query("code"))
	h.finishOAuth(c, "google", resp, err)
}

// LineOAuth starts the LINE flow
// GET /api/v1/auth/line
func (h *AuthHandlers) LineOAuth(c *gin.Context) {
	authURL, err := h.authService.LineAuthURL(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to start LINE flow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oauth_unavailable"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// LineCallback finishes the LINE flow and redirects to the client
// GET /api/v1/auth/line/callback
func (h *AuthHandlers) LineCallback(c *gin.Context) {
	resp, err := h.authService.HandleLineCallback(c.Request.Context(), c.Query("state"), c.Query("code"))
	h.finishOAuth(c, "line", resp, err)
}

// finishOAuth sends the browser back to the client app. Failures become an
// error code on the redirect, never a bare 500 page.
func (h *AuthHandlers) finishOAuth(c *gin.Context, provider string, resp *auth.AuthResponse, err error) {
	target, parseErr := url.Parse(h.oauthCfg.ClientRedirectURL)
	if parseErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bad_client_redirect"})
		return
	}

	query := target.Query()
	if err != nil {
		logger.Log.Warn("OAuth callback failed",
			zap.String("provider", provider),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, auth.ErrInvalidState):
			query.Set("error", "invalid_state")
		case errors.Is(err, auth.ErrUserExists):
			query.Set("error", "email_taken")
		default:
			query.Set("error", "oauth_failed")
		}
	} else {
		query.Set("provider", provider)
		query.Set("id", resp.User.ID)
		query.Set("email", resp.User.Email)
		query.Set("name", resp.User.Name)
		query.Set("avatar", resp.User.Avatar)
		query.Set("token", resp.Token)
	}
	target.RawQuery = query.Encode()

	c.Redirect(http.StatusTemporaryRedirect, target.String())
}

// CheckEmail reports whether an email is well-formed and unclaimed
// GET /api/v1/auth/check-email?email=...
func (h *AuthHandlers) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if !validation.ValidEmail(email) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "available": false})
		return
	}

	_, err := h.repo.UserByEmail(email)
	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"available": errors.Is(err, repository.ErrUserNotFound),
	})
}

// CheckNickname reports whether a nickname is well-formed and unclaimed
// GET /api/v1/auth/check-nickname?name=...
func (h *AuthHandlers) CheckNickname(c *gin.Context) {
	name := c.Query("name")
	if !validation.ValidNickname(name) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "available": false})
		return
	}

	_, err := h.repo.UserByName(name)
	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"available": errors.Is(err, repository.ErrUserNotFound),
	})
}

// OnboardingRequest carries the post-signup profile answers
type OnboardingRequest struct {
	Interests     []string `json:"interests"`
	ResidenceType string   `json:"residence_type"`
}

// Onboarding stores the signup questionnaire answers on the profile
// POST /api/v1/auth/onboarding
func (h *AuthHandlers) Onboarding(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	currentUser.Interests = req.Interests
	currentUser.ResidenceType = req.ResidenceType
	if err := h.repo.UpdateUser(c.Request.Context(), *currentUser); err != nil {
		logger.Log.Error("Failed to save onboarding answers",
			logger.WithUserID(currentUser.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "onboarding_complete", "user": currentUser})
}

// Me returns the signed-in user
// GET /api/v1/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}
