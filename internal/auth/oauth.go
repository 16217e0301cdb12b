package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/config"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/repository"
)

// OAuthUserInfo represents user info from OAuth providers
type OAuthUserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// GoogleUserInfo represents Google OAuth user response
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// LineProfile represents LINE's profile API response
type LineProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

// GoogleAuthURL issues a state token and returns the Google consent URL.
func (s *Service) GoogleAuthURL(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := s.states.Save(ctx, state); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return s.oauth.GoogleConfig.AuthCodeURL(state), nil
}

// LineAuthURL issues a state token and returns the LINE consent URL.
func (s *Service) LineAuthURL(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := s.states.Save(ctx, state); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return s.oauth.LineConfig.AuthCodeURL(state), nil
}

// HandleGoogleCallback validates the state, exchanges the code, and signs
// the Google account in.
func (s *Service) HandleGoogleCallback(ctx context.Context, state, code string) (*AuthResponse, error) {
	if !s.states.Consume(ctx, state) {
		return nil, ErrInvalidState
	}

	userInfo, err := s.getGoogleUserInfo(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google user info: %w", err)
	}

	return s.findOrCreateOAuthUser(ctx, "google", userInfo)
}

// HandleLineCallback validates the state, exchanges the code, and signs
// the LINE account in.
func (s *Service) HandleLineCallback(ctx context.Context, state, code string) (*AuthResponse, error) {
	if !s.states.Consume(ctx, state) {
		return nil, ErrInvalidState
	}

	userInfo, err := s.getLineUserInfo(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get LINE user info: %w", err)
	}

	return s.findOrCreateOAuthUser(ctx, "line", userInfo)
}

// findOrCreateOAuthUser signs in the account keyed "{provider}-{id}",
// creating it on first login.
func (s *Service) findOrCreateOAuthUser(ctx context.Context, provider string, userInfo *OAuthUserInfo) (*AuthResponse, error) {
	userID := provider + "-" + userInfo.ID

	user, err := s.repo.UserByID(userID)
	if err == nil {
		// Returning user - refresh the provider-owned profile fields
		changed := false
		if userInfo.AvatarURL != "" && user.Avatar != userInfo.AvatarURL {
			user.Avatar = userInfo.AvatarURL
			changed = true
		}
		if userInfo.Email != "" && user.Email == "" {
			user.Email = userInfo.Email
			changed = true
		}
		if changed {
			if err := s.repo.UpdateUser(ctx, *user); err != nil {
				logger.Log.Warn("Failed to refresh oauth profile",
					logger.WithUserID(user.ID),
					zap.Error(err),
				)
			}
		}
		return s.generateAuthResponse(user)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	newUser := models.User{
		ID:        userID,
		Email:     userInfo.Email,
		Name:      s.uniqueName(userInfo.Name),
		Avatar:    userInfo.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AddUser(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			// Same email registered natively; OAuth does not hijack it.
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateAuthResponse(&newUser)
}

// getGoogleUserInfo fetches user info from Google OAuth
func (s *Service) getGoogleUserInfo(ctx context.Context, code string) (*OAuthUserInfo, error) {
	token, err := s.oauth.GoogleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := s.oauth.GoogleConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	return &OAuthUserInfo{
		ID:        googleUser.Sub,
		Email:     googleUser.Email,
		Name:      googleUser.Name,
		AvatarURL: googleUser.Picture,
	}, nil
}

// getLineUserInfo fetches the LINE profile plus the email claim carried in
// the id_token that rides along with the code exchange.
func (s *Service) getLineUserInfo(ctx context.Context, code string) (*OAuthUserInfo, error) {
	token, err := s.oauth.LineConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := s.oauth.LineConfig.Client(ctx, token)
	resp, err := client.Get(config.LineProfileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var profile LineProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if profile.UserID == "" {
		return nil, errors.New("profile response missing userId")
	}

	return &OAuthUserInfo{
		ID:        profile.UserID,
		Email:     lineEmailFromIDToken(token.Extra("id_token")),
		Name:      profile.DisplayName,
		AvatarURL: profile.PictureURL,
	}, nil
}

// lineEmailFromIDToken pulls the email claim out of LINE's id_token. The
// token arrived over TLS directly from LINE's token endpoint, so the
// signature is not re-verified here; a missing or unreadable claim just
// yields an empty email.
func lineEmailFromIDToken(raw interface{}) string {
	idToken, ok := raw.(string)
	if !ok || idToken == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		logger.Log.Warn("Failed to decode id_token", zap.Error(err))
		return ""
	}

	email, _ := claims["email"].(string)
	return email
}

// uniqueName makes the display name unique by appending a counter, the
// same way a signup form would suggest an alternative.
func (s *Service) uniqueName(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "user"
	}

	name := base
	for counter := 1; counter <= 999; counter++ {
		if _, err := s.repo.UserByName(name); err != nil {
			return name
		}
		name = fmt.Sprintf("%s%d", base, counter)
	}
	return base + "-" + uuid.New().String()[:8]
}
