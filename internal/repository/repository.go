package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
)

// Store keys owned by this package.
const (
	usersKey     = "users"
	postsKey     = "posts"
	likersPrefix = "post-likes-"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrPostNotFound = errors.New("post not found")

	ErrCommentNotFound = errors.New("comment not found")
)

// Repository mirrors the user registry and post collection in memory and
// persists the full collection to the Store on every mutation. All methods
// are safe for concurrent use; the mutex is what makes read-modify-write on
// shared keys sound with a single service owning the Store.
type Repository struct {
	store kv.Store

	mu    sync.RWMutex
	users []models.User
	posts []models.Post // newest first
}

// New creates a Repository and loads current state from the Store.
func New(ctx context.Context, store kv.Store) (*Repository, error) {
	r := &Repository{store: store}

	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads users and posts. Malformed persisted values degrade to empty
// collections rather than failing startup.
func (r *Repository) load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := loadList[models.User](ctx, r.store, usersKey)
	if err != nil {
		return err
	}
	posts, err := loadList[models.Post](ctx, r.store, postsKey)
	if err != nil {
		return err
	}

	r.users = users
	r.posts = posts
	return nil
}

// loadList reads a JSON array from the Store, treating a missing or
// malformed value as empty.
func loadList[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		logger.Log.Warn("Malformed stored list, treating as empty",
			logger.WithKey(key),
			zap.Error(err),
		)
		return nil, nil
	}
	return list, nil
}

func (r *Repository) persistUsers(ctx context.Context) error {
	raw, err := json.Marshal(r.users)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, usersKey, raw)
}

func (r *Repository) persistPosts(ctx context.Context) error {
	raw, err := json.Marshal(r.posts)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, postsKey, raw)
}

// ---------------------------------------------------------------------------
// Users

// AddUser registers a new user. Email and name collisions are rejected
// case-insensitively.
func (r *Repository) AddUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) && user.Email != "" {
			return ErrUserExists
		}
		if existing.ID == user.ID {
			return ErrUserExists
		}
	}

	r.users = append(r.users, user)
	return r.persistUsers(ctx)
}

// UserByID returns the user with the given id.
func (r *Repository) UserByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// UserByEmail looks a user up by email, case-insensitively.
func (r *Repository) UserByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// UserByName looks a user up by display name, case-insensitively.
func (r *Repository) UserByName(name string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Name, name) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Users returns a snapshot of the registry.
func (r *Repository) Users() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// UpdateUser replaces the stored user. Only the onboarding flow calls this;
// there is no user deletion path.
func (r *Repository) UpdateUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = user
			return r.persistUsers(ctx)
		}
	}
	return ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Posts

// Posts returns the post collection, newest first.
func (r *Repository) Posts() []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// PostByID returns a single post.
func (r *Repository) PostByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.posts {
		if r.posts[i].ID == id {
			post := r.posts[i]
			return &post, nil
		}
	}
	return nil, ErrPostNotFound
}

// AddPost prepends the post so the collection stays newest-first.
func (r *Repository) AddPost(ctx context.Context, post models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts = append([]models.Post{post}, r.posts...)
	return r.persistPosts(ctx)
}

// UpdatePost applies a partial update to the identified post.
func (r *Repository) UpdatePost(ctx context.Context, postID string, update models.PostUpdate) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID != postID {
			continue
		}

		if update.Title != nil {
			r.posts[i].Title = *update.Title
		}
		if update.Description != nil {
			r.posts[i].Description = *update.Description
		}
		if update.Images != nil {
			r.posts[i].Images = *update.Images
		}
		if update.Tags != nil {
			r.posts[i].Tags = *update.Tags
		}

		post := r.posts[i]
		return &post, r.persistPosts(ctx)
	}
	return nil, ErrPostNotFound
}

// DeletePost removes the post and its like relation. Comments live inside the
// post record, so they go with it.
func (r *Repository) DeletePost(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			if err := r.store.Delete(ctx, likersPrefix+postID); err != nil {
				return err
			}
			return r.persistPosts(ctx)
		}
	}
	return ErrPostNotFound
}

// ---------------------------------------------------------------------------
// Likes
//
// Likes are a per-viewer relation keyed post-likes-{postID}; the post's
// LikeCount is kept equal to the relation's cardinality. This replaces the
// original's single liked flag shared between viewers.

// ToggleLike flips the viewer's like on the post. A missing post or empty
// viewer is a silent no-op. Returns whether the post is liked by the viewer
// after the call.
func (r *Repository) ToggleLike(ctx context.Context, postID, viewerID string) (liked bool) {
	if viewerID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID != postID {
			continue
		}

		likers, err := loadList[string](ctx, r.store, likersPrefix+postID)
		if err != nil {
			logger.Log.Warn("Failed to load like relation",
				logger.WithPostID(postID),
				zap.Error(err),
			)
			return false
		}

		found := false
		for j, id := range likers {
			if id == viewerID {
				likers = append(likers[:j], likers[j+1:]...)
				found = true
				break
			}
		}
		if !found {
			likers = append(likers, viewerID)
		}

		raw, err := json.Marshal(likers)
		if err != nil {
			return false
		}
		if err := r.store.Put(ctx, likersPrefix+postID, raw); err != nil {
			logger.Log.Warn("Failed to persist like relation",
				logger.WithPostID(postID),
				zap.Error(err),
			)
			return false
		}

		r.posts[i].LikeCount = len(likers)
		if err := r.persistPosts(ctx); err != nil {
			logger.Log.Warn("Failed to persist posts after like toggle", zap.Error(err))
		}
		return !found
	}
	return false
}

// Liked reports whether the viewer currently likes the post.
func (r *Repository) Liked(ctx context.Context, postID, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	likers, err := loadList[string](ctx, r.store, likersPrefix+postID)
	if err != nil {
		return false
	}
	for _, id := range likers {
		if id == viewerID {
			return true
		}
	}
	return false
}

// Likers returns the ids of everyone who likes the post.
func (r *Repository) Likers(ctx context.Context, postID string) []string {
	likers, err := loadList[string](ctx, r.store, likersPrefix+postID)
	if err != nil {
		return nil
	}
	return likers
}

// ---------------------------------------------------------------------------
// Comments

// AddComment appends a comment to the post, preserving insertion order.
func (r *Repository) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts[i].Comments = append(r.posts[i].Comments, comment)
			return r.persistPosts(ctx)
		}
	}
	return ErrPostNotFound
}

// UpdateComment edits a comment in place, marking it edited.
func (r *Repository) UpdateComment(ctx context.Context, postID, commentID, content string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID != postID {
			continue
		}
		for j := range r.posts[i].Comments {
			if r.posts[i].Comments[j].ID == commentID {
				now := time.Now().UTC()
				r.posts[i].Comments[j].Content = content
				r.posts[i].Comments[j].Edited = true
				r.posts[i].Comments[j].UpdatedAt = &now

				comment := r.posts[i].Comments[j]
				return &comment, r.persistPosts(ctx)
			}
		}
		return nil, ErrCommentNotFound
	}
	return nil, ErrPostNotFound
}

// DeleteComment removes a comment from the post.
func (r *Repository) DeleteComment(ctx context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID != postID {
			continue
		}
		for j := range r.posts[i].Comments {
			if r.posts[i].Comments[j].ID == commentID {
				r.posts[i].Comments = append(r.posts[i].Comments[:j], r.posts[i].Comments[j+1:]...)
				return r.persistPosts(ctx)
			}
		}
		return ErrCommentNotFound
	}
	return ErrPostNotFound
}
