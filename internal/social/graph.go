package social

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
)

// Store keys owned by this package. following-{id} matches the original
// client layout; followers-{id} is the maintained inverted index that
// replaces scanning every following list to count followers.
const (
	followingPrefix = "following-"
	followersPrefix = "followers-"
)

// Graph maintains the directed follow relation. Both directions of an edge
// are updated under one mutex so the inverted index never drifts from the
// forward lists.
type Graph struct {
	store kv.Store
	mu    sync.Mutex
}

// NewGraph creates a follow graph over the given store.
func NewGraph(store kv.Store) *Graph {
	return &Graph{store: store}
}

// loadIDs reads a stored id list, treating missing or malformed values as
// empty.
func (g *Graph) loadIDs(ctx context.Context, key string) []string {
	raw, ok, err := g.store.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("Failed to read follow list", logger.WithKey(key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.Log.Warn("Malformed follow list, treating as empty",
			logger.WithKey(key),
			zap.Error(err),
		)
		return nil
	}
	return ids
}

func (g *Graph) saveIDs(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return g.store.Put(ctx, key, raw)
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Follow adds the viewer→target edge. Self-follows and duplicate edges are
// no-ops. Returns true when a new edge was created, so the caller knows
// whether to fan out a follow notification.
func (g *Graph) Follow(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == "" || targetID == "" || viewerID == targetID {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	following := g.loadIDs(ctx, followingPrefix+viewerID)
	if contains(following, targetID) {
		return false, nil
	}

	following = append(following, targetID)
	if err := g.saveIDs(ctx, followingPrefix+viewerID, following); err != nil {
		return false, err
	}

	followers := g.loadIDs(ctx, followersPrefix+targetID)
	if !contains(followers, viewerID) {
		followers = append(followers, viewerID)
		if err := g.saveIDs(ctx, followersPrefix+targetID, followers); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Unfollow removes the viewer→target edge; removing an absent edge is a
// no-op.
func (g *Graph) Unfollow(ctx context.Context, viewerID, targetID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	following := g.loadIDs(ctx, followingPrefix+viewerID)
	if !contains(following, targetID) {
		return nil
	}

	if err := g.saveIDs(ctx, followingPrefix+viewerID, remove(following, targetID)); err != nil {
		return err
	}

	followers := g.loadIDs(ctx, followersPrefix+targetID)
	return g.saveIDs(ctx, followersPrefix+targetID, remove(followers, viewerID))
}

// IsFollowing reports whether viewer follows target.
func (g *Graph) IsFollowing(ctx context.Context, viewerID, targetID string) bool {
	return contains(g.loadIDs(ctx, followingPrefix+viewerID), targetID)
}

// Following returns the ids the user follows, in follow order.
func (g *Graph) Following(ctx context.Context, userID string) []string {
	return g.loadIDs(ctx, followingPrefix+userID)
}

// Followers returns the ids following the user, from the inverted index.
func (g *Graph) Followers(ctx context.Context, userID string) []string {
	return g.loadIDs(ctx, followersPrefix+userID)
}

// FollowerCount returns how many distinct users follow target.
func (g *Graph) FollowerCount(ctx context.Context, targetID string) int {
	return len(g.loadIDs(ctx, followersPrefix+targetID))
}

// FollowingCount returns how many users target follows.
func (g *Graph) FollowingCount(ctx context.Context, targetID string) int {
	return len(g.loadIDs(ctx, followingPrefix+targetID))
}
