package mention

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rooming-app/rooming/internal/models"
)

// mentionPattern matches @name tokens. The name alphabet is the same one the
// nickname rule allows: Hangul, ASCII letters, ASCII digits and underscore.
var mentionPattern = regexp.MustCompile(`@([가-힣a-zA-Z0-9_]+)`)

// SegmentType discriminates parsed text segments.
type SegmentType string

const (
	SegmentText    SegmentType = "text"
	SegmentMention SegmentType = "mention"
)

// Segment is one piece of a parsed text body. Mention segments carry the
// resolved user id when the name matched a known author; an unresolved
// @token still renders as a mention but links nowhere.
type Segment struct {
	Type           SegmentType `json:"type"`
	Content        string      `json:"content"`
	ResolvedUserID string      `json:"resolved_user_id,omitempty"`
}

// Candidate is one autocomplete suggestion.
type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// PostSource provides the post collection the directory and ranker read.
type PostSource interface {
	Posts() []models.Post
}

// LikeSource answers per-viewer like membership for ranking.
type LikeSource interface {
	Liked(ctx context.Context, postID, viewerID string) bool
}

// UserSource resolves candidate identity from the user registry, so
// followed users who have not posted or commented yet still autocomplete.
type UserSource interface {
	UserByID(id string) (*models.User, error)
}

// FollowSource provides the viewer's following list, which bounds the
// candidate pool.
type FollowSource interface {
	Following(ctx context.Context, userID string) []string
}

// Resolver parses @mentions and ranks autocomplete candidates.
type Resolver struct {
	posts   PostSource
	likes   LikeSource
	users   UserSource
	follows FollowSource
}

// NewResolver wires a resolver over the repository and follow graph.
func NewResolver(posts PostSource, likes LikeSource, users UserSource, follows FollowSource) *Resolver {
	return &Resolver{
		posts:   posts,
		likes:   likes,
		users:   users,
		follows: follows,
	}
}

// directory maps display name → user identity, built by unioning the author
// of every post with the author of every comment. The first occurrence of a
// display name wins when duplicates exist.
func (r *Resolver) directory() map[string]Candidate {
	dir := make(map[string]Candidate)

	add := func(id, name, avatar string) {
		if name == "" {
			return
		}
		if _, seen := dir[name]; !seen {
			dir[name] = Candidate{ID: id, Name: name, Avatar: avatar}
		}
	}

	for _, post := range r.posts.Posts() {
		add(post.UserID, post.UserName, post.UserAvatar)
		for _, comment := range post.Comments {
			add(comment.UserID, comment.UserName, comment.UserAvatar)
		}
	}
	return dir
}

// Parse splits text into alternating text and mention segments, scanning
// left to right.
func (r *Resolver) Parse(text string) []Segment {
	matches := mentionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Type: SegmentText, Content: text}}
	}

	dir := r.directory()

	var segments []Segment
	cursor := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		if start > cursor {
			segments = append(segments, Segment{Type: SegmentText, Content: text[cursor:start]})
		}

		name := text[match[2]:match[3]]
		segment := Segment{Type: SegmentMention, Content: text[start:end]}
		if entry, ok := dir[name]; ok {
			segment.ResolvedUserID = entry.ID
		}
		segments = append(segments, segment)
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Type: SegmentText, Content: text[cursor:]})
	}
	return segments
}

// ExtractMentionedIDs returns the deduplicated ids of users mentioned in
// text, excluding the actor: mentioning your own name never notifies you.
func (r *Resolver) ExtractMentionedIDs(text, actorID string) []string {
	dir := r.directory()

	var ids []string
	seen := make(map[string]struct{})
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		entry, ok := dir[match[1]]
		if !ok || entry.ID == actorID {
			continue
		}
		if _, dup := seen[entry.ID]; dup {
			continue
		}
		seen[entry.ID] = struct{}{}
		ids = append(ids, entry.ID)
	}
	return ids
}

// RankCandidates returns autocomplete suggestions for the viewer, restricted
// to users the viewer follows. Candidates are ordered by interaction score
// (mutual comments weighted 2, likes weighted 1) descending, then display
// name ascending under Korean collation. query filters names by
// case-insensitive substring.
func (r *Resolver) RankCandidates(ctx context.Context, viewerID, query string) []Candidate {
	if viewerID == "" {
		return nil
	}

	following := r.follows.Following(ctx, viewerID)
	if len(following) == 0 {
		return nil
	}
	followed := make(map[string]struct{}, len(following))
	for _, id := range following {
		followed[id] = struct{}{}
	}

	posts := r.posts.Posts()

	// Snapshot directory, kept as an avatar fallback for registry entries
	// without one.
	directory := make(map[string]Candidate)
	for _, entry := range r.directory() {
		directory[entry.ID] = entry
	}

	scores := make(map[string]int)
	for _, post := range posts {
		_, byFollowed := followed[post.UserID]

		if byFollowed {
			// Comments the viewer left on the candidate's posts.
			for _, comment := range post.Comments {
				if comment.UserID == viewerID {
					scores[post.UserID] += 2
				}
			}
			// Candidate posts the viewer has liked.
			if r.likes.Liked(ctx, post.ID, viewerID) {
				scores[post.UserID]++
			}
		}

		if post.UserID == viewerID {
			// Comments candidates left on the viewer's posts.
			for _, comment := range post.Comments {
				if _, ok := followed[comment.UserID]; ok {
					scores[comment.UserID] += 2
				}
			}
		}
	}

	lowered := strings.ToLower(query)

	// Collators keep internal buffers, so build one per call rather than
	// sharing across requests.
	collator := collate.New(language.Korean)

	var candidates []Candidate
	for _, id := range following {
		entry, known := r.identify(id, directory)
		if !known {
			continue
		}
		if lowered != "" && !strings.Contains(strings.ToLower(entry.Name), lowered) {
			continue
		}
		candidates = append(candidates, entry)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i].ID], scores[candidates[j].ID]
		if si != sj {
			return si > sj
		}
		return collator.CompareString(candidates[i].Name, candidates[j].Name) < 0
	})
	return candidates
}

// identify resolves a candidate's display identity. The user registry is
// authoritative; the content-snapshot directory covers accounts the
// registry no longer knows and fills in a missing avatar.
func (r *Resolver) identify(id string, directory map[string]Candidate) (Candidate, bool) {
	user, err := r.users.UserByID(id)
	if err != nil {
		entry, known := directory[id]
		return entry, known
	}

	entry := Candidate{ID: id, Name: user.Name, Avatar: user.Avatar}
	if entry.Avatar == "" {
		if snapshot, ok := directory[id]; ok {
			entry.Avatar = snapshot.Avatar
		}
	}
	return entry, true
}
