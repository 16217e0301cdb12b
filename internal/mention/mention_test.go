package mention

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rooming-app/rooming/internal/models"
)

type fakeSource struct {
	posts     []models.Post
	likes     map[string]map[string]bool // postID → viewerID → liked
	users     map[string]models.User
	following map[string][]string
}

func (f *fakeSource) Posts() []models.Post { return f.posts }

func (f *fakeSource) Liked(_ context.Context, postID, viewerID string) bool {
	return f.likes[postID][viewerID]
}

func (f *fakeSource) UserByID(id string) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeSource) Following(_ context.Context, userID string) []string {
	return f.following[userID]
}

func postWith(id, userID, userName string, comments ...models.Comment) models.Post {
	return models.Post{ID: id, UserID: userID, UserName: userName, Comments: comments}
}

func comment(userID, userName string) models.Comment {
	return models.Comment{ID: models.NewID(), UserID: userID, UserName: userName}
}

func newTestResolver(src *fakeSource) *Resolver {
	return NewResolver(src, src, src, src)
}

func TestParsePlainText(t *testing.T) {
	r := newTestResolver(&fakeSource{})

	assert.Nil(t, r.Parse(""))

	segments := r.Parse("no mentions here")
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentText, segments[0].Type)
	assert.Equal(t, "no mentions here", segments[0].Content)
}

func TestParseSegmentsAroundMentions(t *testing.T) {
	src := &fakeSource{posts: []models.Post{postWith("p1", "u1", "민지")}}
	r := newTestResolver(src)

	segments := r.Parse("안녕 @민지 반가워요 @없는사람!")
	require.Len(t, segments, 5)

	assert.Equal(t, Segment{Type: SegmentText, Content: "안녕 "}, segments[0])
	assert.Equal(t, SegmentMention, segments[1].Type)
	assert.Equal(t, "@민지", segments[1].Content)
	assert.Equal(t, "u1", segments[1].ResolvedUserID)
	assert.Equal(t, Segment{Type: SegmentText, Content: " 반가워요 "}, segments[2])

	// Unknown names still render as mention segments, just unresolved
	assert.Equal(t, SegmentMention, segments[3].Type)
	assert.Equal(t, "@없는사람", segments[3].Content)
	assert.Empty(t, segments[3].ResolvedUserID)

	assert.Equal(t, Segment{Type: SegmentText, Content: "!"}, segments[4])
}

func TestParseAdjacentMentions(t *testing.T) {
	src := &fakeSource{posts: []models.Post{
		postWith("p1", "u1", "alice"),
		postWith("p2", "u2", "bob"),
	}}
	r := newTestResolver(src)

	segments := r.Parse("@alice@bob")
	require.Len(t, segments, 2)
	assert.Equal(t, "u1", segments[0].ResolvedUserID)
	assert.Equal(t, "u2", segments[1].ResolvedUserID)
}

func TestDirectoryIncludesCommentAuthors(t *testing.T) {
	src := &fakeSource{posts: []models.Post{
		postWith("p1", "u1", "alice", comment("u2", "bob")),
	}}
	r := newTestResolver(src)

	segments := r.Parse("@bob")
	require.Len(t, segments, 1)
	assert.Equal(t, "u2", segments[0].ResolvedUserID)
}

func TestExtractMentionedIDsDeduplicatesAndExcludesActor(t *testing.T) {
	src := &fakeSource{posts: []models.Post{
		postWith("p1", "u1", "alice"),
		postWith("p2", "u2", "bob"),
	}}
	r := newTestResolver(src)

	ids := r.ExtractMentionedIDs("@alice @bob @alice @nobody", "u2")
	assert.Equal(t, []string{"u1"}, ids)

	assert.Empty(t, r.ExtractMentionedIDs("just text", "u1"))
}

func TestRankCandidatesRestrictedToFollowing(t *testing.T) {
	src := &fakeSource{
		posts: []models.Post{
			postWith("p1", "u1", "alice"),
			postWith("p2", "u2", "bob"),
			postWith("p3", "u3", "carol"),
		},
		following: map[string][]string{"viewer": {"u1", "u2"}},
	}
	r := newTestResolver(src)

	candidates := r.RankCandidates(context.Background(), "viewer", "")
	require.Len(t, candidates, 2)
	for _, candidate := range candidates {
		assert.NotEqual(t, "u3", candidate.ID)
	}

	assert.Nil(t, r.RankCandidates(context.Background(), "", ""))
	assert.Nil(t, r.RankCandidates(context.Background(), "lonely", ""))
}

func TestRankCandidatesIncludesFollowedUsersWithoutContent(t *testing.T) {
	// A freshly followed user who has not posted or commented yet still
	// autocompletes, resolved from the user registry.
	src := &fakeSource{
		users: map[string]models.User{
			"u1": {ID: "u1", Name: "새내기", Avatar: "https://example.com/u1.png"},
		},
		following: map[string][]string{"viewer": {"u1"}},
	}
	r := newTestResolver(src)

	candidates := r.RankCandidates(context.Background(), "viewer", "")
	require.Len(t, candidates, 1)
	assert.Equal(t, "새내기", candidates[0].Name)
	assert.Equal(t, "https://example.com/u1.png", candidates[0].Avatar)
}

func TestRankCandidatesOrdersByInteraction(t *testing.T) {
	// Viewer commented twice on bob's post (score 4) and liked alice's
	// post (score 1).
	src := &fakeSource{
		posts: []models.Post{
			postWith("p1", "u1", "alice"),
			postWith("p2", "u2", "bob",
				comment("viewer", "me"), comment("viewer", "me")),
		},
		likes:     map[string]map[string]bool{"p1": {"viewer": true}},
		following: map[string][]string{"viewer": {"u1", "u2"}},
	}
	r := newTestResolver(src)

	candidates := r.RankCandidates(context.Background(), "viewer", "")
	require.Len(t, candidates, 2)
	assert.Equal(t, "bob", candidates[0].Name)
	assert.Equal(t, "alice", candidates[1].Name)
}

func TestRankCandidatesTiesBreakByName(t *testing.T) {
	src := &fakeSource{
		posts: []models.Post{
			postWith("p1", "u1", "나무"),
			postWith("p2", "u2", "가을"),
		},
		following: map[string][]string{"viewer": {"u1", "u2"}},
	}
	r := newTestResolver(src)

	candidates := r.RankCandidates(context.Background(), "viewer", "")
	require.Len(t, candidates, 2)
	assert.Equal(t, "가을", candidates[0].Name)
	assert.Equal(t, "나무", candidates[1].Name)
}

func TestRankCandidatesQueryFilter(t *testing.T) {
	src := &fakeSource{
		posts: []models.Post{
			postWith("p1", "u1", "Alice"),
			postWith("p2", "u2", "bob"),
		},
		following: map[string][]string{"viewer": {"u1", "u2"}},
	}
	r := newTestResolver(src)

	candidates := r.RankCandidates(context.Background(), "viewer", "ali")
	require.Len(t, candidates, 1)
	assert.Equal(t, "Alice", candidates[0].Name)
}
