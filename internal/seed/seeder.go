// Package seed fills a store with realistic development data: users with
// onboarding answers, room posts with comments, a follow graph, likes and
// the notifications those interactions fan out.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
	"github.com/rooming-app/rooming/internal/notify"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/social"
)

// SeedPassword is the password every generated account gets.
const SeedPassword = "password123"

var (
	interests = []string{
		"미니멀", "빈티지", "북유럽", "모던", "내추럴",
		"인더스트리얼", "플랜테리어", "홈카페", "홈오피스", "키즈룸",
	}
	residenceTypes = []string{"원룸", "오피스텔", "아파트", "빌라", "주택"}
	roomTags       = []string{
		"거실", "침실", "주방", "서재", "베란다", "화장실",
		"조명", "수납", "셀프인테리어", "집들이",
	}
	commentBodies = []string{
		"우와 너무 예뻐요!",
		"조명 정보 알 수 있을까요?",
		"이 소파 어디서 사셨어요?",
		"분위기 최고네요 👍",
		"저도 이렇게 꾸미고 싶어요",
		"색 조합이 정말 좋아요",
	}
)

// Seeder writes generated entities through the same repository and graph
// code paths the API handlers use, so seeded data obeys the same shapes.
type Seeder struct {
	repo   *repository.Repository
	graph  *social.Graph
	notify *notify.Service
	rng    *rand.Rand
}

func NewSeeder(repo *repository.Repository, graph *social.Graph, notifySvc *notify.Service) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		repo:   repo,
		graph:  graph,
		notify: notifySvc,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SeedDev generates a full development data set.
func (s *Seeder) SeedDev(ctx context.Context) error {
	logger.Log.Info("Creating users...")
	users, err := s.seedUsers(ctx, 30)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("Creating posts...")
	posts, err := s.seedPosts(ctx, users, 120)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	logger.Log.Info("Creating comments...")
	if err := s.seedComments(ctx, users, posts, 300); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	logger.Log.Info("Creating follow graph...")
	if err := s.seedFollows(ctx, users, 5); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}

	logger.Log.Info("Creating likes...")
	if err := s.seedLikes(ctx, users, posts, 400); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}

	return nil
}

// SeedTest generates the minimal fixture set end-to-end tests expect:
// a handful of known accounts, a couple of posts each, and one follow chain.
func (s *Seeder) SeedTest(ctx context.Context) error {
	names := []string{"alice", "bob", "charlie", "diana", "eve"}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var users []models.User
	for _, name := range names {
		if existing, err := s.repo.UserByName(name); err == nil {
			users = append(users, *existing)
			continue
		}
		user := models.User{
			ID:            models.NewID(),
			Email:         name + "@example.com",
			Name:          name,
			Avatar:        avatarURL(name),
			Interests:     []string{interests[0]},
			ResidenceType: residenceTypes[0],
			PasswordHash:  string(hash),
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.repo.AddUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", name, err)
		}
		users = append(users, user)
	}

	if _, err := s.seedPosts(ctx, users, 2*len(users)); err != nil {
		return err
	}

	// alice → bob → charlie → ... chain, so feeds are non-trivial.
	for i := 1; i < len(users); i++ {
		if _, err := s.graph.Follow(ctx, users[i-1].ID, users[i].ID); err != nil {
			return fmt.Errorf("failed to follow: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s%d", gofakeit.Word(), s.rng.Intn(1000))
		user := models.User{
			ID:            models.NewID(),
			Email:         gofakeit.Email(),
			Name:          name,
			Avatar:        avatarURL(name),
			Interests:     s.pick(interests, 1+s.rng.Intn(3)),
			ResidenceType: residenceTypes[s.rng.Intn(len(residenceTypes))],
			PasswordHash:  string(hash),
			CreatedAt:     time.Now().UTC().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.repo.AddUser(ctx, user); err != nil {
			// Generated email or name collided; skip and keep going.
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedPosts(ctx context.Context, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		images := make([]string, 1+s.rng.Intn(3))
		for j := range images {
			images[j] = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", models.NewID()[:8])
		}
		post := models.Post{
			ID:          models.NewID(),
			UserID:      author.ID,
			UserName:    author.Name,
			UserAvatar:  author.Avatar,
			Images:      images,
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Sentence(12),
			Tags:        s.pick(roomTags, 1+s.rng.Intn(3)),
			Comments:    []models.Comment{},
			CreatedAt:   time.Now().UTC().Add(-time.Duration(s.rng.Intn(60*24)) * time.Hour),
		}
		if err := s.repo.AddPost(ctx, post); err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(ctx context.Context, users []models.User, posts []models.Post, count int) error {
	for i := 0; i < count; i++ {
		post := posts[s.rng.Intn(len(posts))]
		author := users[s.rng.Intn(len(users))]
		comment := models.Comment{
			ID:         models.NewID(),
			UserID:     author.ID,
			UserName:   author.Name,
			UserAvatar: author.Avatar,
			Content:    commentBodies[s.rng.Intn(len(commentBodies))],
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.repo.AddComment(ctx, post.ID, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if fresh, err := s.repo.PostByID(post.ID); err == nil {
			s.notify.OnComment(ctx, fresh, &author, &comment)
		}
	}
	return nil
}

// seedFollows gives every user roughly avgFollows outgoing edges.
func (s *Seeder) seedFollows(ctx context.Context, users []models.User, avgFollows int) error {
	for _, user := range users {
		n := 1 + s.rng.Intn(avgFollows*2)
		for i := 0; i < n; i++ {
			target := users[s.rng.Intn(len(users))]
			created, err := s.graph.Follow(ctx, user.ID, target.ID)
			if err != nil {
				return fmt.Errorf("failed to follow: %w", err)
			}
			if created {
				s.notify.OnFollow(ctx, &user, target.ID)
			}
		}
	}
	return nil
}

func (s *Seeder) seedLikes(ctx context.Context, users []models.User, posts []models.Post, count int) error {
	for i := 0; i < count; i++ {
		post := posts[s.rng.Intn(len(posts))]
		actor := users[s.rng.Intn(len(users))]
		liked := s.repo.ToggleLike(ctx, post.ID, actor.ID)
		if liked {
			if fresh, err := s.repo.PostByID(post.ID); err == nil {
				s.notify.OnLike(ctx, fresh, &actor)
			}
		}
	}
	return nil
}

// pick returns up to n distinct random elements of pool.
func (s *Seeder) pick(pool []string, n int) []string {
	idx := s.rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", name)
}
