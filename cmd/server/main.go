package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/auth"
	"github.com/rooming-app/rooming/internal/config"
	"github.com/rooming-app/rooming/internal/handlers"
	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/mention"
	"github.com/rooming-app/rooming/internal/metrics"
	"github.com/rooming-app/rooming/internal/middleware"
	"github.com/rooming-app/rooming/internal/notify"
	"github.com/rooming-app/rooming/internal/realtime"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/social"
)

func main() {
	// Load environment variables
	envMissing := godotenv.Load() != nil

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FILE")); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Log.Info("Rooming server starting")
	if envMissing {
		logger.Log.Warn(".env file not found, using system environment variables")
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logger.Log.Fatal("JWT_SECRET environment variable is required")
	}

	metrics.Initialize()

	// Pick the store backend. Redis is the production store; memory keeps
	// local development dependency-free.
	var (
		store       kv.Store
		redisClient *kv.Redis
	)
	if os.Getenv("STORE_BACKEND") == "memory" {
		store = kv.NewMemory()
		logger.Log.Warn("Using in-memory store; data will not survive restarts")
	} else {
		var err error
		redisClient, err = kv.NewRedis(
			os.Getenv("REDIS_HOST"),
			os.Getenv("REDIS_PORT"),
			os.Getenv("REDIS_PASSWORD"),
			os.Getenv("REDIS_KEY_PREFIX"),
		)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = redisClient
	}

	ctx := context.Background()
	repo, err := repository.New(ctx, store)
	if err != nil {
		logger.Log.Fatal("Failed to load repository state", zap.Error(err))
	}

	graph := social.NewGraph(store)
	notifySvc := notify.NewService(store)
	resolver := mention.NewResolver(repo, repo, repo, graph)

	// OAuth is optional; native auth still works without it.
	oauthCfg, err := config.LoadOAuthConfig()
	if err != nil {
		logger.Log.Warn("OAuth disabled", zap.Error(err))
		oauthCfg = nil
	}

	var states auth.StateStore
	if redisClient != nil {
		states = auth.NewRedisStateStore(redisClient)
	} else {
		states = auth.NewMemoryStateStore()
	}
	authService := auth.NewService(jwtSecret, repo, oauthCfg, states)

	// Real-time push for notifications
	hub := realtime.NewHub()
	notifySvc.SetPusher(hub)
	wsHandler := realtime.NewHandler(hub, authService)

	h := handlers.NewHandlers(repo, graph, notifySvc, resolver)
	authHandlers := handlers.NewAuthHandlers(authService, repo, oauthCfg)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	if redisClient != nil {
		r.Use(middleware.RedisRateLimitMiddleware(redisClient, 300, time.Minute))
	}

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "rooming-backend",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)

	// API routes
	api := r.Group("/api/v1")
	{
		// Authentication routes (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandlers.Register)
			authGroup.POST("/login", authHandlers.Login)

			authGroup.GET("/check-email", authHandlers.CheckEmail)
			authGroup.GET("/check-nickname", authHandlers.CheckNickname)

			if oauthCfg != nil {
				authGroup.GET("/google", authHandlers.GoogleOAuth)
				authGroup.GET("/google/callback", authHandlers.GoogleCallback)
				authGroup.GET("/line", authHandlers.LineOAuth)
				authGroup.GET("/line/callback", authHandlers.LineCallback)
			}

			authGroup.POST("/onboarding", requireAuth, authHandlers.Onboarding)
			authGroup.GET("/me", requireAuth, authHandlers.Me)
		}

		// Feed: readable anonymously, personalized when a token is present
		api.GET("/feed", optionalAuth, h.GetFeed)

		// Posts: reads are public, mutations need a signed-in user
		posts := api.Group("/posts")
		{
			posts.GET("/:id", optionalAuth, h.GetPost)
			posts.POST("", requireAuth, h.CreatePost)
			posts.PUT("/:id", requireAuth, h.UpdatePost)
			posts.DELETE("/:id", requireAuth, h.DeletePost)
			posts.POST("/:id/like", requireAuth, h.ToggleLike)
			posts.POST("/:id/comments", requireAuth, h.CreateComment)
			posts.PUT("/:id/comments/:commentID", requireAuth, h.UpdateComment)
			posts.DELETE("/:id/comments/:commentID", requireAuth, h.DeleteComment)
		}

		// Users: profiles and lists are public, follow edges need auth
		users := api.Group("/users")
		{
			users.GET("/:id/profile", optionalAuth, h.GetUserProfile)
			users.GET("/:id/posts", optionalAuth, h.GetUserPosts)
			users.GET("/:id/followers", optionalAuth, h.GetUserFollowers)
			users.GET("/:id/following", optionalAuth, h.GetUserFollowing)
			users.POST("/:id/follow", requireAuth, h.FollowUser)
			users.DELETE("/:id/follow", requireAuth, h.UnfollowUser)
		}

		// Mentions
		mentions := api.Group("/mentions")
		{
			mentions.Use(requireAuth)
			mentions.GET("/candidates", h.GetMentionCandidates)
			mentions.POST("/parse", h.ParseMentions)
		}

		// Notifications
		notifications := api.Group("/notifications")
		{
			notifications.Use(requireAuth)
			notifications.GET("", h.GetNotifications)
			notifications.GET("/unread-count", h.GetUnreadCount)
			notifications.POST("/:id/read", h.MarkNotificationRead)
			notifications.POST("/read-all", h.MarkAllNotificationsRead)
		}

		// WebSocket push (auth via query token inside the handler)
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	// Server configuration
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info("Listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := hub.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warn("WebSocket shutdown warning", zap.Error(err))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
