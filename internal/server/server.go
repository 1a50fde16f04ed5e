package server

import (
	"log"
	"strings"
	"time"

	"arjuna.id/healthquest/internal/config"
	"arjuna.id/healthquest/internal/handler"
	"arjuna.id/healthquest/internal/middleware"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/internal/service"
	"arjuna.id/healthquest/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	questRepo := repository.NewQuestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := service.NewAuthService(userRepo, imageStorage, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	progressionSvc := service.NewProgressionService(userRepo, notificationSvc)
	profileHandler := handler.NewProfileHandler(progressionSvc)

	questSvc := service.NewQuestService(questRepo)
	questHandler := handler.NewQuestHandler(questSvc)

	postSvc := service.NewPostService(postRepo, searchSvc, imageStorage, redisClient, cfg.RateLimitGlobal, cfg.RateLimitPost)
	postHandler := handler.NewPostHandler(postSvc)

	engagementSvc := service.NewEngagementService(postRepo, notificationSvc)
	engagementHandler := handler.NewEngagementHandler(engagementSvc)

	leaderboardSvc := service.NewLeaderboardService(userRepo)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	userSvc := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/posts", postHandler.GetAllPosts)
	api.GET("/quests", questHandler.GetAllQuests)
	api.GET("/quests/:id", questHandler.GetQuestByID)
	api.GET("/leaderboard", leaderboardHandler.GetGlobalRanking)
	api.GET("/leaderboard/:id", leaderboardHandler.GetUserRank)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Profile & progression
		protected.GET("/profile", profileHandler.GetProfile)
		protected.POST("/quests/complete", profileHandler.CompleteQuest)
		protected.GET("/quests/completed", profileHandler.GetCompletedQuests)

		// Posts
		protected.POST("/posts", postHandler.CreatePost)
		protected.GET("/posts/search", postHandler.SearchPosts)
		protected.GET("/posts/:id", postHandler.GetPostByID)
		protected.PUT("/posts/:id", postHandler.UpdatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)

		// Engagement
		protected.PUT("/posts/:id/like", engagementHandler.ToggleLike)
		protected.POST("/posts/:id/comments", engagementHandler.AddComment)
		protected.POST("/posts/:id/share", engagementHandler.SharePost)

		// Notifications
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", userHandler.GetAllUsers)
			adminGroup.GET("/users/:id", userHandler.GetUserByID)
			adminGroup.PUT("/users/:id", userHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
