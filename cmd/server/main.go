package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/config"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	"github.com/streamseed/streamseed-api/internal/handlers"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * constants.SessionMaxAgeDays,
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	inboxRepo := repository.NewInboxRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, nil)
	projectService := services.NewProjectService(projectRepo, campaignRepo, nil)
	campaignService := services.NewCampaignService(campaignRepo, projectRepo, aiService, nil)
	engagementService := services.NewEngagementService(engagementRepo, campaignRepo, inboxRepo, nil)
	inboxService := services.NewInboxService(inboxRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	projectHandler := handlers.NewProjectHandler(projectService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	inboxHandler := handlers.NewInboxHandler(inboxService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Streamseed API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
			auth.GET("/oauth/:provider", authHandler.OAuthRedirect)
			auth.GET("/oauth/:provider/callback", authHandler.OAuthCallback)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.Get)
			projects.PATCH("/:id", middleware.RequireProjectAccess(), projectHandler.Update)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.Delete)
			projects.GET("/:id/campaigns", middleware.RequireProjectAccess(), projectHandler.ListCampaigns)
		}

		// Campaign routes (protected)
		campaigns := api.Group("/campaigns")
		campaigns.Use(middleware.RequireAuth())
		{
			campaigns.POST("", campaignHandler.Create)
			campaigns.GET("", campaignHandler.List)
			campaigns.POST("/generate", campaignHandler.Generate)
			campaigns.GET("/:id", middleware.RequireCampaignAccess(), campaignHandler.Get)
			campaigns.PATCH("/:id", middleware.RequireCampaignAccess(), campaignHandler.Update)
			campaigns.DELETE("/:id", middleware.RequireCampaignAccess(), campaignHandler.Delete)
			campaigns.POST("/:id/invites", middleware.RequireCampaignAccess(), engagementHandler.InviteCreator)
			campaigns.GET("/:id/invites", middleware.RequireCampaignAccess(), engagementHandler.ListInvites)
			campaigns.POST("/:id/metrics", middleware.RequireCampaignAccess(), engagementHandler.RecordMetric)
			campaigns.GET("/:id/metrics", middleware.RequireCampaignAccess(), engagementHandler.ListMetrics)
		}

		// Creator routes (protected)
		creators := api.Group("/creators")
		creators.Use(middleware.RequireAuth())
		{
			creators.POST("", engagementHandler.CreateCreator)
			creators.GET("/:id", engagementHandler.GetCreator)
		}

		// Invite responses (protected)
		invites := api.Group("/invites")
		invites.Use(middleware.RequireAuth())
		{
			invites.POST("/:id/respond", engagementHandler.RespondToInvite)
		}

		// Messaging routes (protected)
		messages := api.Group("/messages")
		messages.Use(middleware.RequireAuth())
		{
			messages.POST("", inboxHandler.SendMessage)
			messages.GET("/:userID", inboxHandler.ListConversation)
			messages.PATCH("/read/:id", inboxHandler.MarkMessageRead)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", inboxHandler.ListNotifications)
			notifications.PATCH("/:id/read", inboxHandler.MarkNotificationRead)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
