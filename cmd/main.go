package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"socialgram/internal/auth"
	"socialgram/internal/config"
	"socialgram/internal/database"
	"socialgram/internal/handlers"
	"socialgram/internal/services"
	"socialgram/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg.GetDSN(), cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Blob storage for post media
	mediaStore, err := storage.NewMediaStore(cfg.Media.Dir)
	if err != nil {
		logger.Fatal("failed to initialize media store", zap.Error(err))
	}

	// Initialize services
	authService := services.NewAuthService(db, logger)
	userService := services.NewUserService(db, logger)
	feedService := services.NewFeedService(db)
	adService := services.NewAdService(db, logger)
	collabService := services.NewCollabService(db)
	postService := services.NewPostService(db, mediaStore, logger)
	messageService := services.NewMessageService(db, logger)
	catalogService := services.NewCatalogService(db)
	searchService := services.NewSearchService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	feedHandler := handlers.NewFeedHandler(feedService, adService, collabService, userService)
	postHandler := handlers.NewPostHandler(postService)
	messageHandler := handlers.NewMessageHandler(messageService, userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	searchHandler := handlers.NewSearchHandler(searchService)
	adminHandler := handlers.NewAdminHandler(adminService, userService, adService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Uploaded post media is served as plain static files.
	router.Static("/media", mediaStore.Dir())

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.Required(db))
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Post viewing renders for anonymous visitors too
	public := router.Group("/api")
	public.Use(auth.Optional(db))
	{
		public.GET("/posts/:id", postHandler.GetPost)
		public.GET("/posts/:id/comments", postHandler.GetComments)
		public.GET("/users/:id", userHandler.GetProfile)
		public.GET("/users/:id/username", userHandler.GetUsername)
		public.GET("/users/:id/display-name", userHandler.GetDisplayName)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.Required(db))
	{
		// Feed endpoints
		api.GET("/feed/posts", feedHandler.GetFeedPosts)
		api.GET("/feed/stories", feedHandler.GetFeedStories)
		api.GET("/feed/ad", feedHandler.GetBannerAd)
		api.GET("/feed/info", feedHandler.GetUserFeedInfo)
		api.POST("/ads/click", feedHandler.ClickAd)
		api.POST("/collabs", feedHandler.UpdateCollab)

		// Post endpoints
		api.POST("/posts", postHandler.CreatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/comments", postHandler.AddComment)

		// Social graph endpoints
		api.POST("/users/:id/follow", userHandler.Follow)
		api.POST("/users/:id/unfollow", userHandler.Unfollow)
		api.GET("/users/blocked", userHandler.GetBlockedUsers)
		api.POST("/settings", userHandler.UpdateSettings)

		// Messaging endpoints
		api.POST("/messages/chat", messageHandler.GetChat)
		api.POST("/messages/groups", messageHandler.CreateGroup)
		api.GET("/messages/groups", messageHandler.ListGroups)
		api.GET("/messages/groups/:id", messageHandler.GetGroupInfo)
		api.POST("/messages/groups/:id/members", messageHandler.AddMember)
		api.GET("/messages/groups/:id/messages", messageHandler.GetMessages)
		api.POST("/messages/groups/:id/messages", messageHandler.SendMessage)

		// Catalog endpoints
		api.GET("/locations", catalogHandler.ListLocations)
		api.POST("/locations", catalogHandler.CreateLocation)
		api.PUT("/locations/:id", catalogHandler.UpdateLocation)
		api.DELETE("/locations/:id", catalogHandler.DeleteLocation)
		api.GET("/locations/:id/posts", catalogHandler.GetPostsByLocation)
		api.GET("/songs", catalogHandler.ListSongs)
		api.PUT("/songs/:id", catalogHandler.UpdateSong)
		api.GET("/categories", catalogHandler.ListProductCategories)
		api.POST("/categories", catalogHandler.AddProductCategory)
		api.PUT("/categories/:id", catalogHandler.UpdateProductCategory)
		api.DELETE("/categories/:id", catalogHandler.DeleteProductCategory)

		// Search endpoints
		api.POST("/search/users", searchHandler.Search)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.Required(db))
	admin.Use(adminHandler.RequireAdmin())
	{
		// User management
		admin.GET("/users", adminHandler.GetUsers)
		admin.POST("/users/:id/admin", adminHandler.MakeAdmin)
		admin.DELETE("/users/:id/admin", adminHandler.RemoveAdmin)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		// Reports
		admin.GET("/reports/active-users", adminHandler.GetActiveUsers)
		admin.GET("/reports/ad-clicks", adminHandler.GetAdClicks)
		admin.GET("/reports/successful-ads", adminHandler.GetSuccessfulAds)
		admin.GET("/reports/viewed-by-all", adminHandler.GetViewedByAllAds)

		// Schema browsing
		admin.GET("/tables", adminHandler.GetTables)
		admin.GET("/tables/:table/attributes", adminHandler.GetAttributes)
		admin.POST("/tables/:table/rows", adminHandler.GetSelectedAttributes)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
