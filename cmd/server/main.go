package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/aditraka/go-taskpilot-backend/internal/api/handlers"
	"github.com/aditraka/go-taskpilot-backend/internal/config"
	"github.com/aditraka/go-taskpilot-backend/internal/middleware"
	"github.com/aditraka/go-taskpilot-backend/internal/repository"
	"github.com/aditraka/go-taskpilot-backend/internal/service"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// LOGGER
	var logger *zap.Logger
	if cfg.AppEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("failed init logger:", err)
	}
	defer logger.Sync()

	// INIT DB
	repo, err := repository.NewPostgresRepo(cfg.DSN())
	if err != nil {
		log.Fatal("failed connect db:", err)
	}

	// MIGRATIONS
	if err := repo.RunMigrations(context.Background()); err != nil {
		log.Fatal("migration error:", err)
	}

	// SERVICES
	resolver := service.NewCredentialResolver(repo, cfg.TodoistToken, logger)
	todoistService := service.NewTodoistService(resolver, repo, cfg.TodoistBaseURL, logger)
	geminiService := service.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, "", logger)
	breakdownPipeline := service.NewBreakdownPipeline(geminiService, todoistService, logger)

	// OAUTH
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	// HANDLERS
	authHandler := handlers.NewAuthHandler(oauthCfg, cfg.JWTSecret, logger)
	taskHandler := handlers.NewTaskHandler(todoistService, breakdownPipeline, logger)
	agentHandler := handlers.NewAgentHandler(geminiService, logger)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := r.Group("/api/v1")

	// AUTH ROUTES (public)
	auth := api.Group("/auth")
	{
		auth.GET("/login", authHandler.Login)
		auth.GET("/callback", authHandler.Callback)
	}

	// SESSION-PROTECTED ROUTES
	protected := api.Group("")
	protected.Use(middleware.SessionAuth(cfg.JWTSecret))
	{
		protected.GET("/tasks", taskHandler.ListTasks)
		protected.GET("/tasks/all", taskHandler.ListAllTasks)
		protected.POST("/tasks/complete", taskHandler.CompleteTask)
		protected.POST("/ai/breakdown", taskHandler.BreakdownTask)
		protected.POST("/connect", taskHandler.ConnectTodoist)
		protected.POST("/agent", agentHandler.Chat)
	}

	// START SERVER
	logger.Info("server running", zap.String("port", cfg.Port))
	r.Run(":" + cfg.Port)
}
