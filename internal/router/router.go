package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/decidly/backend/internal/handlers"
	"github.com/decidly/backend/internal/middleware"
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/repositories"
	"github.com/decidly/backend/internal/services"
	"github.com/decidly/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.ApplicationItem{},
		&models.Member{},
		&models.Relation{},
		&models.FriendRequest{},
		&models.Question{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	appRepo := repositories.NewPostgresApplicationRepository(pgdb)
	memberRepo := repositories.NewPostgresMemberRepository(pgdb)
	relationRepo := repositories.NewPostgresRelationRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	questionRepo := repositories.NewPostgresQuestionRepository(pgdb)
	resultRepo := repositories.NewMongoResultRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Initialize Services ---
	familyService := services.NewFamilyService(appRepo, memberRepo, relationRepo, resultRepo, logger)
	socialService := services.NewSocialService(friendshipRepo, userRepo, logger)
	questionService := services.NewQuestionService(questionRepo, friendshipRepo, userRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, socialService)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Application routes
	applicationHandler := handlers.NewApplicationHandler(familyService)
	applicationHandler.RegisterApplicationRoutes(api)
	log.Println("Application routes configured.")

	// Family graph routes
	familyHandler := handlers.NewFamilyHandler(familyService)
	familyHandler.RegisterFamilyRoutes(api)
	log.Println("Family graph routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(socialService)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Question routes
	questionHandler := handlers.NewQuestionHandler(questionService)
	questionHandler.RegisterQuestionRoutes(api)
	log.Println("Question routes configured.")

	log.Println("All routes configured.")
}
