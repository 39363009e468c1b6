package router

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/retodoku/backend/internal/handlers"
	"github.com/retodoku/backend/internal/middleware"
	"github.com/retodoku/backend/internal/models"
	"github.com/retodoku/backend/internal/repositories"
	"github.com/retodoku/backend/internal/twitter"
	"github.com/retodoku/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		MaxAge:       86400,
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.PostcardTemplate{},
		&models.NFCPostcard{},
		&models.MeetupPhoto{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	templateRepo := repositories.NewPostgresTemplateRepository(db)
	postcardRepo := repositories.NewPostgresPostcardRepository(db)
	photoRepo := repositories.NewPostgresPhotoRepository(db)

	api := e.Group("/api")

	// Health check - always accessible
	healthHandler := handlers.NewHealthHandler(db)
	api.GET("/health", healthHandler.HealthCheck)

	// Twitter OAuth routes
	oauthService := twitter.NewService(twitter.Config{
		ConsumerKey:    cfg.TwitterConsumerKey,
		ConsumerSecret: cfg.TwitterConsumerSecret,
		CallbackURL:    cfg.TwitterCallbackURL,
	})
	authHandler := handlers.NewAuthHandler(userRepo, oauthService, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(api.Group("/auth/twitter"))
	log.Println("Auth routes configured.")

	// User routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Template routes
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	templateHandler.RegisterTemplateRoutes(api)
	log.Println("Template routes configured.")

	// Postcard routes; deletion requires a session token
	postcardHandler := handlers.NewPostcardHandler(postcardRepo, templateRepo)
	postcardHandler.RegisterPostcardRoutes(api)
	api.DELETE("/nfc-postcards/:hash", postcardHandler.DeletePostcard, middleware.SessionAuth(cfg.JWTSecret))
	log.Println("Postcard routes configured.")

	// Meetup photo routes
	photoHandler := handlers.NewPhotoHandler(photoRepo)
	photoHandler.RegisterPhotoRoutes(api)
	log.Println("Meetup photo routes configured.")

	log.Println("All routes configured.")
}
