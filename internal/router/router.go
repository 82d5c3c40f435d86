package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/gracepointapp/church-connect/backend/internal/handlers"
	"github.com/gracepointapp/church-connect/backend/internal/middleware"
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/gracepointapp/church-connect/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// messagingClient may be nil; push delivery is then disabled.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, messagingClient *messaging.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.Like{},
		&models.Comment{},
		&models.GroupMembership{},
		&models.EventRSVP{},
		&models.PrayerResponse{},
		&models.DeviceToken{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mgdb := mgClient.Database(cfg.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	membershipRepo := repositories.NewPostgresGroupMembershipRepository(pgdb)
	rsvpRepo := repositories.NewPostgresEventRSVPRepository(pgdb)
	prayerResponseRepo := repositories.NewPostgresPrayerResponseRepository(pgdb)
	deviceTokenRepo := repositories.NewPostgresDeviceTokenRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	eventRepo := repositories.NewMongoEventRepository(mgdb)
	groupRepo := repositories.NewMongoGroupRepository(mgdb)
	prayerRepo := repositories.NewMongoPrayerRepository(mgdb)
	sermonRepo := repositories.NewMongoSermonRepository(mgdb)
	conversationRepo := repositories.NewMongoConversationRepository(mgdb)
	streamRepo := repositories.NewMongoLiveStreamRepository(mgdb)

	// --- Realtime gateway and notification fan-out ---
	gateway := realtime.NewGateway()
	var push notify.PushSender
	if messagingClient != nil {
		push = notify.NewFCMPushSender(messagingClient, deviceTokenRepo)
	}
	fanout := notify.NewFanout(notificationRepo, userRepo, gateway, push)

	socketHandler := realtime.NewSocketHandler(gateway)
	e.GET("/ws", socketHandler.ServeWS)
	log.Println("Realtime gateway configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Staff-only subgroup for announcement-grade writes
	staff := e.Group("/api/v1")
	staff.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireElevatedRole())

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, deviceTokenRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	log.Println("User profile routes configured.")

	// Firebase-token-authenticated lookup for clients that have not exchanged
	// their ID token for an app JWT yet
	fb := e.Group("/api/v1/firebase")
	fb.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	fb.GET("/me", userHandler.GetFirebaseProfile)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, fanout, gateway)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, likeRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, fanout, gateway)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, fanout, gateway)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Event routes
	eventHandler := handlers.NewEventHandler(eventRepo, rsvpRepo, userRepo, fanout, gateway)
	eventHandler.RegisterEventRoutes(api, staff)
	log.Println("Event routes configured.")

	// Group routes
	groupHandler := handlers.NewGroupHandler(groupRepo, membershipRepo, fanout)
	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")

	// Prayer routes
	prayerHandler := handlers.NewPrayerHandler(prayerRepo, prayerResponseRepo, fanout)
	prayerHandler.RegisterPrayerRoutes(api)
	log.Println("Prayer routes configured.")

	// Sermon routes
	sermonHandler := handlers.NewSermonHandler(sermonRepo, gateway)
	sermonHandler.RegisterSermonRoutes(api, staff)
	log.Println("Sermon routes configured.")

	// Messaging routes
	messageHandler := handlers.NewMessageHandler(conversationRepo, fanout, gateway)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Messaging routes configured.")

	// Live stream routes
	streamHandler := handlers.NewLiveStreamHandler(streamRepo, gateway)
	streamHandler.RegisterLiveStreamRoutes(api, staff)
	log.Println("Live stream routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
