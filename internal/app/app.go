package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"linkadmin/internal/config"
	"linkadmin/internal/handlers"
	"linkadmin/internal/repositories"
	"linkadmin/internal/routes"
	"linkadmin/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "linkadmin/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	refreshRepo := repositories.NewRefreshTokenRepository(db)
	blacklistRepo := repositories.NewBlacklistRepository(db)
	urlRepo := repositories.NewUrlRepository(db)

	// === Services ===
	hasher := services.NewBcryptHasher()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL.Std())
	refreshService := services.NewRefreshTokenService(refreshRepo, cfg.JWT.RefreshTokenTTL.Std())
	// a blacklist row only matters while the access token it revokes could
	// still verify; after the access TTL the sweep may reclaim it
	blacklistService := services.NewBlacklistService(blacklistRepo, cfg.JWT.AccessTokenTTL.Std())

	authService := services.NewAuthService(userRepo, hasher, tokenService, refreshService, blacklistService)
	accountService := services.NewAccountService(userRepo, hasher, emailService, cfg.Service)
	userService := services.NewUserService(userRepo)
	urlService := services.NewUrlService(urlRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	userHandler := handlers.NewUserHandler(userService)
	urlHandler := handlers.NewUrlHandler(urlService, userService)

	// === Background ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	blacklistService.StartSweeper(ctx, cfg.Service.BlacklistSweepInterval.Std())

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		tokenService,
		blacklistService,
		authHandler,
		accountHandler,
		userHandler,
		urlHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
