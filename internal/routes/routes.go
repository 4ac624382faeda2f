package routes

import (
	"github.com/gin-gonic/gin"

	"linkadmin/internal/handlers"
	"linkadmin/internal/middleware"
	"linkadmin/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	tokenService services.TokenService,
	blacklistService services.BlacklistService,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	userHandler *handlers.UserHandler,
	urlHandler *handlers.UrlHandler,
) *gin.Engine {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// ---- public
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	// logout reads its own Bearer header so an already-blacklisted token still
	// gets a clean answer instead of a middleware reject
	api.POST("/auth/logout", authHandler.Logout)

	accounts := api.Group("/accounts")
	{
		accounts.POST("/signup", accountHandler.Signup)
		accounts.GET("/verification/:token", accountHandler.VerifyToken)
		accounts.POST("/resend-verification", accountHandler.ResendVerificationCode)
		accounts.POST("/validate-code", accountHandler.ValidateCode)
		accounts.POST("/reset-password", accountHandler.RequestPasswordReset)
		accounts.GET("/reset-password/:token", accountHandler.VerifyResetToken)
		accounts.POST("/change-password", accountHandler.ChangePassword)
	}

	// ---- protected
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenService, blacklistService))

	users := protected.Group("/users")
	{
		users.GET("/", userHandler.ListUsers)
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.DELETE("/me", userHandler.DeleteMe)
	}

	urls := protected.Group("/urls")
	{
		urls.POST("/", urlHandler.Create)
		urls.GET("/", urlHandler.List)
		urls.GET("/:id", urlHandler.Get)
		urls.PATCH("/:id", urlHandler.Update)
		urls.DELETE("/:id", urlHandler.Delete)
	}

	return r
}
