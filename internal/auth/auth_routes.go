package auth

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)

		auth.GET("/me", middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByUser(2, 5), h.Me)
		auth.POST("/change-password", middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByUser(0.5, 3), h.ChangePassword)
		auth.POST("/register",
			middleware.AuthMiddleware(jwtSecret),
			middleware.Authorize(authzService, "user", "create"),
			h.Register,
		)
	}
}
