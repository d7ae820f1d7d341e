package employee

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authzService, "employee", "read"),
			h.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(authzService, "employee", "read"),
			h.GetOptions,
		)

		employees.GET("/me",
			middleware.RateLimitByUser(3, 10),
			h.Me,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authzService, "employee", "read"),
			h.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Authorize(authzService, "employee", "create"),
			h.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authzService, "employee", "update"),
			h.Update,
		)

		employees.POST("/:id/deactivate",
			middleware.RateLimitByUser(0.05, 1),
			middleware.Authorize(authzService, "employee", "delete"),
			h.Deactivate,
		)
	}
}
