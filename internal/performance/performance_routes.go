package performance

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	pr := r.Group("/performance/reviews")
	{
		pr.POST("",
			middleware.Authorize(authzService, "performance", "create"),
			h.Create,
		)
		pr.GET("/me", h.MyReviews)
		pr.GET("",
			middleware.Authorize(authzService, "performance", "read"),
			h.GetAll,
		)
		pr.GET("/:id",
			middleware.Authorize(authzService, "performance", "read"),
			h.GetById,
		)
		pr.GET("/employees/:id",
			middleware.Authorize(authzService, "performance", "read"),
			h.EmployeeReviews,
		)
	}
}
