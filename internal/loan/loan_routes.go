package loan

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	ln := r.Group("/loans")
	{
		ln.GET("/types", h.GetTypes)
		ln.POST("/types",
			middleware.Authorize(authzService, "loan", "update"),
			h.CreateType,
		)
		ln.PUT("/types/:id",
			middleware.Authorize(authzService, "loan", "update"),
			h.UpdateType,
		)

		ln.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Authorize(authzService, "loan", "create"),
			h.Apply,
		)
		ln.GET("/me", h.MyLoans)
		ln.GET("",
			middleware.Authorize(authzService, "loan", "read"),
			h.GetAll,
		)
		ln.GET("/:id",
			middleware.Authorize(authzService, "loan", "read"),
			h.GetById,
		)
		ln.POST("/:id/approve",
			middleware.Authorize(authzService, "loan", "approve"),
			h.Approve,
		)
		ln.POST("/:id/reject",
			middleware.Authorize(authzService, "loan", "approve"),
			h.Reject,
		)
		ln.POST("/:id/disburse",
			middleware.Authorize(authzService, "loan", "update"),
			h.Disburse,
		)
		ln.POST("/:id/repayments",
			middleware.Authorize(authzService, "loan", "update"),
			h.Repay,
		)
	}
}
