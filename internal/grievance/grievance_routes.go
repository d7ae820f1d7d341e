package grievance

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	gr := r.Group("/grievances")
	{
		gr.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Authorize(authzService, "grievance", "create"),
			h.File,
		)
		gr.GET("/me", h.MyGrievances)
		gr.GET("",
			middleware.Authorize(authzService, "grievance", "read"),
			h.GetAll,
		)
		gr.GET("/:id",
			middleware.Authorize(authzService, "grievance", "read"),
			h.GetById,
		)
		gr.POST("/:id/assign",
			middleware.Authorize(authzService, "grievance", "update"),
			h.Assign,
		)
		gr.POST("/:id/investigate",
			middleware.Authorize(authzService, "grievance", "update"),
			h.StartInvestigation,
		)
		gr.POST("/:id/resolve",
			middleware.Authorize(authzService, "grievance", "update"),
			h.Resolve,
		)
		gr.POST("/:id/close",
			middleware.Authorize(authzService, "grievance", "update"),
			h.Close,
		)
	}
}
