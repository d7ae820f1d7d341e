package leave

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	lv := r.Group("/leave")
	{
		lv.GET("/types", h.GetTypes)
		lv.POST("/types",
			middleware.Authorize(authzService, "leave", "update"),
			h.CreateType,
		)
		lv.PUT("/types/:id",
			middleware.Authorize(authzService, "leave", "update"),
			h.UpdateType,
		)

		lv.GET("/balances/me", h.MyBalances)
		lv.GET("/employees/:id/balances",
			middleware.Authorize(authzService, "leave", "read"),
			h.EmployeeBalances,
		)

		lv.POST("/requests",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Authorize(authzService, "leave", "create"),
			h.Apply,
		)
		lv.GET("/requests/me", h.MyRequests)
		lv.GET("/requests",
			middleware.Authorize(authzService, "leave", "read"),
			h.GetAllRequests,
		)
		lv.GET("/requests/:id",
			middleware.Authorize(authzService, "leave", "read"),
			h.GetRequest,
		)
		lv.POST("/requests/:id/approve",
			middleware.Authorize(authzService, "leave", "approve"),
			h.Approve,
		)
		lv.POST("/requests/:id/reject",
			middleware.Authorize(authzService, "leave", "approve"),
			h.Reject,
		)
		lv.POST("/requests/:id/cancel",
			middleware.Authorize(authzService, "leave", "create"),
			h.Cancel,
		)
	}
}
