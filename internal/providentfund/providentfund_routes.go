package providentfund

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	pf := r.Group("/provident-fund")
	{
		pf.POST("",
			middleware.Authorize(authzService, "providentfund", "create"),
			h.Open,
		)
		pf.GET("",
			middleware.Authorize(authzService, "providentfund", "read"),
			h.GetAll,
		)
		pf.GET("/me", h.Me)
		pf.GET("/employees/:id",
			middleware.Authorize(authzService, "providentfund", "read"),
			h.GetByEmployee,
		)
		pf.PUT("/employees/:id",
			middleware.Authorize(authzService, "providentfund", "update"),
			h.UpdatePercents,
		)
		pf.POST("/employees/:id/contributions",
			middleware.Authorize(authzService, "providentfund", "update"),
			h.PostContribution,
		)
	}
}
