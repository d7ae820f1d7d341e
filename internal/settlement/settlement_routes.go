package settlement

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	st := r.Group("/settlement")
	{
		st.POST("",
			middleware.Authorize(authzService, "settlement", "create"),
			h.Initiate,
		)
		st.GET("",
			middleware.Authorize(authzService, "settlement", "read"),
			h.GetAll,
		)
		st.GET("/me", h.Me)
		st.GET("/:id",
			middleware.Authorize(authzService, "settlement", "read"),
			h.GetById,
		)
		st.PUT("/:id/components",
			middleware.Authorize(authzService, "settlement", "update"),
			h.UpdateComponents,
		)
		st.POST("/:id/calculate",
			middleware.Authorize(authzService, "settlement", "update"),
			h.Calculate,
		)
		st.POST("/:id/approve",
			middleware.Authorize(authzService, "settlement", "approve"),
			h.Approve,
		)
		st.POST("/:id/mark-paid",
			middleware.Authorize(authzService, "settlement", "update"),
			h.MarkPaid,
		)
		st.POST("/:id/complete",
			middleware.Authorize(authzService, "settlement", "update"),
			h.Complete,
		)
		st.POST("/:id/cancel",
			middleware.Authorize(authzService, "settlement", "update"),
			h.Cancel,
		)
	}
}
