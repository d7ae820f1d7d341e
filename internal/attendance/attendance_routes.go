package attendance

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	att := r.Group("/attendance")
	{
		att.POST("/check-in",
			middleware.RateLimitByUser(0.5, 3),
			middleware.Authorize(authzService, "attendance", "create"),
			h.CheckIn,
		)
		att.POST("/check-out",
			middleware.RateLimitByUser(0.5, 3),
			middleware.Authorize(authzService, "attendance", "create"),
			h.CheckOut,
		)
		att.GET("/me", h.MyAttendance)
		att.GET("",
			middleware.Authorize(authzService, "attendance", "read"),
			h.GetAll,
		)
		att.POST("/manual",
			middleware.Authorize(authzService, "attendance", "update"),
			h.ManualEntry,
		)
		att.GET("/employees/:id/summary",
			middleware.Authorize(authzService, "attendance", "read"),
			h.Summary,
		)

		att.GET("/holidays", h.GetHolidays)
		att.POST("/holidays",
			middleware.Authorize(authzService, "attendance", "update"),
			h.CreateHoliday,
		)
		att.DELETE("/holidays/:id",
			middleware.Authorize(authzService, "attendance", "update"),
			h.DeleteHoliday,
		)
	}
}
