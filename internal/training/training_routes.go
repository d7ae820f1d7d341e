package training

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	tr := r.Group("/training")
	{
		tr.GET("/programs", h.GetPrograms)
		tr.POST("/programs",
			middleware.Authorize(authzService, "training", "create"),
			h.CreateProgram,
		)
		tr.PUT("/programs/:id",
			middleware.Authorize(authzService, "training", "update"),
			h.UpdateProgram,
		)
		tr.POST("/programs/:id/participants",
			middleware.Authorize(authzService, "training", "update"),
			h.Enroll,
		)
		tr.GET("/programs/:id/participants",
			middleware.Authorize(authzService, "training", "read"),
			h.ProgramParticipants,
		)
		tr.GET("/me", h.MyTrainings)
		tr.PUT("/participants/:id",
			middleware.Authorize(authzService, "training", "update"),
			h.CompleteParticipant,
		)
	}
}
