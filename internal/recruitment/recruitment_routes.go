package recruitment

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	rec := r.Group("/recruitment")
	{
		rec.POST("/postings",
			middleware.Authorize(authzService, "recruitment", "create"),
			h.CreatePosting,
		)
		rec.GET("/postings",
			middleware.Authorize(authzService, "recruitment", "read"),
			h.GetPostings,
		)
		rec.GET("/postings/:id",
			middleware.Authorize(authzService, "recruitment", "read"),
			h.GetPostingById,
		)
		rec.PUT("/postings/:id",
			middleware.Authorize(authzService, "recruitment", "update"),
			h.UpdatePosting,
		)
		rec.POST("/postings/:id/candidates",
			middleware.Authorize(authzService, "recruitment", "create"),
			h.Apply,
		)
		rec.GET("/postings/:id/candidates",
			middleware.Authorize(authzService, "recruitment", "read"),
			h.PostingCandidates,
		)
		rec.GET("/candidates/:id",
			middleware.Authorize(authzService, "recruitment", "read"),
			h.GetCandidate,
		)
		rec.POST("/candidates/:id/status",
			middleware.Authorize(authzService, "recruitment", "update"),
			h.MoveCandidate,
		)
	}
}
