package document

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	docs := r.Group("/documents")
	{
		docs.POST("/categories",
			middleware.Authorize(authzService, "document", "create"),
			h.CreateCategory,
		)
		docs.GET("/categories", h.GetCategories)
		docs.PUT("/categories/:id",
			middleware.Authorize(authzService, "document", "update"),
			h.UpdateCategory,
		)
		docs.POST("",
			middleware.Authorize(authzService, "document", "create"),
			h.Add,
		)
		docs.GET("/me", h.MyDocuments)
		docs.GET("/expiring",
			middleware.Authorize(authzService, "document", "read"),
			h.Expiring,
		)
		docs.GET("/:id",
			middleware.Authorize(authzService, "document", "read"),
			h.GetById,
		)
		docs.GET("/employees/:id",
			middleware.Authorize(authzService, "document", "read"),
			h.EmployeeDocuments,
		)
		docs.POST("/:id/verify",
			middleware.Authorize(authzService, "document", "update"),
			h.Verify,
		)
	}
}
