package organization

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the hierarchy and designation endpoints. The parent
// group is expected to carry the authentication middleware already.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service) {
	org := r.Group("/organization")

	{
		org.GET("/groups/options", middleware.Authorize(authzService, "organization", "read"), h.RootOptions)
		org.GET("/designations", middleware.Authorize(authzService, "organization", "read"), h.GetAllDesignations)
		org.POST("/designations", middleware.Authorize(authzService, "organization", "create"), h.CreateDesignation)
		org.GET("/designations/:id", middleware.Authorize(authzService, "organization", "read"), h.GetDesignation)
		org.PUT("/designations/:id", middleware.Authorize(authzService, "organization", "update"), h.UpdateDesignation)
		org.DELETE("/designations/:id", middleware.Authorize(authzService, "organization", "delete"), h.DeleteDesignation)
		org.GET("/departments/:id/designations", middleware.Authorize(authzService, "organization", "read"), h.DesignationOptions)

		org.GET("/:level", middleware.Authorize(authzService, "organization", "read"), h.GetAllNodes)
		org.POST("/:level", middleware.Authorize(authzService, "organization", "create"), h.CreateNode)
		org.GET("/:level/:id", middleware.Authorize(authzService, "organization", "read"), h.GetNode)
		org.PUT("/:level/:id", middleware.Authorize(authzService, "organization", "update"), h.UpdateNode)
		org.DELETE("/:level/:id", middleware.Authorize(authzService, "organization", "delete"), h.DeleteNode)
		org.GET("/:level/:id/children", middleware.Authorize(authzService, "organization", "read"), h.Children)
	}
}
