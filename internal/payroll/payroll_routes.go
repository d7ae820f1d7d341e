package payroll

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authzService authz.Service, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	pr := r.Group("/payroll")
	{
		pr.POST("/structures",
			middleware.Authorize(authzService, "payroll", "create"),
			h.CreateStructure,
		)
		pr.GET("/employees/:id/structures",
			middleware.Authorize(authzService, "payroll", "read"),
			h.GetStructures,
		)

		if redisClient != nil {
			pr.POST("/generate",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(0.05, 1),
				middleware.Authorize(authzService, "payroll", "generate"),
				h.Generate,
			)
		} else {
			pr.POST("/generate",
				middleware.RateLimitByUser(0.05, 1),
				middleware.Authorize(authzService, "payroll", "generate"),
				h.Generate,
			)
		}

		pr.GET("",
			middleware.Authorize(authzService, "payroll", "read"),
			h.GetAll,
		)
		pr.GET("/me", h.MyPayrolls)
		pr.GET("/statistics",
			middleware.Authorize(authzService, "payroll", "read"),
			h.Statistics,
		)
		pr.GET("/:id",
			middleware.Authorize(authzService, "payroll", "read"),
			h.GetById,
		)
		pr.GET("/:id/payslip",
			middleware.Authorize(authzService, "payroll", "read"),
			h.DownloadPayslip,
		)

		pr.POST("/:id/process",
			middleware.Authorize(authzService, "payroll", "update"),
			h.Process,
		)
		pr.POST("/:id/approve",
			middleware.Authorize(authzService, "payroll", "approve"),
			h.Approve,
		)
		pr.POST("/:id/mark-paid",
			middleware.Authorize(authzService, "payroll", "update"),
			h.MarkPaid,
		)
		pr.POST("/:id/cancel",
			middleware.Authorize(authzService, "payroll", "update"),
			h.Cancel,
		)
	}
}
