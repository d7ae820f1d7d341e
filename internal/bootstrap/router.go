package bootstrap

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the global middleware chain.
// Authentication is applied per route group by the module registry, not
// here.
func NewRouter(mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.RequestID(),
	)

	return r
}
