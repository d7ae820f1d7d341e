package middleware

import (
	"net/http"
	"strings"

	"go-hrm/internal/authz"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize checks the actor's role against a resource:action pair and
// stores the resolved access scope for query builders downstream.
func Authorize(service authz.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(authz.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action,
			)
			c.Abort()
			return
		}

		scope := authz.ResolveScope(role, c.GetString("employee_id"), c.GetString("department_id"))
		c.Set("access_scope", scope)

		c.Next()
	}
}

// ScopeFromContext returns the access scope stored by Authorize, defaulting
// to self-only when absent.
func ScopeFromContext(c *gin.Context) authz.Scope {
	if v, ok := c.Get("access_scope"); ok {
		if s, ok := v.(authz.Scope); ok {
			return s
		}
	}
	return authz.Scope{Kind: authz.ScopeSelf, EmployeeID: c.GetString("employee_id")}
}
