package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freelahub/internal/domain"
	"freelahub/internal/pkg/response"
)

// RequireRole lets the request through only for the listed roles.
// It must run after JWTAuth.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

func CompanyOnly() gin.HandlerFunc    { return RequireRole(domain.RoleCompany) }
func FreelancerOnly() gin.HandlerFunc { return RequireRole(domain.RoleFreelancer) }
