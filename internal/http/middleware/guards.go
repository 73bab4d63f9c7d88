package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
)

// RequireManager runs after RequireAuth and rejects non-manager callers.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil || rd.Role != domain.RoleManager {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorEnvelope{
				Error: response.APIError{Message: "manager role required", Code: "forbidden"},
			})
			return
		}
		c.Next()
	}
}

// RequireActive rejects professionals whose approval is still pending or
// was refused. Managers pass unconditionally.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorEnvelope{
				Error: response.APIError{Message: "missing or invalid token", Code: "unauthenticated"},
			})
			return
		}
		if rd.Role == domain.RoleProfessional && rd.ApprovalState != domain.ApprovalActive {
			if rd.ApprovalState == domain.ApprovalRejected {
				c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorEnvelope{
					Error: response.APIError{Message: "registration was rejected", Code: "forbidden"},
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorEnvelope{
				Error: response.APIError{Message: "awaiting manager approval", Code: "pending_approval"},
			})
			return
		}
		c.Next()
	}
}
