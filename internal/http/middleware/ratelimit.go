package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/ratelimit"
)

// RateLimit keys the limiter on "<endpoint>:<client-ip>" so one abusive
// address cannot starve an endpoint for everyone else.
func RateLimit(limiter *ratelimit.Limiter, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Hit(endpoint + ":" + c.ClientIP()); err != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorEnvelope{
				Error: response.APIError{Message: "too many requests", Code: "rate_limited"},
			})
			return
		}
		c.Next()
	}
}
