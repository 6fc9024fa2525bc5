package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// rateLimited gates the aggregation routes behind the report limiter.
// The caller key is the employee path param when present, else the
// client address.
func (s *Server) rateLimited(c *gin.Context) {
	caller := strings.TrimSpace(c.Param("id"))
	if caller == "" {
		caller = c.ClientIP()
	}

	allowed, retryAfter := s.limiter.Allow(c.Request.Context(), c.FullPath(), caller)
	if allowed {
		c.Next()
		return
	}

	if retryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: errorPayload{
		Type:    "rate_limited",
		Message: "too many requests",
	}})
}
