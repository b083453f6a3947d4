package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the request/response header carrying the request ID.
const Header = "X-Request-ID"

// requestIDCtxKey is the Gin context key used to store the request ID.
const requestIDCtxKey = "request_id"

// Middleware tags every request with an ID.
// A well-formed inbound X-Request-ID is kept so callers can correlate logs;
// anything else is replaced by a fresh UUID.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// FromContext returns the request ID stored by Middleware, or "" when absent.
func FromContext(c *gin.Context) string {
	v, _ := c.Get(requestIDCtxKey)
	s, _ := v.(string)
	return s
}
