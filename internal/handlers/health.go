package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by dependencies the readiness probe should check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthRoutes registers the public probes.
//
// GET /health - liveness, the process is running
// GET /ready  - readiness, every dependency in deps answers a ping
func RegisterHealthRoutes(r gin.IRoutes, deps ...Pinger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		for _, d := range deps {
			if err := d.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
