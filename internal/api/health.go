package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthRoutes struct {
	db          Pinger
	environment string
	startedAt   time.Time
}

func NewHealthRoutes(handler *gin.RouterGroup, db Pinger, environment string) {
	r := &healthRoutes{
		db:          db,
		environment: environment,
		startedAt:   time.Now(),
	}

	handler.GET("/health", r.Health)
	handler.GET("/health/ready", r.Ready)
}

func (r *healthRoutes) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": r.environment,
		"uptime":      time.Since(r.startedAt).Seconds(),
	})
}

func (r *healthRoutes) Ready(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := r.db.Ping(c.Request.Context()); err != nil {
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": "ready",
		"checks": gin.H{
			"database": dbStatus,
		},
	})
}
