package api

import (
	"errors"
	"net/http"

	"vsol_site/internal/model"
	"vsol_site/internal/service"
	"vsol_site/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	deviceCookie       = "vsol_device"
	deviceCookieMaxAge = 365 * 24 * 60 * 60
)

type consentRoutes struct {
	cs service.ConsentServiceI
}

func NewConsentRoutes(handler *gin.RouterGroup, cs service.ConsentServiceI) {
	r := &consentRoutes{cs: cs}

	handler.GET("/consent", r.Get)
	handler.POST("/consent", r.Set)
	handler.DELETE("/consent", r.Clear)
}

// deviceID returns the caller's device identifier, minting a cookie on
// first contact.
func (r *consentRoutes) deviceID(c *gin.Context) string {
	id, err := c.Cookie(deviceCookie)
	if err == nil && id != "" {
		return id
	}

	id = uuid.NewString()
	c.SetCookie(deviceCookie, id, deviceCookieMaxAge, "/", "", false, true)
	return id
}

func (r *consentRoutes) Get(c *gin.Context) {
	deviceID := r.deviceID(c)
	level := r.cs.GetLevel(c.Request.Context(), deviceID)

	c.JSON(http.StatusOK, gin.H{
		"level":     level,
		"analytics": r.cs.MayLoadOptional(c.Request.Context(), deviceID),
	})
}

type SetConsentRequest struct {
	Level string `json:"level"`
}

func (r *consentRoutes) Set(c *gin.Context) {
	log := logger.Logger()

	var req SetConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind consent request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	deviceID := r.deviceID(c)
	err := r.cs.SetLevel(c.Request.Context(), deviceID, model.ConsentLevel(req.Level))
	if err != nil {
		if errors.Is(err, service.ErrInvalidConsentLevel) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   `Invalid consent level. Must be "all" or "required"`,
			})
			return
		}
		log.Error("failed to save consent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save consent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "level": req.Level})
}

func (r *consentRoutes) Clear(c *gin.Context) {
	log := logger.Logger()

	deviceID := r.deviceID(c)
	if err := r.cs.Clear(c.Request.Context(), deviceID); err != nil {
		log.Error("failed to clear consent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear consent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "level": model.ConsentNone})
}
