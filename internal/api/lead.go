package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"vsol_site/internal/model"
	"vsol_site/internal/repository"
	"vsol_site/internal/service"
	"vsol_site/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type leadRoutes struct {
	ls service.LeadServiceI
}

func NewLeadRoutes(handler *gin.RouterGroup, ls service.LeadServiceI, adminGuard gin.HandlerFunc) {
	r := &leadRoutes{ls: ls}

	handler.POST("/leads", r.Create)
	handler.GET("/leads", adminGuard, r.List)
	handler.PATCH("/leads/:id/status", adminGuard, r.UpdateStatus)
}

type CreateLeadRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Description string `json:"description"`
	FormType    string `json:"form_type"`
}

type leadResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     *string   `json:"company"`
	Description *string   `json:"description"`
	FormType    string    `json:"form_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *leadRoutes) Create(c *gin.Context) {
	log := logger.Logger()

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind lead request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lead, err := r.ls.Create(c.Request.Context(), &service.LeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Description: req.Description,
		FormType:    req.FormType,
	})
	if err != nil {
		var fieldErr *service.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
			return
		}
		log.Error("failed to create lead", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	log.Info("new lead created",
		zap.Int64("lead_id", lead.ID),
		zap.String("email", lead.Email),
		zap.String("form_type", lead.FormType))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Lead created successfully",
		"data":    toLeadResponse(lead),
	})
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

func (r *leadRoutes) UpdateStatus(c *gin.Context) {
	log := logger.Logger()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse lead id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind lead status request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err = r.ls.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		var fieldErr *service.FieldError
		switch {
		case errors.As(err, &fieldErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no lead associated with the provided id"})
		default:
			log.Error("failed to update lead status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}

func (r *leadRoutes) List(c *gin.Context) {
	log := logger.Logger()

	leads, err := r.ls.List(c.Request.Context())
	if err != nil {
		log.Error("failed to fetch leads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	out := make([]leadResponse, len(leads))
	for i, lead := range leads {
		out[i] = toLeadResponse(lead)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func toLeadResponse(lead *model.Lead) leadResponse {
	return leadResponse{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Company:     lead.Company,
		Description: lead.Description,
		FormType:    lead.FormType,
		Status:      lead.Status,
		CreatedAt:   lead.CreatedAt,
	}
}
