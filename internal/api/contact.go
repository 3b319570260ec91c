package api

import (
	"errors"
	"net/http"
	"time"

	"vsol_site/internal/model"
	"vsol_site/internal/service"
	"vsol_site/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactRoutes struct {
	cs service.ContactServiceI
}

func NewContactRoutes(handler *gin.RouterGroup, cs service.ContactServiceI, adminGuard gin.HandlerFunc) {
	r := &contactRoutes{cs: cs}

	handler.POST("/contact", r.Create)
	handler.GET("/contact", adminGuard, r.List)
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *contactRoutes) Create(c *gin.Context) {
	log := logger.Logger()

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	submission, err := r.cs.Create(c.Request.Context(), &service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		var fieldErr *service.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
			return
		}
		log.Error("failed to create contact submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for reaching out. We'll get back to you soon.",
		"data":    toContactResponse(submission),
	})
}

func (r *contactRoutes) List(c *gin.Context) {
	log := logger.Logger()

	submissions, err := r.cs.List(c.Request.Context())
	if err != nil {
		log.Error("failed to fetch contact submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact submissions"})
		return
	}

	out := make([]contactResponse, len(submissions))
	for i, submission := range submissions {
		out[i] = toContactResponse(submission)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func toContactResponse(submission *model.ContactSubmission) contactResponse {
	return contactResponse{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Subject:   submission.Subject,
		Message:   submission.Message,
		Status:    submission.Status,
		CreatedAt: submission.CreatedAt,
	}
}
