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

type referralRoutes struct {
	rs service.ReferralServiceI
}

func NewReferralRoutes(handler *gin.RouterGroup, rs service.ReferralServiceI, adminGuard gin.HandlerFunc) {
	r := &referralRoutes{rs: rs}

	handler.POST("/referral/submit", r.Submit)
	handler.GET("/referrals", adminGuard, r.List)
}

type SubmitReferralRequest struct {
	ReferrerFirstName string `json:"referrerFirstName"`
	ReferrerLastName  string `json:"referrerLastName"`
	LinkedinURL       string `json:"linkedinUrl"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	About             string `json:"about"`
	Website           string `json:"website"`
}

func (r *referralRoutes) Submit(c *gin.Context) {
	log := logger.Logger()

	var req SubmitReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind referral request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	input := &service.ReferralInput{
		ReferrerFirstName: req.ReferrerFirstName,
		ReferrerLastName:  req.ReferrerLastName,
		LinkedinURL:       req.LinkedinURL,
		Email:             req.Email,
		Phone:             req.Phone,
		About:             req.About,
		Website:           req.Website,
		IPAddress:         c.ClientIP(),
		UserAgent:         c.Request.UserAgent(),
	}

	_, err := r.rs.Submit(c.Request.Context(), input)
	if err != nil {
		var fieldErr *service.FieldError
		switch {
		case errors.Is(err, service.ErrBotDetected):
			// Same shape as a validation failure so bots learn nothing.
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many referral submissions. Please try again later.",
			})
		case errors.As(err, &fieldErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fieldErr.Message})
		default:
			log.Error("failed to create referral", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "An error occurred while saving your referral. Please try again.",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you! Your referral has been submitted successfully.",
	})
}

type referralResponse struct {
	ID                int64     `json:"id"`
	ReferrerFirstName string    `json:"referrer_first_name"`
	ReferrerLastName  string    `json:"referrer_last_name"`
	LinkedinURL       string    `json:"referral_linkedin_url"`
	Email             string    `json:"referral_email"`
	Phone             *string   `json:"referral_phone"`
	About             *string   `json:"referral_about"`
	IPAddress         string    `json:"ip_address"`
	UserAgent         string    `json:"user_agent"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

func (r *referralRoutes) List(c *gin.Context) {
	log := logger.Logger()

	referrals, err := r.rs.List(c.Request.Context())
	if err != nil {
		log.Error("failed to fetch referrals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch referrals"})
		return
	}

	out := make([]referralResponse, len(referrals))
	for i, referral := range referrals {
		out[i] = toReferralResponse(referral)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func toReferralResponse(referral *model.Referral) referralResponse {
	return referralResponse{
		ID:                referral.ID,
		ReferrerFirstName: referral.ReferrerFirstName,
		ReferrerLastName:  referral.ReferrerLastName,
		LinkedinURL:       referral.LinkedinURL,
		Email:             referral.Email,
		Phone:             referral.Phone,
		About:             referral.About,
		IPAddress:         referral.IPAddress,
		UserAgent:         referral.UserAgent,
		SubmittedAt:       referral.SubmittedAt,
	}
}
