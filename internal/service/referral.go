package service

import (
	"context"
	"fmt"
	"time"

	"vsol_site/internal/model"
	"vsol_site/pkg/logger"

	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

type ReferralService struct {
	repo     ReferralRepository
	limiter  Limiter
	notifier Notifier
}

func NewReferralService(repo ReferralRepository, limiter Limiter, notifier Notifier) *ReferralService {
	return &ReferralService{
		repo:     repo,
		limiter:  limiter,
		notifier: notifier,
	}
}

type ReferralInput struct {
	ReferrerFirstName string
	ReferrerLastName  string
	LinkedinURL       string
	Email             string
	Phone             string
	About             string
	Website           string // honeypot, must stay empty

	IPAddress string
	UserAgent string
}

// Submit runs the intake pipeline: honeypot, rate limit, field
// validation, persistence. Notification is dispatched on a detached
// goroutine after the write succeeds so callers never wait on email.
func (s *ReferralService) Submit(ctx context.Context, input *ReferralInput) (*model.Referral, error) {
	log := logger.Logger()

	if input.Website != "" {
		log.Warn("honeypot triggered - potential bot submission",
			zap.String("ip", input.IPAddress))
		return nil, ErrBotDetected
	}

	if !s.limiter.Allow(input.IPAddress) {
		log.Warn("rate limit exceeded", zap.String("ip", input.IPAddress))
		return nil, ErrRateLimited
	}

	if fieldErr := validateReferral(input); fieldErr != nil {
		return nil, fieldErr
	}

	referral := &model.Referral{
		ReferrerFirstName: input.ReferrerFirstName,
		ReferrerLastName:  input.ReferrerLastName,
		LinkedinURL:       input.LinkedinURL,
		Email:             input.Email,
		IPAddress:         input.IPAddress,
		UserAgent:         input.UserAgent,
		SubmittedAt:       time.Now().UTC(),
	}
	if phone := normalizePhone(input.Phone); phone != "" {
		referral.Phone = &phone
	}
	if input.About != "" {
		about := input.About
		referral.About = &about
	}

	if err := s.repo.CreateReferral(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to persist referral: %w", err)
	}

	log.Info("new referral created",
		zap.Int64("referral_id", referral.ID),
		zap.String("referrer_name", referral.ReferrerFirstName+" "+referral.ReferrerLastName),
		zap.String("referral_email", referral.Email))

	go s.notify(referral)

	return referral, nil
}

// notify runs detached from the request lifecycle: its own timeout, its
// failures logged and swallowed, no retry.
func (s *ReferralService) notify(referral *model.Referral) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	log := logger.Logger()

	if !s.notifier.NotifyAdmin(ctx, referral) {
		log.Info("admin notification not sent", zap.Int64("referral_id", referral.ID))
	}
	if !s.notifier.NotifyReferrer(ctx, referral) {
		log.Info("referrer confirmation not sent", zap.Int64("referral_id", referral.ID))
	}
}

func (s *ReferralService) List(ctx context.Context) ([]*model.Referral, error) {
	referrals, err := s.repo.GetReferrals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	return referrals, nil
}
