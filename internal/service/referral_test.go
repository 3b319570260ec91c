package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vsol_site/internal/model"
	"vsol_site/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() *ReferralInput {
	return &ReferralInput{
		ReferrerFirstName: "Jane",
		ReferrerLastName:  "Doe",
		LinkedinURL:       "https://linkedin.com/in/janedoe",
		Email:             "jane@example.com",
		IPAddress:         "1.2.3.4",
		UserAgent:         "test-agent",
	}
}

func TestReferralService_Submit_Honeypot(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	input := validInput()
	input.Website = "https://spam.example.com"

	_, err := s.Submit(context.Background(), input)

	assert.ErrorIs(t, err, ErrBotDetected)
	repo.AssertNotCalled(t, "CreateReferral", mock.Anything, mock.Anything)
	limiter.AssertNotCalled(t, "Allow", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyAdmin", mock.Anything, mock.Anything)
}

func TestReferralService_Submit_RateLimited(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	limiter.On("Allow", "1.2.3.4").Return(false)

	_, err := s.Submit(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrRateLimited)
	repo.AssertNotCalled(t, "CreateReferral", mock.Anything, mock.Anything)
}

func TestReferralService_Submit_ValidationFailure(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	limiter.On("Allow", mock.Anything).Return(true)

	input := validInput()
	input.LinkedinURL = "https://example.com/in/joe"

	_, err := s.Submit(context.Background(), input)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "linkedinUrl", fieldErr.Field)
	repo.AssertNotCalled(t, "CreateReferral", mock.Anything, mock.Anything)
}

func TestReferralService_Submit_Success(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	limiter.On("Allow", "1.2.3.4").Return(true)
	repo.On("CreateReferral", mock.Anything, mock.MatchedBy(func(r *model.Referral) bool {
		return r.Email == "jane@example.com" && r.IPAddress == "1.2.3.4" && r.UserAgent == "test-agent"
	})).Return(nil)

	adminNotified := make(chan struct{})
	notifier.On("NotifyAdmin", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(adminNotified)
	}).Return(true)
	notifier.On("NotifyReferrer", mock.Anything, mock.Anything).Return(true)

	input := validInput()
	input.Phone = "+1 (352) 397-8650"

	referral, err := s.Submit(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, referral)
	require.NotNil(t, referral.Phone)
	assert.Equal(t, "+13523978650", *referral.Phone)

	select {
	case <-adminNotified:
	case <-time.After(time.Second):
		t.Fatal("notification was never attempted")
	}

	repo.AssertExpectations(t)
}

func TestReferralService_Submit_PersistenceFailure(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	limiter.On("Allow", mock.Anything).Return(true)
	repo.On("CreateReferral", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := s.Submit(context.Background(), validInput())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBotDetected)
	assert.NotErrorIs(t, err, ErrRateLimited)
	notifier.AssertNotCalled(t, "NotifyAdmin", mock.Anything, mock.Anything)
}

func TestReferralService_Submit_NotificationFailureDoesNotSurface(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	limiter := &mocks.MockLimiter{}
	notifier := &mocks.MockNotifier{}
	s := NewReferralService(repo, limiter, notifier)

	limiter.On("Allow", mock.Anything).Return(true)
	repo.On("CreateReferral", mock.Anything, mock.Anything).Return(nil)

	done := make(chan struct{})
	notifier.On("NotifyAdmin", mock.Anything, mock.Anything).Return(false)
	notifier.On("NotifyReferrer", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(done)
	}).Return(false)

	_, err := s.Submit(context.Background(), validInput())

	require.NoError(t, err, "notification failure must not affect the submission outcome")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notification was never attempted")
	}
}
