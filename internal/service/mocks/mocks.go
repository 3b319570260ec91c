package mocks

import (
	"context"

	"vsol_site/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) CreateReferral(ctx context.Context, referral *model.Referral) error {
	args := m.Called(ctx, referral)
	return args.Error(0)
}

func (m *MockReferralRepository) GetReferrals(ctx context.Context) ([]*model.Referral, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Referral), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) CreateLead(ctx context.Context, lead *model.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateLeadStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) GetLeads(ctx context.Context) ([]*model.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Lead), args.Error(1)
}

type MockConsentRepository struct {
	mock.Mock
}

func (m *MockConsentRepository) GetConsent(ctx context.Context, deviceID string) (*model.ConsentRecord, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConsentRecord), args.Error(1)
}

func (m *MockConsentRepository) UpsertConsent(ctx context.Context, record *model.ConsentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConsentRepository) DeleteConsent(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAdmin(ctx context.Context, referral *model.Referral) bool {
	args := m.Called(ctx, referral)
	return args.Bool(0)
}

func (m *MockNotifier) NotifyReferrer(ctx context.Context, referral *model.Referral) bool {
	args := m.Called(ctx, referral)
	return args.Bool(0)
}
