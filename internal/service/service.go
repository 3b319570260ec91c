package service

import (
	"context"
	"errors"

	"vsol_site/internal/model"
)

var (
	// ErrBotDetected marks a submission that tripped the honeypot. It is
	// logged as a security event but answered with the same generic
	// message as a validation failure.
	ErrBotDetected = errors.New("bot submission detected")

	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrInvalidConsentLevel = errors.New("invalid consent level")
)

type Service struct {
	*ReferralService
	*LeadService
	*ContactService
	*ConsentService
}

func NewService(referral *ReferralService, lead *LeadService, contact *ContactService, consent *ConsentService) *Service {
	return &Service{
		ReferralService: referral,
		LeadService:     lead,
		ContactService:  contact,
		ConsentService:  consent,
	}
}

type ReferralServiceI interface {
	Submit(ctx context.Context, input *ReferralInput) (*model.Referral, error)
	List(ctx context.Context) ([]*model.Referral, error)
}

type LeadServiceI interface {
	Create(ctx context.Context, input *LeadInput) (*model.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context) ([]*model.Lead, error)
}

type ContactServiceI interface {
	Create(ctx context.Context, input *ContactInput) (*model.ContactSubmission, error)
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

type ConsentServiceI interface {
	GetLevel(ctx context.Context, deviceID string) model.ConsentLevel
	SetLevel(ctx context.Context, deviceID string, level model.ConsentLevel) error
	Clear(ctx context.Context, deviceID string) error
	MayLoadOptional(ctx context.Context, deviceID string) bool
	Subscribe(fn func(deviceID string, level model.ConsentLevel))
}

type ReferralRepository interface {
	CreateReferral(ctx context.Context, referral *model.Referral) error
	GetReferrals(ctx context.Context) ([]*model.Referral, error)
}

type LeadRepository interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	UpdateLeadStatus(ctx context.Context, id int64, status string) error
	GetLeads(ctx context.Context) ([]*model.Lead, error)
}

type ContactRepository interface {
	CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error
	GetContactSubmissions(ctx context.Context) ([]*model.ContactSubmission, error)
}

type ConsentRepository interface {
	GetConsent(ctx context.Context, deviceID string) (*model.ConsentRecord, error)
	UpsertConsent(ctx context.Context, record *model.ConsentRecord) error
	DeleteConsent(ctx context.Context, deviceID string) error
}

// Limiter guards the referral submission endpoint.
type Limiter interface {
	Allow(key string) bool
}

// Notifier sends are best-effort: a false return means the message was
// skipped or failed, never that the submission should fail.
type Notifier interface {
	NotifyAdmin(ctx context.Context, referral *model.Referral) bool
	NotifyReferrer(ctx context.Context, referral *model.Referral) bool
}
