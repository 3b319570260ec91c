package service

import (
	"context"
	"sync"
	"time"

	"vsol_site/internal/model"
	"vsol_site/internal/repository"
	"vsol_site/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConsentDuration is how long a decision stays valid before the device
// is asked again.
const ConsentDuration = 365 * 24 * time.Hour

// ConsentService stores per-device consent decisions and tells callers
// whether optional integrations (analytics and the like) may load.
// Storage failures degrade to "no consent" rather than erroring out.
type ConsentService struct {
	repo ConsentRepository

	mu          sync.Mutex
	subscribers []func(deviceID string, level model.ConsentLevel)
}

func NewConsentService(repo ConsentRepository) *ConsentService {
	return &ConsentService{repo: repo}
}

// GetLevel returns the device's current consent level. An expired record
// counts as none and is removed on the way out.
func (s *ConsentService) GetLevel(ctx context.Context, deviceID string) model.ConsentLevel {
	log := logger.Logger()

	record, err := s.repo.GetConsent(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn("failed to read consent record, treating as no consent",
				zap.String("device_id", deviceID), zap.Error(err))
		}
		return model.ConsentNone
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.repo.DeleteConsent(ctx, deviceID); err != nil {
			log.Warn("failed to remove expired consent record",
				zap.String("device_id", deviceID), zap.Error(err))
		}
		return model.ConsentNone
	}

	return record.Level
}

func (s *ConsentService) SetLevel(ctx context.Context, deviceID string, level model.ConsentLevel) error {
	if level != model.ConsentAll && level != model.ConsentRequired {
		return ErrInvalidConsentLevel
	}

	now := time.Now().UTC()
	record := &model.ConsentRecord{
		DeviceID:  deviceID,
		Level:     level,
		IssuedAt:  now,
		ExpiresAt: now.Add(ConsentDuration),
	}

	if err := s.repo.UpsertConsent(ctx, record); err != nil {
		return errors.Wrap(err, "failed to save consent record")
	}

	s.publish(deviceID, level)
	return nil
}

func (s *ConsentService) Clear(ctx context.Context, deviceID string) error {
	if err := s.repo.DeleteConsent(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to clear consent record")
	}

	s.publish(deviceID, model.ConsentNone)
	return nil
}

// MayLoadOptional is the consent gate: only a full opt-in unlocks
// optional third-party scripts.
func (s *ConsentService) MayLoadOptional(ctx context.Context, deviceID string) bool {
	return s.GetLevel(ctx, deviceID) == model.ConsentAll
}

// Subscribe registers a callback invoked after every decision change.
func (s *ConsentService) Subscribe(fn func(deviceID string, level model.ConsentLevel)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *ConsentService) publish(deviceID string, level model.ConsentLevel) {
	s.mu.Lock()
	subs := make([]func(string, model.ConsentLevel), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(deviceID, level)
	}
}
