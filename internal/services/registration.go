package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistry/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

func NewRegistrationService(registrationRepo domain.RegistrationRepository, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

// RegisterUser registers the user for the event. The capacity and duplicate
// rules are enforced by the repository inside one serialized transaction; this
// layer validates input, reads the clock, and classifies outcomes.
func (s *registrationService) RegisterUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" || userID == "" {
		return nil, fmt.Errorf("%w: event id and user id are required", domain.ErrInvalidInput)
	}

	reg, err := s.registrationRepo.Register(ctx, eventID, userID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrEventPassed) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrAlreadyRegistered) ||
			errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return reg, nil
}

func (s *registrationService) CancelRegistration(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" || userID == "" {
		return fmt.Errorf("%w: event id and user id are required", domain.ErrInvalidInput)
	}

	if err := s.registrationRepo.Cancel(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}
