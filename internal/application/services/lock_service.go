package services

import (
	"errors"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/security"
)

// ErrPinNotSet is returned when verifying against an unset PIN.
var ErrPinNotSet = errors.New("app lock PIN not set")

// ErrPinTooShort rejects PINs under four digits.
var ErrPinTooShort = errors.New("app lock PIN must be at least 4 characters")

// LockService manages the optional app-lock PIN. Only the bcrypt hash is
// persisted; the PIN is device-local and cleared with the rest of the store
// on logout.
type LockService struct {
	store  *store.Store
	logger *logging.ChanneledLogger
}

// NewLockService creates the app-lock service.
func NewLockService(st *store.Store, logger *logging.ChanneledLogger) *LockService {
	return &LockService{store: st, logger: logger}
}

// Enabled reports whether a PIN is set.
func (s *LockService) Enabled() bool {
	return s.store.Has(store.KeyAppPin)
}

// Set hashes and persists a new PIN, replacing any existing one.
func (s *LockService) Set(pin string) error {
	if len(pin) < 4 {
		return ErrPinTooShort
	}

	hashed, err := security.HashPIN(pin)
	if err != nil {
		return err
	}
	if err := s.store.Set(store.KeyAppPin, hashed); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Auth().Info("App lock PIN set")
	}
	return nil
}

// Verify checks an unlock attempt. ErrPinNotSet when no PIN exists; a wrong
// PIN is a plain false, not an error.
func (s *LockService) Verify(pin string) (bool, error) {
	var hashed string
	if !s.store.Get(store.KeyAppPin, &hashed) {
		return false, ErrPinNotSet
	}
	return security.VerifyPIN(hashed, pin), nil
}

// Clear removes the PIN. Clearing an unset PIN is a no-op.
func (s *LockService) Clear() error {
	if err := s.store.Remove(store.KeyAppPin); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Auth().Info("App lock PIN cleared")
	}
	return nil
}
