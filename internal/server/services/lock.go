package services

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/fieldlock"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

// LockService fronts the field-lock coordinator. Locking is open to any
// authenticated caller; unlocking requires a supervisor to authenticate with
// explicit credentials.
type LockService struct {
	coordinator *fieldlock.Coordinator
	gate        Authenticator
}

func NewLockService(coordinator *fieldlock.Coordinator, gate Authenticator) *LockService {
	return &LockService{coordinator: coordinator, gate: gate}
}

// CheckPolicy returns the lot-lock policy for a supplier part.
func (s *LockService) CheckPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error) {
	return s.coordinator.CheckPolicy(ctx, supplierPartNo)
}

// Lock registers the form session as locked.
func (s *LockService) Lock(ctx context.Context, key fieldlock.Key) (models.LotLockType, error) {
	return s.coordinator.Lock(ctx, key)
}

// Unlock releases a locked form session after the supervisor authenticates.
// The coordinator treats unlocking an unknown key as a no-op, so a stale
// request after a restart still succeeds.
func (s *LockService) Unlock(ctx context.Context, supervisorID, supervisorPassword string, key fieldlock.Key) error {
	if _, err := s.gate.Authenticate(ctx, supervisorID, supervisorPassword, models.RoleSupervisor); err != nil {
		return err
	}
	s.coordinator.Unlock(key)
	return nil
}

// IsLocked reports whether the form session is currently locked.
func (s *LockService) IsLocked(key fieldlock.Key) bool {
	return s.coordinator.IsLocked(key)
}
