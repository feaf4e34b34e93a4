// Package fieldlock coordinates the read-only locking of the tag entry form.
// One lockable session is identified by (supplier part, supplier, plant,
// station). Whether a part may be locked at all is governed by the lot-lock
// policy of its lot structure row: Disable forbids locking categorically,
// Enable and STANDARD allow it.
package fieldlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

// Key identifies one lockable form session.
type Key struct {
	SupplierPartNo string
	SupplierCode   string
	PlantCode      string
	StationNo      string
}

// state is the registry entry for a locked key. Entries are removed on
// unlock; there is no expiry, so a session that never unlocks leaves the key
// locked until the process restarts.
type state struct {
	lockedAt time.Time
	policy   models.LotLockType
}

// PolicyLookup resolves the lot-lock policy for a supplier part. It returns
// common.ErrorNotFound when the part has no lot structure row.
type PolicyLookup interface {
	LockPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error)
}

// Coordinator owns the process-wide lock registry. All methods are safe for
// concurrent use; a single mutex serializes registry access so two callers
// cannot double-register a key.
type Coordinator struct {
	policies PolicyLookup

	mu    sync.Mutex
	locks map[Key]state
}

func NewCoordinator(policies PolicyLookup) *Coordinator {
	return &Coordinator{
		policies: policies,
		locks:    make(map[Key]state),
	}
}

// CheckPolicy returns the lot-lock policy for a supplier part, or
// common.ErrLockTargetNotFound when the part has no lot structure row.
func (c *Coordinator) CheckPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error) {
	policy, err := c.policies.LockPolicy(ctx, supplierPartNo)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrLockTargetNotFound
		}
		return "", err
	}
	return policy, nil
}

// Lock registers the key as locked and returns the policy that allowed it.
// It fails with ErrLockTargetNotFound when the part is unknown and with
// ErrLockPolicyDisabled when the policy is Disable; the policy is still
// returned in the latter case so the caller can report it. Re-locking an
// already-locked key refreshes its timestamp.
func (c *Coordinator) Lock(ctx context.Context, key Key) (models.LotLockType, error) {
	policy, err := c.CheckPolicy(ctx, key.SupplierPartNo)
	if err != nil {
		return "", err
	}
	if policy == models.LotLockDisable {
		return policy, common.ErrLockPolicyDisabled
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks[key] = state{lockedAt: time.Now(), policy: policy}
	return policy, nil
}

// Unlock removes the key from the registry. Unlocking a key that is not
// locked is not an error.
func (c *Coordinator) Unlock(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
}

// IsLocked reports whether the key is currently locked.
func (c *Coordinator) IsLocked(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.locks[key]
	return ok
}
