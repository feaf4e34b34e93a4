// Package lotstructure reads the per-part lot configuration: the lock policy
// that governs form locking and the digit layout used for lot re-entry.
package lotstructure

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type Repository interface {
	// LockPolicy returns the lock policy configured for a supplier part.
	// Parts with no configured value default to Enable. An unknown part
	// returns common.ErrorNotFound.
	LockPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error)

	// Structure returns the barcode digit layout for a supplier part, used
	// when a lot number is re-entered during rework.
	Structure(ctx context.Context, supplierPartNo, supplierCode string) (*models.LotStructure, error)
}
