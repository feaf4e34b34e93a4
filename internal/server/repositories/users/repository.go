// Package users provides lookups and maintenance of administrative and
// supplier end-user accounts.
package users

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type Repository interface {
	// FindAdmin matches a plant-level administrative account by user id and
	// stored password hash. Returns common.ErrorNotFound when no active
	// admin record matches.
	FindAdmin(ctx context.Context, userID, passwordHash string) (*models.AdminUser, error)

	// HasSupplierMapping reports whether an admin account has a supplier
	// code mapping row. Admin logins without one are rejected.
	HasSupplierMapping(ctx context.Context, userID string) (bool, error)

	// FindEndUser matches an ordinary supplier end user. Plant enrichment is
	// best-effort: a missing plant row leaves PlantName empty instead of
	// failing the lookup.
	FindEndUser(ctx context.Context, userID, passwordHash string) (*models.EndUser, error)

	// FindEndUserByID looks up an end user without a credential check, used
	// when rebuilding token claims during refresh.
	FindEndUserByID(ctx context.Context, userID string) (*models.EndUser, error)

	Create(ctx context.Context, u *models.NewUser) error
	Update(ctx context.Context, userID, supplierCode string, u *models.UserUpdate) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, createdBy string) ([]models.EndUser, error)

	// ChangePassword swaps the stored hash only when the old hash matches.
	// Returns common.ErrorNotFound when no row matched.
	ChangePassword(ctx context.Context, userID, oldHash, newHash string) error

	Groups(ctx context.Context) ([]models.UserGroup, error)
	Plants(ctx context.Context, createdBy string) ([]models.Plant, error)
	PackingStations(ctx context.Context, plantCode, supplierCode string) ([]models.PackingStation, error)
}
