package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/auth"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/repomanager"
)

// RegistrationService maintains supplier end-user accounts and serves the
// dropdown data the registration screen needs.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager) *RegistrationService {
	return &RegistrationService{db: db, repomanager: m}
}

// Register creates a new end user. The password is stored hashed.
func (s *RegistrationService) Register(ctx context.Context, u *models.NewUser) error {
	if u.UserID == "" || u.Password == "" {
		return common.ErrorValidation
	}
	u.Password = auth.HashPassword(u.Password)
	if err := s.repomanager.Users(s.db).Create(ctx, u); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

// Update modifies an existing end user. An empty password leaves the stored
// hash untouched.
func (s *RegistrationService) Update(ctx context.Context, userID, supplierCode string, u *models.UserUpdate) error {
	if u.Password != "" {
		u.Password = auth.HashPassword(u.Password)
	}
	if err := s.repomanager.Users(s.db).Update(ctx, userID, supplierCode, u); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes an end user and revokes every refresh token it holds, in one
// transaction.
func (s *RegistrationService) Delete(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).DeleteForUser(ctx, userID)
	})
}

// List returns the end users created by the given admin; empty createdBy
// lists everyone.
func (s *RegistrationService) List(ctx context.Context, createdBy string) ([]models.EndUser, error) {
	return s.repomanager.Users(s.db).List(ctx, createdBy)
}

// ChangePassword swaps a user's password after verifying the old one, then
// revokes all outstanding refresh tokens so stolen sessions die with it. The
// new password must differ from the old.
func (s *RegistrationService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" || newPassword == oldPassword {
		return common.ErrorValidation
	}
	oldHash := auth.HashPassword(oldPassword)
	newHash := auth.HashPassword(newPassword)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).ChangePassword(ctx, userID, oldHash, newHash); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidCredentials
			}
			return err
		}
		return s.repomanager.RefreshTokens(tx).DeleteForUser(ctx, userID)
	})
}

// Groups lists the user groups for the registration dropdown.
func (s *RegistrationService) Groups(ctx context.Context) ([]models.UserGroup, error) {
	return s.repomanager.Users(s.db).Groups(ctx)
}

// Plants lists the plants for the registration dropdown.
func (s *RegistrationService) Plants(ctx context.Context, createdBy string) ([]models.Plant, error) {
	return s.repomanager.Users(s.db).Plants(ctx, createdBy)
}

// PackingStations lists the stations of a plant.
func (s *RegistrationService) PackingStations(ctx context.Context, plantCode, supplierCode string) ([]models.PackingStation, error) {
	return s.repomanager.Users(s.db).PackingStations(ctx, plantCode, supplierCode)
}
