// Package services contains server-side business logic. This file implements
// AuthService, the single gate every credentialed operation goes through. It
// verifies credentials, checks screen rights for the requested role, and
// issues/refreshes JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/auth"
	"github.com/abhi221112/weekend-denso/internal/server/config"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService authenticates admins and end users and manages token issuance.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// roleScreens maps a requested role to the screens its group must hold View
// permission on. Admins are not gated on screen rights; their gate is the
// supplier mapping check.
func roleScreens(role models.Role) []models.ScreenID {
	switch role {
	case models.RoleSupervisor:
		return models.SupervisorScreens()
	default:
		return models.OperatorScreens()
	}
}

// Authenticate verifies credentials for the requested role and returns the
// caller session. Nothing is persisted; privileged operations call this again
// with explicit credentials on every request.
//
// Admin path: credential match plus a supplier-mapping existence check.
// End-user path: credential match plus a View-rights check on every screen
// the role requires. The group must hold ALL of them.
func (s *AuthService) Authenticate(ctx context.Context, userID, password string, role models.Role) (*models.Session, error) {
	hash := auth.HashPassword(password)

	if role == models.RoleAdmin {
		return s.authenticateAdmin(ctx, userID, hash)
	}
	return s.authenticateEndUser(ctx, userID, hash, role)
}

func (s *AuthService) authenticateAdmin(ctx context.Context, userID, hash string) (*models.Session, error) {
	repo := s.repomanager.Users(s.db)

	admin, err := repo.FindAdmin(ctx, userID, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	mapped, err := repo.HasSupplierMapping(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !mapped {
		return nil, common.ErrNoSupplierMapping
	}

	return &models.Session{
		UserID:    admin.UserID,
		UserName:  admin.UserName,
		Role:      models.RoleAdmin,
		GroupID:   admin.GroupID,
		GroupName: admin.GroupName,
		EmailID:   admin.EmailID,
	}, nil
}

func (s *AuthService) authenticateEndUser(ctx context.Context, userID, hash string, role models.Role) (*models.Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindEndUser(ctx, userID, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	ok, err := s.repomanager.Rights(s.db).GroupHasView(ctx, user.GroupName, roleScreens(role))
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrInsufficientRights
	}

	return &models.Session{
		UserID:            user.UserID,
		UserName:          user.UserName,
		Role:              role,
		GroupID:           user.GroupID,
		GroupName:         user.GroupName,
		SupplierCode:      user.SupplierCode,
		SupplierPlantCode: user.SupplierPlantCode,
		PackingStation:    user.PackingStation,
		PlantName:         user.PlantName,
		EmailID:           user.EmailID,
	}, nil
}

// Login authenticates and, on success, mints a TokenPair for the session.
func (s *AuthService) Login(ctx context.Context, userID, password string, role models.Role) (*models.Session, *TokenPair, error) {
	session, err := s.Authenticate(ctx, userID, password, role)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.generateTokenPair(ctx, session, s.db)
	if err != nil {
		return nil, nil, err
	}
	return session, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	session, err := s.sessionForUser(ctx, token.UserID)
	if err != nil {
		return nil, err
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, session, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// sessionForUser rebuilds token claims from the stored user record. The role
// is re-derived from group rights: supervisor screens win over operator
// screens. An end-user row that vanished means the token belongs to an admin.
func (s *AuthService) sessionForUser(ctx context.Context, userID string) (*models.Session, error) {
	user, err := s.repomanager.Users(s.db).FindEndUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.Session{UserID: userID, Role: models.RoleAdmin}, nil
		}
		return nil, common.ErrorInternal
	}

	role := models.RoleOperator
	if ok, err := s.repomanager.Rights(s.db).GroupHasView(ctx, user.GroupName, models.SupervisorScreens()); err == nil && ok {
		role = models.RoleSupervisor
	}

	return &models.Session{
		UserID:            user.UserID,
		UserName:          user.UserName,
		Role:              role,
		GroupID:           user.GroupID,
		GroupName:         user.GroupName,
		SupplierCode:      user.SupplierCode,
		SupplierPlantCode: user.SupplierPlantCode,
		PackingStation:    user.PackingStation,
	}, nil
}

func (s *AuthService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AuthService) generateTokenPair(ctx context.Context, session *models.Session, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(session.UserID, session.SupplierCode,
		session.GroupName, string(session.Role), s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, session.UserID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccessToken verifies a bearer token and returns its claims.
func (s *AuthService) ParseAccessToken(token string) (*auth.Claims, error) {
	return auth.ParseAccessToken(token, s.jwtSecret)
}
