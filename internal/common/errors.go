// Package common defines shared constants and sentinel errors used across
// the tag-print service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Authentication gate errors.
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrInsufficientRights = errors.New("insufficient screen rights")
	ErrNoSupplierMapping  = errors.New("no user mapped with supplier")

	// Token errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Field-lock errors.
	ErrLockPolicyDisabled = errors.New("locking disabled for supplier part")
	ErrLockTargetNotFound = errors.New("supplier part not found in lot structure")

	// Tag lifecycle errors.
	ErrTagNotFound = errors.New("tag does not exist or has been dispatched")
	ErrNoResult    = errors.New("no result from store")
)
