// Package models holds the server-side domain types: users and sessions,
// tag operation requests, and the rows returned by the kanban store.
package models

import "time"

// Role classifies the caller for the lifetime of one request.
type Role string

const (
	RoleOperator   Role = "operator"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ScreenID identifies a screen in the group-rights table.
type ScreenID string

// Screen ids carried over from the legacy rights table.
const (
	ScreenTagPrint    ScreenID = "3001"
	ScreenModelChange ScreenID = "3002"
	ScreenCommon      ScreenID = "2003"
)

// OperatorScreens are the view rights required for the tag-print screen.
func OperatorScreens() []ScreenID { return []ScreenID{ScreenTagPrint, ScreenCommon} }

// SupervisorScreens are the view rights required for model-change and other
// supervisor-gated operations.
func SupervisorScreens() []ScreenID { return []ScreenID{ScreenModelChange, ScreenCommon} }

// AdminUser is a plant-level administrative account from the user master.
type AdminUser struct {
	UserID    string
	UserName  string
	EmailID   string
	GroupID   string
	GroupName string
}

// EndUser is an ordinary supplier end-user account. PlantName comes from a
// best-effort join to the plant table and may be empty when plant data is
// not configured; that is not an error.
type EndUser struct {
	UserID            string
	UserName          string
	EmailID           string
	GroupID           string
	GroupName         string
	SupplierCode      string
	CustomerPlant     string
	SupplierPlantCode string
	PackingStation    string
	PlantName         string
	CreatedBy         string
	CreatedOn         string
}

// Session is the authenticated caller context for a single request. It is
// never persisted; privileged operations re-authenticate on every call.
type Session struct {
	UserID            string
	UserName          string
	Role              Role
	GroupID           string
	GroupName         string
	SupplierCode      string
	SupplierPlantCode string
	PackingStation    string
	PlantName         string
	EmailID           string
}

// RefreshToken is a server-stored opaque refresh token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}

// UserGroup is a row from the group table, used for registration dropdowns.
type UserGroup struct {
	GroupID   string
	GroupName string
}

// Plant is a plant-code/name pair for registration dropdowns.
type Plant struct {
	PlantCode string
	PlantName string
}

// PackingStation is a station entry for a plant.
type PackingStation struct {
	StationNo   string
	StationName string
}

// NewUser carries the fields needed to register an end user or supervisor.
type NewUser struct {
	UserID            string
	UserName          string
	Password          string
	SupplierPlantCode string
	SupplierCode      string
	GroupID           string
	CustomerPlant     string
	PackingStation    string
	EmailID           string
	MacID             string
	CreatedBy         string
}

// UserUpdate carries the mutable fields of an existing end user.
type UserUpdate struct {
	UserName          string
	Password          string
	SupplierPlantCode string
	GroupID           string
	EmailID           string
	UpdatedBy         string
}
