// Package httpapi exposes the tag print service over HTTP/JSON. Every
// response uses the same envelope: {"success": bool, "message": string,
// "data": ...}. All routes except login, refresh and the health check
// require a bearer access token.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/abhi221112/weekend-denso/internal/logging"
	"github.com/abhi221112/weekend-denso/internal/server/auth"
	"github.com/abhi221112/weekend-denso/internal/server/config"
	"github.com/abhi221112/weekend-denso/internal/server/fieldlock"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/services"
	"github.com/abhi221112/weekend-denso/internal/server/tagresult"
)

// AuthAPI is the slice of AuthService the transport needs.
type AuthAPI interface {
	Login(ctx context.Context, userID, password string, role models.Role) (*models.Session, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ParseAccessToken(token string) (*auth.Claims, error)
}

// TagAPI is the slice of TagService the transport needs.
type TagAPI interface {
	Print(ctx context.Context, session *models.Session, req *models.TagRequest) (*tagresult.Outcome, error)
	Reprint(ctx context.Context, supervisorID, supervisorPassword string, req *models.TagRequest) (*tagresult.Outcome, error)
	Rework(ctx context.Context, session *models.Session, req *models.TagRequest) (*tagresult.Outcome, error)
	ValidateReworkTag(ctx context.Context, barcode string) (*models.ReworkTag, error)
	SupplierParts(ctx context.Context, supplierCode, plantCode string) ([]models.SupplierPartItem, error)
	PrintParameter(ctx context.Context, supervisorID, supervisorPassword, supplierPartNo, supplierCode, plantCode string) (*models.PrintParameter, error)
	Shift(ctx context.Context, supplierCode, plantCode string) (*models.Shift, error)
	ScanBarcode(ctx context.Context, barcode, stationNo string) (*models.ScannedTag, error)
	ChangeLotNo(ctx context.Context, supervisorID, supervisorPassword string, change *models.LotChange) error
	ReprintParameter(ctx context.Context, supplierPartNo, supplierCode string) (*models.LotStructure, error)
	ReworkPrintDetails(ctx context.Context, supplierPartNo, lotNo string) ([]models.ReworkPrintDetail, error)
	LastPrintDetails(ctx context.Context, supplierPartNo, supplierCode string) (*models.LastPrint, error)
}

// LockAPI is the slice of LockService the transport needs.
type LockAPI interface {
	CheckPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error)
	Lock(ctx context.Context, key fieldlock.Key) (models.LotLockType, error)
	Unlock(ctx context.Context, supervisorID, supervisorPassword string, key fieldlock.Key) error
	IsLocked(key fieldlock.Key) bool
}

// RegistrationAPI is the slice of RegistrationService the transport needs.
type RegistrationAPI interface {
	Register(ctx context.Context, u *models.NewUser) error
	Update(ctx context.Context, userID, supplierCode string, u *models.UserUpdate) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, createdBy string) ([]models.EndUser, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Groups(ctx context.Context) ([]models.UserGroup, error)
	Plants(ctx context.Context, createdBy string) ([]models.Plant, error)
	PackingStations(ctx context.Context, plantCode, supplierCode string) ([]models.PackingStation, error)
}

// ImageAPI is the slice of ImageService the transport needs.
type ImageAPI interface {
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
}

// Server is the HTTP transport for the tag print service.
type Server struct {
	cfg          *config.Config
	log          logging.Logger
	auth         AuthAPI
	tags         TagAPI
	locks        LockAPI
	registration RegistrationAPI
	images       ImageAPI

	server *http.Server
	once   sync.Once
}

func NewServer(cfg *config.Config, log logging.Logger, authAPI AuthAPI, tags TagAPI,
	locks LockAPI, registration RegistrationAPI, images ImageAPI) *Server {
	return &Server{
		cfg:          cfg,
		log:          log,
		auth:         authAPI,
		tags:         tags,
		locks:        locks,
		registration: registration,
		images:       images,
	}
}

// Handler builds the route table. Exposed separately from Run so tests can
// drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	mux.Handle("POST /api/v1/tags/print", s.requireAuth(s.handlePrint))
	mux.Handle("POST /api/v1/tags/reprint", s.requireAuth(s.handleReprint))
	mux.Handle("POST /api/v1/tags/rework", s.requireAuth(s.handleRework))
	mux.Handle("GET /api/v1/tags/rework/validate", s.requireAuth(s.handleValidateReworkTag))
	mux.Handle("GET /api/v1/tags/rework/details", s.requireAuth(s.handleReworkDetails))
	mux.Handle("GET /api/v1/tags/scan", s.requireAuth(s.handleScanBarcode))
	mux.Handle("POST /api/v1/tags/lot-change", s.requireAuth(s.handleChangeLotNo))
	mux.Handle("GET /api/v1/tags/last-print", s.requireAuth(s.handleLastPrint))
	mux.Handle("GET /api/v1/tags/reprint/parameter", s.requireAuth(s.handleReprintParameter))

	mux.Handle("GET /api/v1/model/parts", s.requireAuth(s.handleSupplierParts))
	mux.Handle("POST /api/v1/model/parameter", s.requireAuth(s.handlePrintParameter))
	mux.Handle("GET /api/v1/model/shift", s.requireAuth(s.handleShift))

	mux.Handle("GET /api/v1/lock/policy", s.requireAuth(s.handleLockPolicy))
	mux.Handle("POST /api/v1/lock", s.requireAuth(s.handleLock))
	mux.Handle("POST /api/v1/lock/unlock", s.requireAuth(s.handleUnlock))
	mux.Handle("GET /api/v1/lock/status", s.requireAuth(s.handleLockStatus))

	mux.Handle("POST /api/v1/users", s.requireAuth(s.handleRegisterUser))
	mux.Handle("PUT /api/v1/users/{id}", s.requireAuth(s.handleUpdateUser))
	mux.Handle("DELETE /api/v1/users/{id}", s.requireAuth(s.handleDeleteUser))
	mux.Handle("GET /api/v1/users", s.requireAuth(s.handleListUsers))
	mux.Handle("POST /api/v1/users/change-password", s.requireAuth(s.handleChangePassword))
	mux.Handle("GET /api/v1/users/groups", s.requireAuth(s.handleGroups))
	mux.Handle("GET /api/v1/users/plants", s.requireAuth(s.handlePlants))
	mux.Handle("GET /api/v1/users/stations", s.requireAuth(s.handlePackingStations))

	mux.Handle("GET /api/v1/images/url", s.requireAuth(s.handleImageGetURL))
	mux.Handle("POST /api/v1/images/upload-url", s.requireAuth(s.handleImagePutURL))

	return s.loggingMiddleware(mux)
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:    s.cfg.EndpointAddrHTTP,
			Handler: s.Handler(),
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	s.log.Info(ctx, "http api listening", "addr", s.cfg.EndpointAddrHTTP)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
}
