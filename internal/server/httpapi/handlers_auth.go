package httpapi

import (
	"net/http"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Session      *models.Session `json:"session,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.UserID == "" || req.Password == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	role := models.Role(req.Role)
	switch role {
	case models.RoleOperator, models.RoleSupervisor, models.RoleAdmin:
	case "":
		role = models.RoleOperator
	default:
		respondError(w, common.ErrorValidation)
		return
	}

	session, pair, err := s.auth.Login(r.Context(), req.UserID, req.Password, role)
	if err != nil {
		s.log.Warn(r.Context(), "login refused", "user_id", req.UserID, "error", err)
		respondError(w, err)
		return
	}

	respondData(w, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Session:      session,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.RefreshToken == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	pair, err := s.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
