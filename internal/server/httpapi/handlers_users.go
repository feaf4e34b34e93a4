package httpapi

import (
	"net/http"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type registerUserRequest struct {
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	Password          string `json:"password"`
	SupplierPlantCode string `json:"supplier_plant_code"`
	SupplierCode      string `json:"supplier_code"`
	GroupID           string `json:"group_id"`
	CustomerPlant     string `json:"customer_plant"`
	PackingStation    string `json:"packing_station"`
	EmailID           string `json:"email_id"`
	MacID             string `json:"mac_id"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := s.registration.Register(r.Context(), &models.NewUser{
		UserID:            req.UserID,
		UserName:          req.UserName,
		Password:          req.Password,
		SupplierPlantCode: req.SupplierPlantCode,
		SupplierCode:      req.SupplierCode,
		GroupID:           req.GroupID,
		CustomerPlant:     req.CustomerPlant,
		PackingStation:    req.PackingStation,
		EmailID:           req.EmailID,
		MacID:             req.MacID,
		CreatedBy:         claims.UserID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope{Success: true, Message: "user registered"})
}

type updateUserRequest struct {
	UserName          string `json:"user_name"`
	Password          string `json:"password"`
	SupplierPlantCode string `json:"supplier_plant_code"`
	SupplierCode      string `json:"supplier_code"`
	GroupID           string `json:"group_id"`
	EmailID           string `json:"email_id"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	claims := claimsFrom(r.Context())

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := s.registration.Update(r.Context(), userID, req.SupplierCode, &models.UserUpdate{
		UserName:          req.UserName,
		Password:          req.Password,
		SupplierPlantCode: req.SupplierPlantCode,
		GroupID:           req.GroupID,
		EmailID:           req.EmailID,
		UpdatedBy:         claims.UserID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "user updated"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	if err := s.registration.Delete(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "user deleted"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.registration.List(r.Context(), r.URL.Query().Get("created_by"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, users)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := s.registration.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "password changed"})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.registration.Groups(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, groups)
}

func (s *Server) handlePlants(w http.ResponseWriter, r *http.Request) {
	plants, err := s.registration.Plants(r.Context(), r.URL.Query().Get("created_by"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, plants)
}

func (s *Server) handlePackingStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plantCode := q.Get("plant_code")
	if plantCode == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	stations, err := s.registration.PackingStations(r.Context(), plantCode, q.Get("supplier_code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, stations)
}

func (s *Server) handleImageGetURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	url, err := s.images.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]string{"url": url})
}

func (s *Server) handleImagePutURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.images.GetPresignedPutUrl(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]string{"key": key, "url": url})
}
