package httpapi

import (
	"net/http"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/fieldlock"
)

type lockKeyBody struct {
	SupplierPartNo string `json:"supplier_part_no"`
	SupplierCode   string `json:"supplier_code"`
	PlantCode      string `json:"plant_code"`
	StationNo      string `json:"station_no"`

	SupervisorID       string `json:"supervisor_id,omitempty"`
	SupervisorPassword string `json:"supervisor_password,omitempty"`
}

func (b *lockKeyBody) key() fieldlock.Key {
	return fieldlock.Key{
		SupplierPartNo: b.SupplierPartNo,
		SupplierCode:   b.SupplierCode,
		PlantCode:      b.PlantCode,
		StationNo:      b.StationNo,
	}
}

func lockKeyFromQuery(r *http.Request) fieldlock.Key {
	q := r.URL.Query()
	return fieldlock.Key{
		SupplierPartNo: q.Get("supplier_part_no"),
		SupplierCode:   q.Get("supplier_code"),
		PlantCode:      q.Get("plant_code"),
		StationNo:      q.Get("station_no"),
	}
}

func (s *Server) handleLockPolicy(w http.ResponseWriter, r *http.Request) {
	part := r.URL.Query().Get("supplier_part_no")
	if part == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	policy, err := s.locks.CheckPolicy(r.Context(), part)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]string{"lot_lock_type": string(policy)})
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	var body lockKeyBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.SupplierPartNo == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	policy, err := s.locks.Lock(r.Context(), body.key())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]string{"lot_lock_type": string(policy)})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var body lockKeyBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.SupplierPartNo == "" || body.SupervisorID == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	if err := s.locks.Unlock(r.Context(), body.SupervisorID, body.SupervisorPassword, body.key()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "unlocked"})
}

func (s *Server) handleLockStatus(w http.ResponseWriter, r *http.Request) {
	key := lockKeyFromQuery(r)
	if key.SupplierPartNo == "" {
		respondError(w, common.ErrorValidation)
		return
	}
	respondData(w, map[string]bool{"locked": s.locks.IsLocked(key)})
}
