package httpapi

import (
	"net/http"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/tagresult"
)

// tagRequestBody mirrors models.TagRequest on the wire. Supervisor
// credentials ride alongside for the gated operations.
type tagRequestBody struct {
	CompanyCode    string  `json:"company_code"`
	PlantCode      string  `json:"plant_code"`
	StationNo      string  `json:"station_no"`
	SupplierCode   string  `json:"supplier_code"`
	CustomerCode   string  `json:"customer_code"`
	SupplierPartNo string  `json:"supplier_part_no"`
	PartNo         string  `json:"part_no"`
	LotNo1         string  `json:"lot_no1"`
	LotNo2         string  `json:"lot_no2"`
	TagType        string  `json:"tag_type"`
	Weight         float64 `json:"weight"`
	Qty            int     `json:"qty"`
	IsMixedLot     bool    `json:"is_mixed_lot"`
	RunningSNNo    string  `json:"running_sn_no"`
	RMMaterial     string  `json:"rm_material"`
	OldBarcode     string  `json:"old_barcode"`
	GrossWeight    string  `json:"gross_weight"`

	SupervisorID       string `json:"supervisor_id,omitempty"`
	SupervisorPassword string `json:"supervisor_password,omitempty"`
}

func (b *tagRequestBody) toModel() *models.TagRequest {
	return &models.TagRequest{
		CompanyCode:    b.CompanyCode,
		PlantCode:      b.PlantCode,
		StationNo:      b.StationNo,
		SupplierCode:   b.SupplierCode,
		CustomerCode:   b.CustomerCode,
		SupplierPartNo: b.SupplierPartNo,
		PartNo:         b.PartNo,
		LotNo1:         b.LotNo1,
		LotNo2:         b.LotNo2,
		TagType:        b.TagType,
		Weight:         b.Weight,
		Qty:            b.Qty,
		IsMixedLot:     b.IsMixedLot,
		RunningSNNo:    b.RunningSNNo,
		RMMaterial:     b.RMMaterial,
		OldBarcode:     b.OldBarcode,
		GrossWeight:    b.GrossWeight,
	}
}

// respondOutcome renders a decoded tag result. Business rejections keep HTTP
// 200; the envelope's success flag carries the verdict.
func respondOutcome(w http.ResponseWriter, outcome *tagresult.Outcome) {
	var data any
	if outcome.Print != nil {
		data = outcome.Print
	} else if outcome.Rework != nil {
		data = outcome.Rework
	}
	respondJSON(w, http.StatusOK, envelope{
		Success: outcome.OK,
		Message: outcome.Message,
		Data:    data,
	})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var body tagRequestBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.SupplierPartNo == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	outcome, err := s.tags.Print(r.Context(), sessionFrom(r.Context()), body.toModel())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOutcome(w, outcome)
}

func (s *Server) handleReprint(w http.ResponseWriter, r *http.Request) {
	var body tagRequestBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.OldBarcode == "" || body.SupervisorID == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	outcome, err := s.tags.Reprint(r.Context(), body.SupervisorID, body.SupervisorPassword, body.toModel())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOutcome(w, outcome)
}

func (s *Server) handleRework(w http.ResponseWriter, r *http.Request) {
	var body tagRequestBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.OldBarcode == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	outcome, err := s.tags.Rework(r.Context(), sessionFrom(r.Context()), body.toModel())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOutcome(w, outcome)
}

func (s *Server) handleValidateReworkTag(w http.ResponseWriter, r *http.Request) {
	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	tag, err := s.tags.ValidateReworkTag(r.Context(), barcode)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, tag)
}

func (s *Server) handleReworkDetails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	part, lot := q.Get("supplier_part_no"), q.Get("lot_no")
	if part == "" || lot == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	details, err := s.tags.ReworkPrintDetails(r.Context(), part, lot)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, details)
}

func (s *Server) handleScanBarcode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	barcode := q.Get("barcode")
	if barcode == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	tag, err := s.tags.ScanBarcode(r.Context(), barcode, q.Get("station_no"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, tag)
}

type lotChangeRequest struct {
	Barcode            string `json:"barcode"`
	OldLotNo           string `json:"old_lot_no"`
	NewLotNo           string `json:"new_lot_no"`
	SupervisorID       string `json:"supervisor_id"`
	SupervisorPassword string `json:"supervisor_password"`
}

func (s *Server) handleChangeLotNo(w http.ResponseWriter, r *http.Request) {
	var req lotChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Barcode == "" || req.NewLotNo == "" || req.SupervisorID == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	err := s.tags.ChangeLotNo(r.Context(), req.SupervisorID, req.SupervisorPassword, &models.LotChange{
		Barcode:  req.Barcode,
		OldLotNo: req.OldLotNo,
		NewLotNo: req.NewLotNo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "lot number changed"})
}

func (s *Server) handleReprintParameter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	part := q.Get("supplier_part_no")
	if part == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	st, err := s.tags.ReprintParameter(r.Context(), part, q.Get("supplier_code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, st)
}

func (s *Server) handleLastPrint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	part := q.Get("supplier_part_no")
	if part == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	lp, err := s.tags.LastPrintDetails(r.Context(), part, q.Get("supplier_code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, lp)
}

func (s *Server) handleSupplierParts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	supplierCode := q.Get("supplier_code")
	if supplierCode == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	parts, err := s.tags.SupplierParts(r.Context(), supplierCode, q.Get("plant_code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, parts)
}

type printParameterRequest struct {
	SupplierPartNo     string `json:"supplier_part_no"`
	SupplierCode       string `json:"supplier_code"`
	PlantCode          string `json:"plant_code"`
	SupervisorID       string `json:"supervisor_id"`
	SupervisorPassword string `json:"supervisor_password"`
}

func (s *Server) handlePrintParameter(w http.ResponseWriter, r *http.Request) {
	var req printParameterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.SupplierPartNo == "" || req.SupervisorID == "" {
		respondError(w, common.ErrorValidation)
		return
	}

	p, err := s.tags.PrintParameter(r.Context(), req.SupervisorID, req.SupervisorPassword,
		req.SupplierPartNo, req.SupplierCode, req.PlantCode)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, p)
}

func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shift, err := s.tags.Shift(r.Context(), q.Get("supplier_code"), q.Get("plant_code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, shift)
}
