package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/kanban"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/repomanager"
	"github.com/abhi221112/weekend-denso/internal/server/tagresult"
)

// Authenticator is the credential gate TagService consults before privileged
// operations. Satisfied by AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, userID, password string, role models.Role) (*models.Session, error)
}

// TagService orchestrates the tag lifecycle: print, supervisor-gated
// re-print, and rework, plus the lookups around them. The store does the
// actual printing; this layer sequences gates and decodes results.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        Authenticator
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager, gate Authenticator) *TagService {
	return &TagService{db: db, repomanager: m, gate: gate}
}

// Print executes a first print. A store call that yields no result row at all
// is ErrNoResult; a decoded failure is not an error, the Outcome carries it.
func (s *TagService) Print(ctx context.Context, session *models.Session, req *models.TagRequest) (*tagresult.Outcome, error) {
	req.PrintedBy = session.UserID

	raw, err := s.repomanager.Kanban(s.db).Execute(ctx, kanban.OpPrint, req)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoResult
		}
		return nil, fmt.Errorf("print: %w", err)
	}

	outcome := tagresult.Decode(raw.Result, raw.Msg, tagresult.Print)
	return &outcome, nil
}

// Reprint re-prints an existing tag. A supervisor must authenticate with
// explicit credentials first; when that fails the store is never called.
func (s *TagService) Reprint(ctx context.Context, supervisorID, supervisorPassword string, req *models.TagRequest) (*tagresult.Outcome, error) {
	supervisor, err := s.gate.Authenticate(ctx, supervisorID, supervisorPassword, models.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	req.PrintedBy = supervisor.UserID

	raw, err := s.repomanager.Kanban(s.db).Execute(ctx, kanban.OpReprint, req)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoResult
		}
		return nil, fmt.Errorf("reprint: %w", err)
	}

	outcome := tagresult.Decode(raw.Result, raw.Msg, tagresult.Reprint)
	return &outcome, nil
}

// ValidateReworkTag resolves the prior tag a rework starts from. Unknown or
// dispatched barcodes are ErrTagNotFound.
func (s *TagService) ValidateReworkTag(ctx context.Context, barcode string) (*models.ReworkTag, error) {
	tag, err := s.repomanager.Rework(s.db).ValidateTag(ctx, barcode)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTagNotFound
		}
		return nil, fmt.Errorf("validate rework tag: %w", err)
	}
	return tag, nil
}

// Rework prints a rework tag. The prior tag named by OldBarcode is validated
// first; when that fails the store print is never called.
func (s *TagService) Rework(ctx context.Context, session *models.Session, req *models.TagRequest) (*tagresult.Outcome, error) {
	if _, err := s.ValidateReworkTag(ctx, req.OldBarcode); err != nil {
		return nil, err
	}
	req.PrintedBy = session.UserID

	raw, err := s.repomanager.Rework(s.db).Execute(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoResult
		}
		return nil, fmt.Errorf("rework print: %w", err)
	}

	outcome := tagresult.Decode(raw.Result, raw.Msg, tagresult.Rework)
	return &outcome, nil
}

// SupplierParts lists the model-change dropdown entries for a supplier.
func (s *TagService) SupplierParts(ctx context.Context, supplierCode, plantCode string) ([]models.SupplierPartItem, error) {
	return s.repomanager.Kanban(s.db).SupplierParts(ctx, supplierCode, plantCode)
}

// PrintParameter confirms a model selection. A supervisor must authenticate
// with explicit credentials; on failure no lookup happens.
func (s *TagService) PrintParameter(ctx context.Context, supervisorID, supervisorPassword, supplierPartNo, supplierCode, plantCode string) (*models.PrintParameter, error) {
	if _, err := s.gate.Authenticate(ctx, supervisorID, supervisorPassword, models.RoleSupervisor); err != nil {
		return nil, err
	}
	return s.repomanager.Kanban(s.db).PrintParameter(ctx, supplierPartNo, supplierCode, plantCode)
}

// ReprintParameter returns the lot structure digit layout used to rebuild a
// tag's lot fields on the re-print form.
func (s *TagService) ReprintParameter(ctx context.Context, supplierPartNo, supplierCode string) (*models.LotStructure, error) {
	st, err := s.repomanager.LotStructure(s.db).Structure(ctx, supplierPartNo, supplierCode)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("reprint parameter: %w", err)
	}
	return st, nil
}

// Shift resolves the shift window covering the current time.
func (s *TagService) Shift(ctx context.Context, supplierCode, plantCode string) (*models.Shift, error) {
	return s.repomanager.Kanban(s.db).Shift(ctx, supplierCode, plantCode)
}

// ScanBarcode returns the auto-fill row for a previously printed tag.
func (s *TagService) ScanBarcode(ctx context.Context, barcode, stationNo string) (*models.ScannedTag, error) {
	tag, err := s.repomanager.Kanban(s.db).ScanBarcode(ctx, barcode, stationNo)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTagNotFound
		}
		return nil, fmt.Errorf("scan barcode: %w", err)
	}
	return tag, nil
}

// ChangeLotNo records a lot-number change on a printed tag after a supervisor
// authenticates with explicit credentials.
func (s *TagService) ChangeLotNo(ctx context.Context, supervisorID, supervisorPassword string, change *models.LotChange) error {
	supervisor, err := s.gate.Authenticate(ctx, supervisorID, supervisorPassword, models.RoleSupervisor)
	if err != nil {
		return err
	}
	if err := s.repomanager.Kanban(s.db).ChangeLotNo(ctx, change, supervisor.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrTagNotFound
		}
		return fmt.Errorf("change lot no: %w", err)
	}
	return nil
}

// ReworkPrintDetails lists the most recent rework prints for a part and lot.
func (s *TagService) ReworkPrintDetails(ctx context.Context, supplierPartNo, lotNo string) ([]models.ReworkPrintDetail, error) {
	return s.repomanager.Rework(s.db).PrintDetails(ctx, supplierPartNo, lotNo)
}

// LastPrintDetails returns the running serial and counters of the newest
// print for a supplier part.
func (s *TagService) LastPrintDetails(ctx context.Context, supplierPartNo, supplierCode string) (*models.LastPrint, error) {
	lp, err := s.repomanager.Rework(s.db).LastPrintDetails(ctx, supplierPartNo, supplierCode)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.LastPrint{}, nil
		}
		return nil, fmt.Errorf("last print details: %w", err)
	}
	return lp, nil
}
