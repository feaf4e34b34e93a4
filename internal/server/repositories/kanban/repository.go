// Package kanban talks to the kanban print store: it executes print and
// re-print operations through the database print function and serves the
// model-change and scan lookups around them.
package kanban

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/models"
)

// Operation type strings passed to the print function. The function
// dispatches on them, so the exact values matter.
const (
	OpPrint   = "KANBAN_PRINT"
	OpReprint = "KANBAN_RE_PRINT"
)

type Repository interface {
	// Execute runs the print function and returns the raw positional result
	// pair untouched. No row back from the function is common.ErrorNotFound;
	// the caller decides how to report it.
	Execute(ctx context.Context, opType string, req *models.TagRequest) (*models.RawResult, error)

	// SupplierParts lists the parts available to a supplier for the
	// model-change dropdown.
	SupplierParts(ctx context.Context, supplierCode, plantCode string) ([]models.SupplierPartItem, error)

	// PrintParameter returns the auto-fill parameters for a confirmed model
	// selection. Unknown part returns common.ErrorNotFound.
	PrintParameter(ctx context.Context, supplierPartNo, supplierCode, plantCode string) (*models.PrintParameter, error)

	// Shift resolves the shift window covering the current time.
	Shift(ctx context.Context, supplierCode, plantCode string) (*models.Shift, error)

	// ScanBarcode returns the auto-fill row for a previously printed tag.
	ScanBarcode(ctx context.Context, barcode, stationNo string) (*models.ScannedTag, error)

	// ChangeLotNo records a lot-number change against a printed tag.
	ChangeLotNo(ctx context.Context, change *models.LotChange, changedBy string) error
}
