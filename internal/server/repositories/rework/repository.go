// Package rework serves the rework print flow: validating the prior tag a
// rework starts from, executing the rework print function, and listing the
// recent rework prints and counters the screen shows.
package rework

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type Repository interface {
	// ValidateTag looks up the prior tag a rework starts from. Unknown or
	// already-dispatched barcodes return common.ErrorNotFound.
	ValidateTag(ctx context.Context, barcode string) (*models.ReworkTag, error)

	// Execute runs the rework print function and returns the raw positional
	// result pair untouched.
	Execute(ctx context.Context, req *models.TagRequest) (*models.RawResult, error)

	// PrintDetails returns the most recent rework prints for a part and lot,
	// newest first, capped at three.
	PrintDetails(ctx context.Context, supplierPartNo, lotNo string) ([]models.ReworkPrintDetail, error)

	// LastPrintDetails returns the running serial and tag counters of the
	// newest print for a supplier part.
	LastPrintDetails(ctx context.Context, supplierPartNo, supplierCode string) (*models.LastPrint, error)
}
