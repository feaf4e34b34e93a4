package rework

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ValidateTag requires the tag to exist and to not have been dispatched yet.
// Both failures look the same to the caller, which is intentional: the screen
// reports "invalid barcode" either way.
func (r *PostgresRepository) ValidateTag(ctx context.Context, barcode string) (*models.ReworkTag, error) {
	query := `
		SELECT COALESCE(tp.supplier_code, ''), COALESCE(pm.supplier_name, ''),
		       tp.supplier_part_no, COALESCE(pm.supplier_part_name, ''),
		       COALESCE(tp.part_no, ''), COALESCE(pm.part_name, ''),
		       COALESCE(tp.lot_no1, ''), COALESCE(tp.lot_no2, ''),
		       COALESCE(tp.tag_type, ''), COALESCE(tp.weight, 0),
		       COALESCE(tp.running_sn_no, ''), tp.barcode,
		       COALESCE(tp.qty, 0), COALESCE(tp.qty, 0),
		       COALESCE(tp.shift, ''), COALESCE(tp.company_code, ''),
		       COALESCE(to_char(tp.print_date, 'DD/MM/YYYY'), ''),
		       COALESCE(ls.tolerance_weight, 0), COALESCE(ls.weighing_scale, ''),
		       COALESCE(pm.image_name, ''), COALESCE(ls.bin_weight, 0)
		FROM tag_print tp
		LEFT JOIN supplier_part_master pm ON pm.supplier_part_no = tp.supplier_part_no
		LEFT JOIN supplier_lot_structure ls ON ls.supplier_part_no = tp.supplier_part_no
		WHERE tp.barcode = $1
		  AND COALESCE(tp.is_dispatched, 'N') <> 'Y'
		ORDER BY tp.printed_on DESC
		LIMIT 1
	`
	tag := &models.ReworkTag{}
	err := r.db.QueryRowContext(ctx, query, barcode).
		Scan(&tag.SupplierCode, &tag.SupplierName,
			&tag.SupplierPartNo, &tag.SupplierPartName,
			&tag.PartNo, &tag.PartDescription,
			&tag.LotNo1, &tag.LotNo2,
			&tag.TagType, &tag.Weight,
			&tag.RunningSNNo, &tag.Barcode,
			&tag.PackSize, &tag.Qty,
			&tag.Shift, &tag.CompanyName,
			&tag.PrintDate,
			&tag.ToleranceWeight, &tag.WeighingScale,
			&tag.ImageName, &tag.BinWeight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) Execute(ctx context.Context, req *models.TagRequest) (*models.RawResult, error) {
	query := `
		SELECT result, msg FROM prc_print_rework_kanban(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15)
	`
	res := &models.RawResult{}
	err := r.db.QueryRowContext(ctx, query,
		req.CompanyCode, req.PlantCode, req.StationNo,
		req.SupplierCode, req.SupplierPartNo, req.PartNo,
		req.LotNo1, req.LotNo2,
		req.TagType, req.Weight, req.Qty,
		req.RunningSNNo,
		req.PrintedBy, req.OldBarcode, req.GrossWeight,
	).Scan(&res.Result, &res.Msg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) PrintDetails(ctx context.Context, supplierPartNo, lotNo string) ([]models.ReworkPrintDetail, error) {
	query := `
		SELECT COALESCE(tp.plant_code, ''), COALESCE(tp.station_no, ''),
		       COALESCE(tp.shift, ''), COALESCE(tp.lot_no1, ''),
		       COALESCE(tp.lot_no2, ''), COALESCE(tp.running_sn_no, ''),
		       COALESCE(tp.printed_by, ''),
		       COALESCE(to_char(tp.printed_on, 'DD/MM/YYYY HH24:MI:SS'), ''),
		       COALESCE(to_char(tp.print_date, 'DD/MM/YYYY'), ''),
		       COALESCE(tp.tag_type, ''), COALESCE(pm.supplier_name, ''),
		       tp.barcode, COALESCE(tp.company_code, ''),
		       tp.supplier_part_no, COALESCE(tp.part_no, ''),
		       COALESCE(tp.weight, 0), COALESCE(tp.qty, 0),
		       COALESCE(ls.weighing_scale, ''), COALESCE(tp.gross_weight, '0')::numeric
		FROM tag_print tp
		LEFT JOIN supplier_part_master pm ON pm.supplier_part_no = tp.supplier_part_no
		LEFT JOIN supplier_lot_structure ls ON ls.supplier_part_no = tp.supplier_part_no
		WHERE tp.supplier_part_no = $1
		  AND tp.lot_no1 = $2
		  AND tp.tag_type = 'REWORK'
		ORDER BY tp.printed_on DESC
		LIMIT 3
	`
	rows, err := r.db.QueryContext(ctx, query, supplierPartNo, lotNo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.ReworkPrintDetail
	for rows.Next() {
		var d models.ReworkPrintDetail
		if err := rows.Scan(&d.PlantCode, &d.StationNo,
			&d.Shift, &d.LotNo1,
			&d.LotNo2, &d.RunningSNNo,
			&d.PrintedBy, &d.PrintedOn, &d.PrintDate,
			&d.TagType, &d.SupplierName,
			&d.Barcode, &d.CompanyName,
			&d.SupplierPartNo, &d.PartNo,
			&d.Weight, &d.PackSize,
			&d.WeighingScale, &d.GrossWeight); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) LastPrintDetails(ctx context.Context, supplierPartNo, supplierCode string) (*models.LastPrint, error) {
	query := `
		SELECT COALESCE(running_sn_no, ''),
		       COALESCE(count_no_of_tags, 0), COALESCE(total_no_of_tags, 0)
		FROM tag_print
		WHERE supplier_part_no = $1
		  AND ($2 = '' OR supplier_code = $2)
		ORDER BY printed_on DESC
		LIMIT 1
	`
	lp := &models.LastPrint{}
	err := r.db.QueryRowContext(ctx, query, supplierPartNo, supplierCode).
		Scan(&lp.RunningSNNo, &lp.CountNoOfTags, &lp.TotalNoOfTags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return lp, nil
}
