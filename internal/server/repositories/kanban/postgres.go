package kanban

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

// Execute calls prc_print_kanban. Serial allocation, tag persistence and the
// duplicate/limit checks all live inside the function; this layer only
// transports the request and hands the raw pair back.
func (r *PostgresRepository) Execute(ctx context.Context, opType string, req *models.TagRequest) (*models.RawResult, error) {
	query := `
		SELECT result, msg FROM prc_print_kanban(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18)
	`
	mixed := "N"
	if req.IsMixedLot {
		mixed = "Y"
	}
	res := &models.RawResult{}
	err := r.db.QueryRowContext(ctx, query,
		opType,
		req.CompanyCode, req.PlantCode, req.StationNo,
		req.SupplierCode, req.CustomerCode,
		req.SupplierPartNo, req.PartNo,
		req.LotNo1, req.LotNo2,
		req.TagType, req.Weight, req.Qty, mixed,
		req.RunningSNNo, req.RMMaterial,
		req.PrintedBy, req.OldBarcode,
	).Scan(&res.Result, &res.Msg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) SupplierParts(ctx context.Context, supplierCode, plantCode string) ([]models.SupplierPartItem, error) {
	query := `
		SELECT DISTINCT supplier_part_no, COALESCE(supplier_name, '')
		FROM supplier_part_master
		WHERE supplier_code = $1
		  AND ($2 = '' OR plant_code = $2)
		ORDER BY supplier_part_no
	`
	rows, err := r.db.QueryContext(ctx, query, supplierCode, plantCode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.SupplierPartItem
	for rows.Next() {
		var item models.SupplierPartItem
		if err := rows.Scan(&item.SupplierPart, &item.SupplierName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) PrintParameter(ctx context.Context, supplierPartNo, supplierCode, plantCode string) (*models.PrintParameter, error) {
	query := `
		SELECT pm.supplier_part_no, COALESCE(pm.supplier_part_name, ''),
		       COALESCE(pm.part_no, ''), COALESCE(pm.part_name, ''),
		       COALESCE(pm.lot_size, 0), COALESCE(pm.supplier_part_lot_size, ''),
		       COALESCE(pm.supplier_part_weight, 0), COALESCE(pm.bin_qty, 0),
		       COALESCE(pm.print_cycle_time, 0),
		       COALESCE(ls.total_no_of_digits, 0), COALESCE(ls.no_of_steps, 0),
		       COALESCE(ls.step1_digits, 0), COALESCE(ls.step2_digits, 0),
		       COALESCE(ls.step3_digits, 0), COALESCE(ls.step4_digits, 0),
		       COALESCE(ls.step5_digits, 0), COALESCE(ls.step6_digits, 0),
		       COALESCE(pm.supplier_code, ''),
		       COALESCE(ls.tolerance_weight, 0), COALESCE(ls.weighing_scale, ''),
		       COALESCE(pm.image_name, ''),
		       COALESCE(ls.bin_weight, 0), COALESCE(ls.bin_tolerance_weight, 0),
		       COALESCE(ls.delimiter_type, ''),
		       COALESCE(ls.character_length_from, 0), COALESCE(ls.character_length_to, 0),
		       COALESCE(ls.lot_lock_type, 'Enable')
		FROM supplier_part_master pm
		LEFT JOIN supplier_lot_structure ls ON ls.supplier_part_no = pm.supplier_part_no
		WHERE pm.supplier_part_no = $1
		  AND pm.supplier_code = $2
		  AND ($3 = '' OR pm.plant_code = $3)
		LIMIT 1
	`
	p := &models.PrintParameter{}
	err := r.db.QueryRowContext(ctx, query, supplierPartNo, supplierCode, plantCode).
		Scan(&p.SupplierPart, &p.SupplierPartName,
			&p.PartNo, &p.PartName,
			&p.LotSize, &p.SupplierPartLotSize,
			&p.SupplierPartWeight, &p.BinQty,
			&p.PrintCycleTime,
			&p.TotalNoOfDigits, &p.NoOfSteps,
			&p.StepDigits[0], &p.StepDigits[1], &p.StepDigits[2],
			&p.StepDigits[3], &p.StepDigits[4], &p.StepDigits[5],
			&p.SupplierCode,
			&p.ToleranceWeight, &p.WeighingScale,
			&p.ImageName,
			&p.BinWeight, &p.BinToleranceWeight,
			&p.DelimiterType,
			&p.CharacterLengthFrom, &p.CharacterLengthTo,
			&p.LotLockType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Shift(ctx context.Context, supplierCode, plantCode string) (*models.Shift, error) {
	query := `
		SELECT shift, to_char(shift_from, 'HH24:MI'), to_char(shift_to, 'HH24:MI')
		FROM shift_master
		WHERE ($1 = '' OR supplier_code = $1)
		  AND ($2 = '' OR plant_code = $2)
		  AND localtime BETWEEN shift_from AND shift_to
		LIMIT 1
	`
	s := &models.Shift{}
	err := r.db.QueryRowContext(ctx, query, supplierCode, plantCode).
		Scan(&s.Shift, &s.ShiftFrom, &s.ShiftTo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ScanBarcode(ctx context.Context, barcode, stationNo string) (*models.ScannedTag, error) {
	query := `
		SELECT COALESCE(tp.part_no, ''), COALESCE(pm.part_name, ''),
		       tp.supplier_part_no, COALESCE(pm.supplier_name, ''),
		       COALESCE(tp.supplier_code, ''),
		       COALESCE(pm.lot_size, 0), COALESCE(tp.weight, 0),
		       COALESCE(tp.is_mixed_lot, 'N') = 'Y',
		       COALESCE(tp.lot_no1, ''), COALESCE(tp.lot_no2, ''),
		       COALESCE(tp.qty, 0),
		       COALESCE(tp.running_sn_no, ''),
		       COALESCE(tp.count_no_of_tags, 0), COALESCE(tp.total_qty, 0),
		       tp.barcode,
		       COALESCE(tp.tag_type, ''), COALESCE(tp.shift, ''),
		       COALESCE(to_char(tp.print_date, 'DD/MM/YYYY'), ''),
		       COALESCE(to_char(tp.printed_on, 'HH24:MI:SS'), ''),
		       COALESCE(tp.station_no, ''), COALESCE(tp.plant_code, ''),
		       COALESCE(ls.tolerance_weight, 0),
		       COALESCE(tp.gross_weight, ''), COALESCE(tp.rm_material, '')
		FROM tag_print tp
		LEFT JOIN supplier_part_master pm ON pm.supplier_part_no = tp.supplier_part_no
		LEFT JOIN supplier_lot_structure ls ON ls.supplier_part_no = tp.supplier_part_no
		WHERE tp.barcode = $1
		  AND ($2 = '' OR tp.station_no = $2)
		ORDER BY tp.printed_on DESC
		LIMIT 1
	`
	s := &models.ScannedTag{}
	err := r.db.QueryRowContext(ctx, query, barcode, stationNo).
		Scan(&s.PartNo, &s.PartName,
			&s.SupplierPartNo, &s.SupplierName,
			&s.SupplierCode,
			&s.BatchSize, &s.Weight,
			&s.IsMixedLot,
			&s.LotNo1, &s.LotNo2,
			&s.Qty,
			&s.LastTagSerialNo,
			&s.NoOfTagsPrinted, &s.TotalQtyStockIn,
			&s.Barcode,
			&s.TagType, &s.Shift,
			&s.PrintDate, &s.PrintTime,
			&s.StationNo, &s.PlantCode,
			&s.ToleranceWeight,
			&s.GrossWeight, &s.RMMaterial)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.OldBarcode = s.Barcode
	return s, nil
}

func (r *PostgresRepository) ChangeLotNo(ctx context.Context, change *models.LotChange, changedBy string) error {
	query := `
		UPDATE tag_print
		SET lot_no1 = $1, modified_by = $2, modified_on = now()
		WHERE barcode = $3 AND lot_no1 = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		change.NewLotNo, changedBy, change.Barcode, change.OldLotNo)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
