package lotstructure

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

func (r *PostgresRepository) LockPolicy(ctx context.Context, supplierPartNo string) (models.LotLockType, error) {
	query := `
		SELECT COALESCE(lot_lock_type, 'Enable')
		FROM supplier_lot_structure
		WHERE supplier_part_no = $1
		LIMIT 1
	`
	var policy string
	err := r.db.QueryRowContext(ctx, query, supplierPartNo).Scan(&policy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.LotLockType(policy), nil
}

func (r *PostgresRepository) Structure(ctx context.Context, supplierPartNo, supplierCode string) (*models.LotStructure, error) {
	query := `
		SELECT COALESCE(total_no_of_digits, 0), COALESCE(no_of_steps, 0),
		       COALESCE(step1_digits, 0), COALESCE(step2_digits, 0),
		       COALESCE(step3_digits, 0), COALESCE(step4_digits, 0),
		       COALESCE(step5_digits, 0), COALESCE(step6_digits, 0),
		       COALESCE(supplier_code, ''),
		       COALESCE(tolerance_weight, 0), COALESCE(weighing_scale, ''),
		       COALESCE(bin_weight, 0), COALESCE(bin_tolerance_weight, 0)
		FROM supplier_lot_structure
		WHERE supplier_part_no = $1
		  AND ($2 = '' OR supplier_code = $2)
		LIMIT 1
	`
	s := &models.LotStructure{}
	err := r.db.QueryRowContext(ctx, query, supplierPartNo, supplierCode).
		Scan(&s.TotalNoOfDigits, &s.NoOfSteps,
			&s.StepDigits[0], &s.StepDigits[1], &s.StepDigits[2],
			&s.StepDigits[3], &s.StepDigits[4], &s.StepDigits[5],
			&s.SupplierCode,
			&s.ToleranceWeight, &s.WeighingScale,
			&s.BinWeight, &s.BinToleranceWeight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
