package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAdmin(ctx context.Context, userID, passwordHash string) (*models.AdminUser, error) {
	query := `
		SELECT um.user_id, um.user_name, COALESCE(um.email_id, ''), um.group_id, gm.group_name
		FROM supplier_user_master um
		JOIN supplier_group gm ON gm.group_id = um.group_id
		WHERE um.user_id = $1
		  AND um.password = $2
		  AND COALESCE(um.is_supplier, '') = 'Y'
	`
	u := &models.AdminUser{}
	err := r.db.QueryRowContext(ctx, query, userID, passwordHash).
		Scan(&u.UserID, &u.UserName, &u.EmailID, &u.GroupID, &u.GroupName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) HasSupplierMapping(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM supplier_user_mapping WHERE user_id = $1
		)
	`
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// FindEndUser joins the end-user row to its group and, via LEFT JOIN, to the
// plant table. The legacy supplier_code column can hold a comma-separated
// list, hence the delimiter-wrapped LIKE match. Missing plant rows degrade to
// an empty plant name; only a failed credential match returns ErrorNotFound.
func (r *PostgresRepository) FindEndUser(ctx context.Context, userID, passwordHash string) (*models.EndUser, error) {
	query := `
		SELECT um.user_id, um.user_name, COALESCE(um.email_id, ''),
		       um.group_id, gm.group_name,
		       COALESCE(um.supplier_code, ''), COALESCE(um.customer_plant, ''),
		       COALESCE(um.supplier_plant_code, ''), COALESCE(um.packing_station, ''),
		       COALESCE(p.plant_name, ''),
		       COALESCE(um.created_by, ''),
		       COALESCE(to_char(um.created_on, 'DD/MM/YYYY'), '')
		FROM supplier_end_user um
		JOIN supplier_group gm ON gm.group_id = um.group_id
		LEFT JOIN (
			SELECT DISTINCT plant_code, plant_name, supplier_code
			FROM supplier_plant
		) p ON p.plant_code = um.supplier_plant_code
		   AND ',' || btrim(um.supplier_code) || ',' LIKE '%,' || btrim(p.supplier_code) || ',%'
		WHERE um.user_id = $1
		  AND um.password = $2
		LIMIT 1
	`
	u := &models.EndUser{}
	err := r.db.QueryRowContext(ctx, query, userID, passwordHash).
		Scan(&u.UserID, &u.UserName, &u.EmailID,
			&u.GroupID, &u.GroupName,
			&u.SupplierCode, &u.CustomerPlant,
			&u.SupplierPlantCode, &u.PackingStation,
			&u.PlantName,
			&u.CreatedBy, &u.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) FindEndUserByID(ctx context.Context, userID string) (*models.EndUser, error) {
	query := `
		SELECT um.user_id, um.user_name, COALESCE(um.email_id, ''),
		       um.group_id, gm.group_name,
		       COALESCE(um.supplier_code, ''), COALESCE(um.customer_plant, ''),
		       COALESCE(um.supplier_plant_code, ''), COALESCE(um.packing_station, '')
		FROM supplier_end_user um
		JOIN supplier_group gm ON gm.group_id = um.group_id
		WHERE um.user_id = $1
	`
	u := &models.EndUser{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&u.UserID, &u.UserName, &u.EmailID,
			&u.GroupID, &u.GroupName,
			&u.SupplierCode, &u.CustomerPlant,
			&u.SupplierPlantCode, &u.PackingStation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u *models.NewUser) error {
	query := `
		INSERT INTO supplier_end_user
			(user_id, user_name, password, supplier_plant_code, supplier_code,
			 group_id, customer_plant, packing_station, email_id, mac_id,
			 created_by, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
	`
	_, err := r.db.ExecContext(ctx, query,
		u.UserID, u.UserName, u.Password, u.SupplierPlantCode, u.SupplierCode,
		u.GroupID, u.CustomerPlant, u.PackingStation, u.EmailID, u.MacID,
		u.CreatedBy)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, supplierCode string, u *models.UserUpdate) error {
	query := `
		UPDATE supplier_end_user
		SET user_name = $1,
		    password = CASE WHEN $2 <> '' THEN $2 ELSE password END,
		    supplier_plant_code = $3,
		    group_id = $4,
		    email_id = $5,
		    modified_by = $6,
		    modified_on = now()
		WHERE user_id = $7 AND supplier_code = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		u.UserName, u.Password, u.SupplierPlantCode, u.GroupID, u.EmailID,
		u.UpdatedBy, userID, supplierCode)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM supplier_end_user WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, createdBy string) ([]models.EndUser, error) {
	query := `
		SELECT um.user_id, um.user_name, COALESCE(um.supplier_plant_code, ''),
		       um.group_id, COALESCE(gm.group_name, ''),
		       COALESCE(um.created_by, ''),
		       COALESCE(to_char(um.created_on, 'DD/MM/YYYY'), '')
		FROM supplier_end_user um
		LEFT JOIN supplier_group gm ON gm.group_id = um.group_id
		WHERE $1 = '' OR um.created_by = $1
		ORDER BY um.user_id
	`
	rows, err := r.db.QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.EndUser
	for rows.Next() {
		var u models.EndUser
		if err := rows.Scan(&u.UserID, &u.UserName, &u.SupplierPlantCode,
			&u.GroupID, &u.GroupName, &u.CreatedBy, &u.CreatedOn); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ChangePassword(ctx context.Context, userID, oldHash, newHash string) error {
	query := `
		UPDATE supplier_end_user
		SET password = $1, modified_on = now()
		WHERE user_id = $2 AND password = $3
	`
	res, err := r.db.ExecContext(ctx, query, newHash, userID, oldHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Groups(ctx context.Context) ([]models.UserGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_id, group_name FROM supplier_group ORDER BY group_name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.UserGroup
	for rows.Next() {
		var g models.UserGroup
		if err := rows.Scan(&g.GroupID, &g.GroupName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Plants(ctx context.Context, createdBy string) ([]models.Plant, error) {
	query := `
		SELECT DISTINCT plant_code, plant_name
		FROM supplier_plant
		WHERE $1 = '' OR created_by = $1
		ORDER BY plant_code
	`
	rows, err := r.db.QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Plant
	for rows.Next() {
		var p models.Plant
		if err := rows.Scan(&p.PlantCode, &p.PlantName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) PackingStations(ctx context.Context, plantCode, supplierCode string) ([]models.PackingStation, error) {
	query := `
		SELECT station_no, COALESCE(station_name, station_no)
		FROM packing_station
		WHERE plant_code = $1
		  AND ($2 = '' OR supplier_code = $2)
		ORDER BY station_no
	`
	rows, err := r.db.QueryContext(ctx, query, plantCode, supplierCode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.PackingStation
	for rows.Next() {
		var s models.PackingStation
		if err := rows.Scan(&s.StationNo, &s.StationName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
