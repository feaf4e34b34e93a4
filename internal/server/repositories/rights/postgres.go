package rights

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GroupHasView counts distinct matching screens with view_flag set and
// requires the count to equal the number of requested screens, so a group
// missing any one screen fails the check.
func (r *PostgresRepository) GroupHasView(ctx context.Context, groupName string, screens []models.ScreenID) (bool, error) {
	if len(screens) == 0 {
		return true, nil
	}
	ids := make([]string, len(screens))
	for i, s := range screens {
		ids[i] = string(s)
	}
	query := `
		SELECT COUNT(DISTINCT screen_id)
		FROM supplier_group_rights
		WHERE group_name = $1
		  AND COALESCE(view_flag, '') = 'Y'
		  AND screen_id = ANY(string_to_array($2, ','))
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, groupName, strings.Join(ids, ",")).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count == len(screens), nil
}
