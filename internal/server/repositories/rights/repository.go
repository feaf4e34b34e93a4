// Package rights answers screen-permission questions for user groups.
package rights

import (
	"context"

	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type Repository interface {
	// GroupHasView reports whether the group holds View permission on every
	// screen in the list. The rights table keys on group NAME, not group id;
	// that is a legacy quirk of the schema and must be preserved.
	GroupHasView(ctx context.Context, groupName string, screens []models.ScreenID) (bool, error)
}
