package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// sortableColumns is the allowlist for ORDER BY. Sorting on anything else
// silently falls back to created_at.
var sortableColumns = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"code":       {},
	"status":     {},
	"store_code": {},
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if _, ok := sortableColumns[orderBy]; !ok {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	db = db.Order(fmt.Sprintf("%s %s", orderBy, dir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}
	return db
}
