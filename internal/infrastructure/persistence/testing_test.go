package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shipping"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// partial unique index behind reservation claims is created the same way the
// postgres migration does it; sqlite supports the WHERE clause.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Sku{},
		&warehouse.Location{},
		&job.Job{},
		&job.Item{},
		&job.Parcel{},
		&ledger.Entry{},
		&shipping.Reservation{},
	))

	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_shipping_reservations_active_job "+
			"ON shipping_reservations (job_id) WHERE status <> 'cancelled'",
	).Error)

	return db
}
