package persistence

import (
	"context"

	"gorm.io/gorm"

	apppicking "github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// GormPickingTransactionScope implements the picking TransactionScope using
// GORM transactions. One scan's guard reads, ledger append and job update all
// share the transaction it opens.
type GormPickingTransactionScope struct {
	db *gorm.DB
}

// NewGormPickingTransactionScope creates a new GormPickingTransactionScope
func NewGormPickingTransactionScope(db *gorm.DB) *GormPickingTransactionScope {
	return &GormPickingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormPickingTransactionScope) Execute(ctx context.Context, fn func(repos apppicking.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPickingTransactionalRepositories{tx: tx})
	})
}

type gormPickingTransactionalRepositories struct {
	tx *gorm.DB
}

// Jobs returns the job repository scoped to the current transaction
func (r *gormPickingTransactionalRepositories) Jobs() job.Repository {
	return NewGormJobRepository(r.tx)
}

// Ledger returns the entry repository scoped to the current transaction
func (r *gormPickingTransactionalRepositories) Ledger() ledger.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

// Locations returns the location repository scoped to the current transaction
func (r *gormPickingTransactionalRepositories) Locations() warehouse.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

var _ apppicking.TransactionScope = (*GormPickingTransactionScope)(nil)
var _ apppicking.TransactionalRepositories = (*gormPickingTransactionalRepositories)(nil)
