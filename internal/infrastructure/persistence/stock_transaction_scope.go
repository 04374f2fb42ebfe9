package persistence

import (
	"context"

	"gorm.io/gorm"

	appstock "github.com/stouper/wms-sub002/internal/application/stock"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
)

// GormStockTransactionScope implements the stock TransactionScope using GORM
// transactions
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockTransactionalRepositories{tx: tx})
	})
}

type gormStockTransactionalRepositories struct {
	tx *gorm.DB
}

// Ledger returns the entry repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) Ledger() ledger.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appstock.TransactionalRepositories = (*gormStockTransactionalRepositories)(nil)
