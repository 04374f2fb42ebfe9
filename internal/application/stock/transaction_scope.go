package stock

import (
	"context"

	"github.com/stouper/wms-sub002/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repository.
// An on-hand read and the append it justifies must see the same database
// state, so every write path runs both inside one Execute call.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that share
// the current transaction
type TransactionalRepositories interface {
	// Ledger returns the entry repository scoped to the current transaction
	Ledger() ledger.EntryRepository
}

// NoOpTransactionScope runs the function without a real transaction, for
// tests that already operate on a single connection.
type NoOpTransactionScope struct {
	ledgerRepo ledger.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repository
func NewNoOpTransactionScope(ledgerRepo ledger.EntryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{ledgerRepo: ledgerRepo}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the entry repository
func (s *NoOpTransactionScope) Ledger() ledger.EntryRepository {
	return s.ledgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
