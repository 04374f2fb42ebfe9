package picking

import (
	"context"

	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories a scan
// touches. The stock guard read, the ledger append and the job progress
// update must commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that share
// the current transaction
type TransactionalRepositories interface {
	Jobs() job.Repository
	Ledger() ledger.EntryRepository
	Locations() warehouse.LocationRepository
}

// NoOpTransactionScope runs the function without a real transaction, for
// tests that already operate on a single connection.
type NoOpTransactionScope struct {
	jobRepo      job.Repository
	ledgerRepo   ledger.EntryRepository
	locationRepo warehouse.LocationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories
func NewNoOpTransactionScope(jobRepo job.Repository, ledgerRepo ledger.EntryRepository, locationRepo warehouse.LocationRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		jobRepo:      jobRepo,
		ledgerRepo:   ledgerRepo,
		locationRepo: locationRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Jobs returns the job repository
func (s *NoOpTransactionScope) Jobs() job.Repository {
	return s.jobRepo
}

// Ledger returns the entry repository
func (s *NoOpTransactionScope) Ledger() ledger.EntryRepository {
	return s.ledgerRepo
}

// Locations returns the location repository
func (s *NoOpTransactionScope) Locations() warehouse.LocationRepository {
	return s.locationRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
