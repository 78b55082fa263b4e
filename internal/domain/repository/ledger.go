package repository

import (
	"context"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// LedgerRepository is the append-only commission ledger. Inserts are the only
// writes; UpdateStatus is the single sanctioned exception for entry lifecycle.
type LedgerRepository interface {
	Insert(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error)
	// InsertForOrder appends commission entries for a paid order, skipping
	// references that already exist. Used by the reconciliation pass, so
	// re-posting after a partial failure is safe.
	InsertForOrder(ctx context.Context, orderID int64, entries []model.LedgerEntry) error
	ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error)
	// Balance derives the summary by full aggregation over the entry set and
	// open payout requests, never from a cached counter.
	Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error)
	// UpdateStatus transitions an entry from one status to another. A stale
	// `from` yields ErrInvalidStateTransition, making retries provably safe.
	UpdateStatus(ctx context.Context, entryID int64, from, to model.EntryStatus) error
}
