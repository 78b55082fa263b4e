package repository

import (
	"context"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Create and
// Verify are transactional: order mutation and ledger posting commit or roll
// back together.
type OrderRepository interface {
	// Create persists the order with its line items and, for orders that are
	// immediately payable, the supplied ledger entries in a single transaction.
	Create(ctx context.Context, order *model.Order, entries []model.LedgerEntry) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	// Verify transitions pending_approval to paid and inserts the ledger
	// entries atomically. Returns ErrInvalidStateTransition when the order is
	// in any other state, so retried or raced calls post nothing.
	Verify(ctx context.Context, orderID int64, entries []model.LedgerEntry) error
	// ListUnposted returns paid orders with an attributed salesperson whose
	// line items are missing ledger entries. Used by the reconciliation pass.
	ListUnposted(ctx context.Context, limit int) ([]model.Order, error)
}
