package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// PayoutRepository manages withdrawal claims. Create performs the balance
// check and the insert inside one transaction keyed by the salesperson row,
// so concurrent requests cannot overdraw.
type PayoutRepository interface {
	Create(ctx context.Context, salespersonID int64, minAmount decimal.Decimal) (*model.PayoutRequest, error)
	ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error)
	ListByStatus(ctx context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error)
	// Resolve moves a pending request to processing or rejected.
	Resolve(ctx context.Context, requestID int64, approve bool, note string) (*model.PayoutRequest, error)
	// ResolveBatch moves many pending requests to processing in one transaction.
	ResolveBatch(ctx context.Context, requestIDs []int64) error
	// Settle finishes a processing request. On paid it inserts the payout
	// debit ledger entry under the given reference in the same transaction.
	Settle(ctx context.Context, requestID int64, paid bool, note, reference string) (*model.PayoutRequest, error)
}
