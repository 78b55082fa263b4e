package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	RegisterSalesperson(ctx context.Context, login, password string) (*model.Salesperson, string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// OrderFacade encapsulates buyer-facing order operations.
type OrderFacade interface {
	Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error)
	Orders(ctx context.Context, buyerID int64) ([]model.Order, error)
}

// SalespersonFacade provides the commission surface of a salesperson account.
type SalespersonFacade interface {
	SalespersonByUser(ctx context.Context, userID int64) (*model.Salesperson, error)
	Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error)
	Ledger(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error)
	RequestPayout(ctx context.Context, salespersonID int64) (*model.PayoutRequest, error)
	Payouts(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error)
}

// AdminFacade covers verification, payout review and manual ledger control.
type AdminFacade interface {
	VerifyOrder(ctx context.Context, actorID, orderID int64) (*model.Order, error)
	PendingPayouts(ctx context.Context) ([]model.PayoutRequest, error)
	ResolvePayout(ctx context.Context, actorID, requestID int64, approve bool, note string) (*model.PayoutRequest, error)
	ResolvePayoutBatch(ctx context.Context, actorID int64, requestIDs []int64) error
	SettlePayout(ctx context.Context, actorID, requestID int64, paid bool, note string) (*model.PayoutRequest, error)
	ManualEntry(ctx context.Context, actorID, salespersonID int64, kind model.EntryKind, amount decimal.Decimal) (*model.LedgerEntry, error)
	ReviewEntry(ctx context.Context, actorID, entryID int64, approve bool) error
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, rule model.CommissionRule) (*model.Product, error)
}

// SettlementFacade aggregates the full set of operations used across handlers.
type SettlementFacade interface {
	AuthFacade
	OrderFacade
	SalespersonFacade
	AdminFacade
}
