package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/usecase"
)

// SettlementFacade bundles the use cases behind the surface the HTTP layer
// and the reconciler consume.
type SettlementFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	ledger   *usecase.LedgerUseCase
	payouts  *usecase.PayoutUseCase
	products *usecase.ProductUseCase
}

func NewSettlementFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	ledger *usecase.LedgerUseCase,
	payouts *usecase.PayoutUseCase,
	products *usecase.ProductUseCase,
) *SettlementFacade {
	return &SettlementFacade{
		auth:     auth,
		orders:   orders,
		ledger:   ledger,
		payouts:  payouts,
		products: products,
	}
}

func (f *SettlementFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, model.RoleBuyer)
	return token, err
}

func (f *SettlementFacade) RegisterSalesperson(ctx context.Context, login, password string) (*model.Salesperson, string, error) {
	return f.auth.RegisterSalesperson(ctx, login, password)
}

func (f *SettlementFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *SettlementFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *SettlementFacade) SalespersonByUser(ctx context.Context, userID int64) (*model.Salesperson, error) {
	return f.auth.SalespersonByUser(ctx, userID)
}

func (f *SettlementFacade) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	return f.orders.Checkout(ctx, input)
}

func (f *SettlementFacade) Orders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return f.orders.ListByBuyer(ctx, buyerID)
}

func (f *SettlementFacade) VerifyOrder(ctx context.Context, actorID, orderID int64) (*model.Order, error) {
	return f.orders.Verify(ctx, actorID, orderID)
}

func (f *SettlementFacade) UnpostedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.UnpostedOrders(ctx, limit)
}

func (f *SettlementFacade) CompletePosting(ctx context.Context, orderID int64) error {
	return f.orders.CompletePosting(ctx, orderID)
}

func (f *SettlementFacade) Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error) {
	return f.ledger.Balance(ctx, salespersonID)
}

func (f *SettlementFacade) Ledger(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error) {
	return f.ledger.History(ctx, salespersonID)
}

func (f *SettlementFacade) ManualEntry(ctx context.Context, actorID, salespersonID int64, kind model.EntryKind, amount decimal.Decimal) (*model.LedgerEntry, error) {
	return f.ledger.ManualEntry(ctx, actorID, salespersonID, kind, amount)
}

func (f *SettlementFacade) ReviewEntry(ctx context.Context, actorID, entryID int64, approve bool) error {
	return f.ledger.ReviewEntry(ctx, actorID, entryID, approve)
}

func (f *SettlementFacade) RequestPayout(ctx context.Context, salespersonID int64) (*model.PayoutRequest, error) {
	return f.payouts.Request(ctx, salespersonID)
}

func (f *SettlementFacade) Payouts(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
	return f.payouts.History(ctx, salespersonID)
}

func (f *SettlementFacade) PendingPayouts(ctx context.Context) ([]model.PayoutRequest, error) {
	return f.payouts.ListPending(ctx)
}

func (f *SettlementFacade) ResolvePayout(ctx context.Context, actorID, requestID int64, approve bool, note string) (*model.PayoutRequest, error) {
	return f.payouts.Resolve(ctx, actorID, requestID, approve, note)
}

func (f *SettlementFacade) ResolvePayoutBatch(ctx context.Context, actorID int64, requestIDs []int64) error {
	return f.payouts.ResolveBatch(ctx, actorID, requestIDs)
}

func (f *SettlementFacade) SettlePayout(ctx context.Context, actorID, requestID int64, paid bool, note string) (*model.PayoutRequest, error) {
	return f.payouts.Settle(ctx, actorID, requestID, paid, note)
}

func (f *SettlementFacade) CreateProduct(ctx context.Context, name string, price decimal.Decimal, rule model.CommissionRule) (*model.Product, error) {
	return f.products.Create(ctx, name, price, rule)
}

func (f *SettlementFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}
