package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn            func(context.Context, string, string) (string, error)
	RegisterSalespersonFn func(context.Context, string, string) (*model.Salesperson, string, error)
	AuthenticateFn        func(context.Context, string, string) (string, error)
	ParseFn               func(string) (int64, model.Role, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// RegisterSalesperson returns a salesperson with a referral code and a token.
func (s AuthFacadeStub) RegisterSalesperson(ctx context.Context, login, password string) (*model.Salesperson, string, error) {
	if s.RegisterSalespersonFn != nil {
		return s.RegisterSalespersonFn(ctx, login, password)
	}
	return &model.Salesperson{ID: 1, ReferralCode: "SPR-TESTCODE"}, "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleBuyer, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, usecase.CheckoutInput) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
}

// Checkout delegates to provided function or returns a default order.
func (s OrderFacadeStub) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, input)
	}
	return &model.Order{ID: 1, BuyerID: input.BuyerID, Status: model.OrderStatusPaid}, nil
}

// Orders returns predefined orders for given buyer.
func (s OrderFacadeStub) Orders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, buyerID)
	}
	return []model.Order{{ID: 1, BuyerID: buyerID}}, nil
}

// SalespersonFacadeStub simulates the salesperson-facing surface.
type SalespersonFacadeStub struct {
	SalespersonByUserFn func(context.Context, int64) (*model.Salesperson, error)
	BalanceFn           func(context.Context, int64) (*model.BalanceSummary, error)
	LedgerFn            func(context.Context, int64) ([]model.LedgerEntry, error)
	RequestPayoutFn     func(context.Context, int64) (*model.PayoutRequest, error)
	PayoutsFn           func(context.Context, int64) ([]model.PayoutRequest, error)
}

// SalespersonByUser returns the salesperson owned by the user.
func (s SalespersonFacadeStub) SalespersonByUser(ctx context.Context, userID int64) (*model.Salesperson, error) {
	if s.SalespersonByUserFn != nil {
		return s.SalespersonByUserFn(ctx, userID)
	}
	return &model.Salesperson{ID: 1, UserID: userID, ReferralCode: "SPR-TESTCODE"}, nil
}

// Balance returns stored summary or default data.
func (s SalespersonFacadeStub) Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, salespersonID)
	}
	return &model.BalanceSummary{
		Available: decimal.NewFromInt(100),
		Pending:   decimal.NewFromInt(20),
		Withdrawn: decimal.NewFromInt(30),
	}, nil
}

// Ledger returns preconfigured entry history.
func (s SalespersonFacadeStub) Ledger(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error) {
	if s.LedgerFn != nil {
		return s.LedgerFn(ctx, salespersonID)
	}
	return []model.LedgerEntry{{ID: 1, Reference: "ORD-1-1", SalespersonID: salespersonID}}, nil
}

// RequestPayout executes configured payout handler.
func (s SalespersonFacadeStub) RequestPayout(ctx context.Context, salespersonID int64) (*model.PayoutRequest, error) {
	if s.RequestPayoutFn != nil {
		return s.RequestPayoutFn(ctx, salespersonID)
	}
	return &model.PayoutRequest{ID: 1, SalespersonID: salespersonID, Status: model.PayoutStatusPending}, nil
}

// Payouts returns preconfigured payout history.
func (s SalespersonFacadeStub) Payouts(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
	if s.PayoutsFn != nil {
		return s.PayoutsFn(ctx, salespersonID)
	}
	return []model.PayoutRequest{{ID: 1, SalespersonID: salespersonID}}, nil
}

// AdminFacadeStub simulates the admin surface.
type AdminFacadeStub struct {
	VerifyOrderFn        func(context.Context, int64, int64) (*model.Order, error)
	PendingPayoutsFn     func(context.Context) ([]model.PayoutRequest, error)
	ResolvePayoutFn      func(context.Context, int64, int64, bool, string) (*model.PayoutRequest, error)
	ResolvePayoutBatchFn func(context.Context, int64, []int64) error
	SettlePayoutFn       func(context.Context, int64, int64, bool, string) (*model.PayoutRequest, error)
	ManualEntryFn        func(context.Context, int64, int64, model.EntryKind, decimal.Decimal) (*model.LedgerEntry, error)
	ReviewEntryFn        func(context.Context, int64, int64, bool) error
	CreateProductFn      func(context.Context, string, decimal.Decimal, model.CommissionRule) (*model.Product, error)
}

// VerifyOrder marks the order paid or delegates to the override.
func (s AdminFacadeStub) VerifyOrder(ctx context.Context, actorID, orderID int64) (*model.Order, error) {
	if s.VerifyOrderFn != nil {
		return s.VerifyOrderFn(ctx, actorID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPaid}, nil
}

// PendingPayouts returns the queue awaiting review.
func (s AdminFacadeStub) PendingPayouts(ctx context.Context) ([]model.PayoutRequest, error) {
	if s.PendingPayoutsFn != nil {
		return s.PendingPayoutsFn(ctx)
	}
	return []model.PayoutRequest{{ID: 1, Status: model.PayoutStatusPending}}, nil
}

// ResolvePayout applies the review decision.
func (s AdminFacadeStub) ResolvePayout(ctx context.Context, actorID, requestID int64, approve bool, note string) (*model.PayoutRequest, error) {
	if s.ResolvePayoutFn != nil {
		return s.ResolvePayoutFn(ctx, actorID, requestID, approve, note)
	}
	status := model.PayoutStatusProcessing
	if !approve {
		status = model.PayoutStatusRejected
	}
	return &model.PayoutRequest{ID: requestID, Status: status, Note: note}, nil
}

// ResolvePayoutBatch applies a bulk approval.
func (s AdminFacadeStub) ResolvePayoutBatch(ctx context.Context, actorID int64, requestIDs []int64) error {
	if s.ResolvePayoutBatchFn != nil {
		return s.ResolvePayoutBatchFn(ctx, actorID, requestIDs)
	}
	return nil
}

// SettlePayout finalizes a processing payout.
func (s AdminFacadeStub) SettlePayout(ctx context.Context, actorID, requestID int64, paid bool, note string) (*model.PayoutRequest, error) {
	if s.SettlePayoutFn != nil {
		return s.SettlePayoutFn(ctx, actorID, requestID, paid, note)
	}
	status := model.PayoutStatusRejected
	if paid {
		status = model.PayoutStatusPaid
	}
	return &model.PayoutRequest{ID: requestID, Status: status, Note: note}, nil
}

// ManualEntry posts an adjustment entry.
func (s AdminFacadeStub) ManualEntry(ctx context.Context, actorID, salespersonID int64, kind model.EntryKind, amount decimal.Decimal) (*model.LedgerEntry, error) {
	if s.ManualEntryFn != nil {
		return s.ManualEntryFn(ctx, actorID, salespersonID, kind, amount)
	}
	return &model.LedgerEntry{ID: 1, Kind: kind, SalespersonID: salespersonID, Amount: amount, Status: model.EntryStatusPaid}, nil
}

// ReviewEntry resolves a flagged entry.
func (s AdminFacadeStub) ReviewEntry(ctx context.Context, actorID, entryID int64, approve bool) error {
	if s.ReviewEntryFn != nil {
		return s.ReviewEntryFn(ctx, actorID, entryID, approve)
	}
	return nil
}

// CreateProduct stores a catalog product.
func (s AdminFacadeStub) CreateProduct(ctx context.Context, name string, price decimal.Decimal, rule model.CommissionRule) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, name, price, rule)
	}
	return &model.Product{ID: 1, Name: name, Price: price, Commission: rule, Active: true}, nil
}

// SettlementFacadeStub aggregates facade dependencies for HTTP layer tests.
type SettlementFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	SalespersonFacadeStub
	AdminFacadeStub
}

// WorkerFacadeStub drives the reconciliation worker in tests.
type WorkerFacadeStub struct {
	sync.Mutex

	Batches   [][]model.Order
	UnpostedFn func(context.Context, int) ([]model.Order, error)
	CompleteFn func(context.Context, int64) error

	Completed []int64
}

// UnpostedOrders pops the next configured batch.
func (s *WorkerFacadeStub) UnpostedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.UnpostedFn != nil {
		return s.UnpostedFn(ctx, limit)
	}
	s.Lock()
	defer s.Unlock()
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// CompletePosting records the order identifier handed to the worker.
func (s *WorkerFacadeStub) CompletePosting(ctx context.Context, orderID int64) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID)
	}
	s.Lock()
	defer s.Unlock()
	s.Completed = append(s.Completed, orderID)
	return nil
}

// NotifierStub counts emitted notifications.
type NotifierStub struct {
	sync.Mutex

	Created  []int64
	Verified []int64
	Posted   []int64
	Resolved []int64
}

func (s *NotifierStub) OrderCreated(ctx context.Context, order *model.Order) {
	s.Lock()
	defer s.Unlock()
	s.Created = append(s.Created, order.ID)
}

func (s *NotifierStub) OrderVerified(ctx context.Context, order *model.Order) {
	s.Lock()
	defer s.Unlock()
	s.Verified = append(s.Verified, order.ID)
}

func (s *NotifierStub) EntriesPosted(ctx context.Context, orderID int64, entries []model.LedgerEntry) {
	s.Lock()
	defer s.Unlock()
	s.Posted = append(s.Posted, orderID)
}

func (s *NotifierStub) PayoutResolved(ctx context.Context, request *model.PayoutRequest) {
	s.Lock()
	defer s.Unlock()
	s.Resolved = append(s.Resolved, request.ID)
}

// AuditRecord captures a single audit invocation.
type AuditRecord struct {
	ActorID int64
	Action  string
	Target  string
	Details map[string]any
}

// AuditLogStub collects audit records for assertions.
type AuditLogStub struct {
	sync.Mutex

	Records []AuditRecord
}

// Record appends the invocation to the collected list.
func (s *AuditLogStub) Record(ctx context.Context, actorID int64, action, target string, details map[string]any) {
	s.Lock()
	defer s.Unlock()
	s.Records = append(s.Records, AuditRecord{ActorID: actorID, Action: action, Target: target, Details: details})
}
