package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SalespersonRepositoryStub stores salespeople in-memory for tests.
type SalespersonRepositoryStub struct {
	ByCode map[string]*model.Salesperson
	ByID   map[int64]*model.Salesperson
	ByUser map[int64]*model.Salesperson
	Next   int64
	Err    error

	CreateFn func(context.Context, int64, string) (*model.Salesperson, error)
}

// NewSalespersonRepositoryStub constructs stub repository with initialized maps.
func NewSalespersonRepositoryStub() *SalespersonRepositoryStub {
	return &SalespersonRepositoryStub{
		ByCode: make(map[string]*model.Salesperson),
		ByID:   make(map[int64]*model.Salesperson),
		ByUser: make(map[int64]*model.Salesperson),
		Next:   1,
	}
}

// Add registers a prebuilt salesperson in all lookup maps.
func (s *SalespersonRepositoryStub) Add(sp *model.Salesperson) {
	s.ByCode[sp.ReferralCode] = sp
	s.ByID[sp.ID] = sp
	s.ByUser[sp.UserID] = sp
}

// Create registers a new salesperson with the supplied referral code.
func (s *SalespersonRepositoryStub) Create(ctx context.Context, userID int64, referralCode string) (*model.Salesperson, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, referralCode)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByCode[referralCode]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	sp := &model.Salesperson{ID: s.Next, UserID: userID, ReferralCode: referralCode}
	s.Next++
	s.Add(sp)
	return sp, nil
}

// GetByCode resolves a salesperson by referral code.
func (s *SalespersonRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Salesperson, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if sp, ok := s.ByCode[code]; ok {
		return sp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID resolves a salesperson by identifier.
func (s *SalespersonRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Salesperson, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if sp, ok := s.ByID[id]; ok {
		return sp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUserID resolves a salesperson by the owning user.
func (s *SalespersonRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.Salesperson, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if sp, ok := s.ByUser[userID]; ok {
		return sp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	ByID map[int64]*model.Product
	Next int64
	Err  error
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{ByID: make(map[int64]*model.Product), Next: 1}
}

// Add registers a prebuilt product.
func (s *ProductRepositoryStub) Add(p *model.Product) {
	s.ByID[p.ID] = p
}

// Create stores a product assigning the next identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	product.ID = s.Next
	s.Next++
	s.ByID[product.ID] = product
	return product, nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.ByID[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour per method.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order, []model.LedgerEntry) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByBuyerFn  func(context.Context, int64) ([]model.Order, error)
	VerifyFn       func(context.Context, int64, []model.LedgerEntry) error
	ListUnpostedFn func(context.Context, int) ([]model.Order, error)

	CreatedOrders  []*model.Order
	CreatedEntries [][]model.LedgerEntry
}

// Create records the order and its entries, assigning identifiers.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, entries []model.LedgerEntry) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, entries)
	}
	order.ID = int64(len(s.CreatedOrders) + 1)
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	for i := range entries {
		if entries[i].Reference == "" {
			entries[i].Reference = model.CommissionReference(order.ID, i+1)
		}
	}
	s.CreatedOrders = append(s.CreatedOrders, order)
	s.CreatedEntries = append(s.CreatedEntries, entries)
	return order, nil
}

// GetByID delegates to override or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer delegates to override or returns empty history.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.ListByBuyerFn != nil {
		return s.ListByBuyerFn(ctx, buyerID)
	}
	return nil, nil
}

// Verify delegates to override or records nothing.
func (s *OrderRepositoryStub) Verify(ctx context.Context, orderID int64, entries []model.LedgerEntry) error {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, entries)
	}
	return nil
}

// ListUnposted delegates to override or returns empty batch.
func (s *OrderRepositoryStub) ListUnposted(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListUnpostedFn != nil {
		return s.ListUnpostedFn(ctx, limit)
	}
	return nil, nil
}

// LedgerRepositoryStub allows tests to customize ledger behaviour.
type LedgerRepositoryStub struct {
	InsertFn         func(context.Context, *model.LedgerEntry) (*model.LedgerEntry, error)
	InsertForOrderFn func(context.Context, int64, []model.LedgerEntry) error
	ListFn           func(context.Context, int64) ([]model.LedgerEntry, error)
	BalanceFn        func(context.Context, int64) (*model.BalanceSummary, error)
	UpdateStatusFn   func(context.Context, int64, model.EntryStatus, model.EntryStatus) error

	Inserted []model.LedgerEntry
}

// Insert records the entry and assigns an identifier.
func (s *LedgerRepositoryStub) Insert(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, entry)
	}
	entry.ID = int64(len(s.Inserted) + 1)
	s.Inserted = append(s.Inserted, *entry)
	return entry, nil
}

// InsertForOrder records the batch for later inspection.
func (s *LedgerRepositoryStub) InsertForOrder(ctx context.Context, orderID int64, entries []model.LedgerEntry) error {
	if s.InsertForOrderFn != nil {
		return s.InsertForOrderFn(ctx, orderID, entries)
	}
	s.Inserted = append(s.Inserted, entries...)
	return nil
}

// ListBySalesperson delegates to override or returns recorded entries.
func (s *LedgerRepositoryStub) ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, salespersonID)
	}
	return s.Inserted, nil
}

// Balance delegates to override or returns zero summary.
func (s *LedgerRepositoryStub) Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, salespersonID)
	}
	return &model.BalanceSummary{}, nil
}

// UpdateStatus delegates to override or succeeds silently.
func (s *LedgerRepositoryStub) UpdateStatus(ctx context.Context, entryID int64, from, to model.EntryStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, entryID, from, to)
	}
	return nil
}

// PayoutRepositoryStub allows tests to customize payout behaviour.
type PayoutRepositoryStub struct {
	CreateFn       func(context.Context, int64, decimal.Decimal) (*model.PayoutRequest, error)
	ListFn         func(context.Context, int64) ([]model.PayoutRequest, error)
	ListByStatusFn func(context.Context, model.PayoutStatus) ([]model.PayoutRequest, error)
	ResolveFn      func(context.Context, int64, bool, string) (*model.PayoutRequest, error)
	ResolveBatchFn func(context.Context, []int64) error
	SettleFn       func(context.Context, int64, bool, string, string) (*model.PayoutRequest, error)
}

// Create delegates to override or returns a pending request.
func (s *PayoutRepositoryStub) Create(ctx context.Context, salespersonID int64, minAmount decimal.Decimal) (*model.PayoutRequest, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, salespersonID, minAmount)
	}
	return &model.PayoutRequest{ID: 1, SalespersonID: salespersonID, Status: model.PayoutStatusPending}, nil
}

// ListBySalesperson delegates to override or returns empty history.
func (s *PayoutRepositoryStub) ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, salespersonID)
	}
	return nil, nil
}

// ListByStatus delegates to override or returns empty batch.
func (s *PayoutRepositoryStub) ListByStatus(ctx context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error) {
	if s.ListByStatusFn != nil {
		return s.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

// Resolve delegates to override or reports the transition as applied.
func (s *PayoutRepositoryStub) Resolve(ctx context.Context, requestID int64, approve bool, note string) (*model.PayoutRequest, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, requestID, approve, note)
	}
	status := model.PayoutStatusProcessing
	if !approve {
		status = model.PayoutStatusRejected
	}
	return &model.PayoutRequest{ID: requestID, Status: status, Note: note}, nil
}

// ResolveBatch delegates to override or succeeds silently.
func (s *PayoutRepositoryStub) ResolveBatch(ctx context.Context, requestIDs []int64) error {
	if s.ResolveBatchFn != nil {
		return s.ResolveBatchFn(ctx, requestIDs)
	}
	return nil
}

// Settle delegates to override or reports the settlement as applied.
func (s *PayoutRepositoryStub) Settle(ctx context.Context, requestID int64, paid bool, note, reference string) (*model.PayoutRequest, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, requestID, paid, note, reference)
	}
	status := model.PayoutStatusRejected
	if paid {
		status = model.PayoutStatusPaid
	}
	return &model.PayoutRequest{ID: requestID, Status: status, Note: note}, nil
}
