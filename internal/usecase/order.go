package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/notify"
)

// CheckoutItem is one requested position in a checkout.
type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

// CheckoutInput carries everything the state machine needs to create an order.
type CheckoutInput struct {
	BuyerID         int64
	Items           []CheckoutItem
	ReferralToken   string
	PaymentMethod   model.PaymentMethod
	ShippingAddress string
	ReceiptRef      string
	Source          model.AttributionSource
	UserAgent       string
	ClickedAt       *time.Time
}

// OrderUseCase governs the order lifecycle: creation, admin verification and
// the posting procedure that turns payable orders into ledger entries.
type OrderUseCase struct {
	orders        repository.OrderRepository
	products      repository.ProductRepository
	ledger        repository.LedgerRepository
	referrals     *ReferralUseCase
	risk          *RiskScorer
	flagThreshold int
	notifier      notify.Notifier
	audit         notify.AuditLog
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	ledger repository.LedgerRepository,
	referrals *ReferralUseCase,
	risk *RiskScorer,
	flagThreshold int,
	notifier notify.Notifier,
	audit notify.AuditLog,
) *OrderUseCase {
	return &OrderUseCase{
		orders:        orders,
		products:      products,
		ledger:        ledger,
		referrals:     referrals,
		risk:          risk,
		flagThreshold: flagThreshold,
		notifier:      notifier,
		audit:         audit,
	}
}

// Checkout validates the request, resolves referral attribution and creates
// the order. Payment methods requiring manual receipt verification start in
// pending_approval with no ledger effect; everything else starts paid and
// posts commission entries in the same transaction.
func (u *OrderUseCase) Checkout(ctx context.Context, input CheckoutInput) (*model.Order, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, domainErrors.ErrInvalidPaymentMethod
	}
	if len(input.Items) == 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
	}

	salesperson, err := u.referrals.Resolve(ctx, input.ReferralToken)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		BuyerID:         input.BuyerID,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		ReceiptRef:      input.ReceiptRef,
		Source:          input.Source,
		UserAgent:       input.UserAgent,
		ClickedAt:       input.ClickedAt,
		TotalAmount:     decimal.Zero,
	}
	if order.Source == "" {
		order.Source = model.AttributionLink
	}
	if salesperson != nil {
		order.SalespersonID = &salesperson.ID
	}

	for _, item := range input.Items {
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrProductNotFound
			}
			return nil, err
		}
		line := model.LineItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		order.Items = append(order.Items, line)
		order.TotalAmount = order.TotalAmount.Add(line.Subtotal())
	}

	var entries []model.LedgerEntry
	if input.PaymentMethod.RequiresVerification() {
		order.Status = model.OrderStatusPendingApproval
	} else {
		order.Status = model.OrderStatusPaid
		entries, err = u.buildEntries(ctx, order, model.EntryStatusPaid)
		if err != nil {
			return nil, err
		}
	}

	created, err := u.orders.Create(ctx, order, entries)
	if err != nil {
		return nil, err
	}

	u.notifier.OrderCreated(ctx, created)
	if len(entries) > 0 {
		u.notifier.EntriesPosted(ctx, created.ID, entries)
	}
	return created, nil
}

// Verify is the admin transition from pending_approval to paid; it is the
// sole posting trigger for orders that started unpaid. The status flip and
// the entry inserts commit in one transaction, and any state other than
// pending_approval fails with ErrInvalidStateTransition, so retried or raced
// calls post nothing.
func (u *OrderUseCase) Verify(ctx context.Context, actorID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPendingApproval {
		return nil, domainErrors.ErrInvalidStateTransition
	}

	entries, err := u.buildEntries(ctx, order, model.EntryStatusPaid)
	if err != nil {
		return nil, err
	}

	if err := u.orders.Verify(ctx, orderID, entries); err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusPaid
	u.audit.Record(ctx, actorID, "order.verify", fmt.Sprintf("order:%d", orderID), map[string]any{
		"entries": len(entries),
	})
	u.notifier.OrderVerified(ctx, order)
	if len(entries) > 0 {
		u.notifier.EntriesPosted(ctx, orderID, entries)
	}
	return order, nil
}

// ListByBuyer returns the buyer's orders, newest first.
func (u *OrderUseCase) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyerID)
}

// UnpostedOrders returns paid orders whose ledger entries are missing.
func (u *OrderUseCase) UnpostedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListUnposted(ctx, limit)
}

// CompletePosting finishes the posting step for a paid order that lost its
// ledger entries to a partial failure. Existing references are skipped, so
// running it against an already-posted order is a no-op.
func (u *OrderUseCase) CompletePosting(ctx context.Context, orderID int64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPaid || !order.Attributed() {
		return nil
	}

	entries, err := u.buildEntries(ctx, order, model.EntryStatusPaid)
	if err != nil {
		return err
	}
	if err := u.ledger.InsertForOrder(ctx, orderID, entries); err != nil {
		return err
	}

	u.notifier.EntriesPosted(ctx, orderID, entries)
	return nil
}

// buildEntries runs the shared posting procedure: one commission entry per
// line item, computed from the product's commission rule as it stands at
// posting time, risk scored, and flagged when the score passes the threshold.
func (u *OrderUseCase) buildEntries(ctx context.Context, order *model.Order, target model.EntryStatus) ([]model.LedgerEntry, error) {
	if !order.Attributed() {
		return nil, nil
	}

	var clickToPurchase *time.Duration
	if order.ClickedAt != nil {
		purchasedAt := order.CreatedAt
		if purchasedAt.IsZero() {
			purchasedAt = time.Now()
		}
		elapsed := purchasedAt.Sub(*order.ClickedAt)
		clickToPurchase = &elapsed
	}

	entries := make([]model.LedgerEntry, 0, len(order.Items))
	for i, item := range order.Items {
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrProductNotFound
			}
			return nil, err
		}

		amount, err := CalculateCommission(product.Commission, item)
		if err != nil {
			return nil, err
		}

		score := u.risk.Score(model.RiskFeatures{
			Amount:          item.Subtotal(),
			ClickToPurchase: clickToPurchase,
			UserAgent:       order.UserAgent,
		})

		status := target
		if score > u.flagThreshold {
			status = model.EntryStatusFlagged
		}

		entry := model.LedgerEntry{
			Kind:          model.EntryKindCommission,
			SalespersonID: *order.SalespersonID,
			Amount:        amount,
			Status:        status,
			RiskScore:     score,
			Source:        order.Source,
		}
		if order.ID != 0 {
			entry.Reference = model.CommissionReference(order.ID, i+1)
			orderID := order.ID
			entry.OrderID = &orderID
			if item.ID != 0 {
				lineID := item.ID
				entry.LineItemID = &lineID
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
