package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/notify"
)

// PayoutUseCase validates and tracks withdrawal requests against the
// ledger-derived balance.
type PayoutUseCase struct {
	payouts   repository.PayoutRepository
	minPayout decimal.Decimal
	notifier  notify.Notifier
	audit     notify.AuditLog
}

// NewPayoutUseCase constructs PayoutUseCase.
func NewPayoutUseCase(payouts repository.PayoutRepository, minPayout decimal.Decimal, notifier notify.Notifier, audit notify.AuditLog) *PayoutUseCase {
	return &PayoutUseCase{payouts: payouts, minPayout: minPayout, notifier: notifier, audit: audit}
}

// Request claims the salesperson's full available balance. The balance check
// and the insert run atomically per salesperson, so concurrent requests
// cannot overdraw; a balance below the minimum fails with
// ErrInsufficientBalance and no side effects.
func (u *PayoutUseCase) Request(ctx context.Context, salespersonID int64) (*model.PayoutRequest, error) {
	return u.payouts.Create(ctx, salespersonID, u.minPayout)
}

// History returns the salesperson's payout requests, newest first.
func (u *PayoutUseCase) History(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
	return u.payouts.ListBySalesperson(ctx, salespersonID)
}

// ListPending returns requests awaiting admin review.
func (u *PayoutUseCase) ListPending(ctx context.Context) ([]model.PayoutRequest, error) {
	return u.payouts.ListByStatus(ctx, model.PayoutStatusPending)
}

// Resolve moves a pending request to processing (approve) or rejected.
func (u *PayoutUseCase) Resolve(ctx context.Context, actorID, requestID int64, approve bool, note string) (*model.PayoutRequest, error) {
	request, err := u.payouts.Resolve(ctx, requestID, approve, note)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, actorID, "payout.resolve", fmt.Sprintf("payout:%d", requestID), map[string]any{
		"decision": string(request.Status),
	})
	u.notifier.PayoutResolved(ctx, request)
	return request, nil
}

// ResolveBatch moves many pending requests to processing in one transaction.
func (u *PayoutUseCase) ResolveBatch(ctx context.Context, actorID int64, requestIDs []int64) error {
	if err := u.payouts.ResolveBatch(ctx, requestIDs); err != nil {
		return err
	}

	u.audit.Record(ctx, actorID, "payout.resolve_batch", "payouts", map[string]any{
		"count": len(requestIDs),
	})
	return nil
}

// Settle finishes a processing request. Only a paid settlement posts the
// payout debit ledger entry; rejecting releases the held amount without any
// ledger effect, so rejected requests never reserve balance.
func (u *PayoutUseCase) Settle(ctx context.Context, actorID, requestID int64, paid bool, note string) (*model.PayoutRequest, error) {
	reference := "PAY-" + uuid.NewString()
	request, err := u.payouts.Settle(ctx, requestID, paid, note, reference)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, actorID, "payout.settle", fmt.Sprintf("payout:%d", requestID), map[string]any{
		"decision": string(request.Status),
	})
	u.notifier.PayoutResolved(ctx, request)
	return request, nil
}
