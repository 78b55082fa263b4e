package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/notify"
)

// LedgerUseCase exposes balance derivation, entry history and the manual
// admin write paths of the commission ledger.
type LedgerUseCase struct {
	ledger repository.LedgerRepository
	audit  notify.AuditLog
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(ledger repository.LedgerRepository, audit notify.AuditLog) *LedgerUseCase {
	return &LedgerUseCase{ledger: ledger, audit: audit}
}

// Balance returns the ledger-derived summary for a salesperson.
func (u *LedgerUseCase) Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error) {
	return u.ledger.Balance(ctx, salespersonID)
}

// History returns the salesperson's entries, newest first.
func (u *LedgerUseCase) History(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error) {
	return u.ledger.ListBySalesperson(ctx, salespersonID)
}

// ManualEntry appends an adjustment, bonus or fee created directly by an
// admin, bypassing the order state machine. The entry carries a generated
// unique reference and is immutable like every other entry; corrections are
// new offsetting entries.
func (u *LedgerUseCase) ManualEntry(ctx context.Context, actorID, salespersonID int64, kind model.EntryKind, amount decimal.Decimal) (*model.LedgerEntry, error) {
	switch kind {
	case model.EntryKindAdjustment:
		if amount.IsZero() {
			return nil, domainErrors.ErrInvalidAmount
		}
	case model.EntryKindBonus:
		if !amount.IsPositive() {
			return nil, domainErrors.ErrInvalidAmount
		}
	case model.EntryKindFee:
		if !amount.IsNegative() {
			return nil, domainErrors.ErrInvalidAmount
		}
	default:
		return nil, domainErrors.ErrInvalidCommissionRule
	}

	entry := &model.LedgerEntry{
		Reference:     manualReference(kind),
		Kind:          kind,
		SalespersonID: salespersonID,
		Amount:        amount.Round(2),
		Status:        model.EntryStatusPaid,
		Source:        model.AttributionManual,
	}

	created, err := u.ledger.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, actorID, "ledger.manual_entry", created.Reference, map[string]any{
		"salesperson_id": salespersonID,
		"kind":           string(kind),
		"amount":         created.Amount.String(),
	})
	return created, nil
}

// ReviewEntry settles a flagged commission entry after manual review: approve
// moves it to paid, reject to rejected. Any other current status fails with
// ErrInvalidStateTransition.
func (u *LedgerUseCase) ReviewEntry(ctx context.Context, actorID, entryID int64, approve bool) error {
	to := model.EntryStatusPaid
	if !approve {
		to = model.EntryStatusRejected
	}

	if err := u.ledger.UpdateStatus(ctx, entryID, model.EntryStatusFlagged, to); err != nil {
		return err
	}

	u.audit.Record(ctx, actorID, "ledger.review", fmt.Sprintf("entry:%d", entryID), map[string]any{
		"decision": string(to),
	})
	return nil
}

func manualReference(kind model.EntryKind) string {
	prefix := strings.ToUpper(string(kind))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return prefix + "-" + uuid.NewString()
}
