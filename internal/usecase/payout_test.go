package usecase_test

import (
	"context"
	"errors"
	"github.com/polkiloo/refmart/internal/usecase"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	testhelpers "github.com/polkiloo/refmart/internal/test"
)

func newPayoutFixture() (*usecase.PayoutUseCase, *testhelpers.PayoutRepositoryStub, *testhelpers.NotifierStub, *testhelpers.AuditLogStub) {
	payouts := &testhelpers.PayoutRepositoryStub{}
	notifier := &testhelpers.NotifierStub{}
	audit := &testhelpers.AuditLogStub{}
	return usecase.NewPayoutUseCase(payouts, decimal.NewFromInt(50), notifier, audit), payouts, notifier, audit
}

func TestPayoutRequestPassesMinimum(t *testing.T) {
	uc, payouts, _, _ := newPayoutFixture()

	var gotMin decimal.Decimal
	payouts.CreateFn = func(_ context.Context, salespersonID int64, minAmount decimal.Decimal) (*model.PayoutRequest, error) {
		gotMin = minAmount
		return &model.PayoutRequest{ID: 1, SalespersonID: salespersonID, Status: model.PayoutStatusPending}, nil
	}

	request, err := uc.Request(context.Background(), 5)
	if err != nil {
		t.Fatalf("request returned error: %v", err)
	}
	if request.Status != model.PayoutStatusPending {
		t.Fatalf("expected pending request, got %q", request.Status)
	}
	if !gotMin.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected minimum 50, got %s", gotMin)
	}
}

func TestPayoutRequestInsufficientBalance(t *testing.T) {
	uc, payouts, _, _ := newPayoutFixture()
	payouts.CreateFn = func(context.Context, int64, decimal.Decimal) (*model.PayoutRequest, error) {
		return nil, domainErrors.ErrInsufficientBalance
	}

	if _, err := uc.Request(context.Background(), 5); !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestPayoutListPendingFiltersStatus(t *testing.T) {
	uc, payouts, _, _ := newPayoutFixture()
	payouts.ListByStatusFn = func(_ context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error) {
		if status != model.PayoutStatusPending {
			t.Fatalf("unexpected status filter %q", status)
		}
		return []model.PayoutRequest{{ID: 1}}, nil
	}

	pending, err := uc.ListPending(context.Background())
	if err != nil || len(pending) != 1 {
		t.Fatalf("unexpected result %v err=%v", pending, err)
	}
}

func TestPayoutResolve(t *testing.T) {
	uc, _, notifier, audit := newPayoutFixture()

	request, err := uc.Resolve(context.Background(), 99, 7, true, "checked")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if request.Status != model.PayoutStatusProcessing {
		t.Fatalf("expected processing, got %q", request.Status)
	}
	if len(notifier.Resolved) != 1 {
		t.Fatal("expected resolve notification")
	}
	if len(audit.Records) != 1 || audit.Records[0].Action != "payout.resolve" {
		t.Fatalf("expected audit record, got %+v", audit.Records)
	}

	rejected, err := uc.Resolve(context.Background(), 99, 8, false, "fraud")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if rejected.Status != model.PayoutStatusRejected {
		t.Fatalf("expected rejected, got %q", rejected.Status)
	}
}

func TestPayoutResolveErrorSkipsSideEffects(t *testing.T) {
	uc, payouts, notifier, audit := newPayoutFixture()
	payouts.ResolveFn = func(context.Context, int64, bool, string) (*model.PayoutRequest, error) {
		return nil, domainErrors.ErrInvalidStateTransition
	}

	if _, err := uc.Resolve(context.Background(), 99, 7, true, ""); !errors.Is(err, domainErrors.ErrInvalidStateTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if len(notifier.Resolved) != 0 || len(audit.Records) != 0 {
		t.Fatal("expected no side effects on failure")
	}
}

func TestPayoutResolveBatch(t *testing.T) {
	uc, payouts, _, audit := newPayoutFixture()

	var gotIDs []int64
	payouts.ResolveBatchFn = func(_ context.Context, requestIDs []int64) error {
		gotIDs = requestIDs
		return nil
	}

	if err := uc.ResolveBatch(context.Background(), 99, []int64{1, 2, 3}); err != nil {
		t.Fatalf("resolve batch returned error: %v", err)
	}
	if len(gotIDs) != 3 {
		t.Fatalf("unexpected batch %v", gotIDs)
	}
	if len(audit.Records) != 1 || audit.Records[0].Action != "payout.resolve_batch" {
		t.Fatalf("expected audit record, got %+v", audit.Records)
	}
}

func TestPayoutSettleGeneratesReference(t *testing.T) {
	uc, payouts, notifier, audit := newPayoutFixture()

	var gotReference string
	payouts.SettleFn = func(_ context.Context, requestID int64, paid bool, note, reference string) (*model.PayoutRequest, error) {
		gotReference = reference
		return &model.PayoutRequest{ID: requestID, Status: model.PayoutStatusPaid, Note: note}, nil
	}

	request, err := uc.Settle(context.Background(), 99, 7, true, "wired")
	if err != nil {
		t.Fatalf("settle returned error: %v", err)
	}
	if request.Status != model.PayoutStatusPaid {
		t.Fatalf("expected paid, got %q", request.Status)
	}
	if !strings.HasPrefix(gotReference, "PAY-") {
		t.Fatalf("expected payout debit reference, got %q", gotReference)
	}
	if len(notifier.Resolved) != 1 {
		t.Fatal("expected settle notification")
	}
	if len(audit.Records) != 1 || audit.Records[0].Action != "payout.settle" {
		t.Fatalf("expected audit record, got %+v", audit.Records)
	}
}

func TestPayoutSettleError(t *testing.T) {
	uc, payouts, notifier, _ := newPayoutFixture()
	payouts.SettleFn = func(context.Context, int64, bool, string, string) (*model.PayoutRequest, error) {
		return nil, domainErrors.ErrInvalidStateTransition
	}

	if _, err := uc.Settle(context.Background(), 99, 7, true, ""); !errors.Is(err, domainErrors.ErrInvalidStateTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if len(notifier.Resolved) != 0 {
		t.Fatal("expected no notification on failure")
	}
}

func TestPayoutHistoryDelegates(t *testing.T) {
	uc, payouts, _, _ := newPayoutFixture()
	payouts.ListFn = func(_ context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
		if salespersonID != 5 {
			t.Fatalf("unexpected salesperson %d", salespersonID)
		}
		return []model.PayoutRequest{{ID: 1}, {ID: 2}}, nil
	}

	history, err := uc.History(context.Background(), 5)
	if err != nil || len(history) != 2 {
		t.Fatalf("unexpected history %v err=%v", history, err)
	}
}
