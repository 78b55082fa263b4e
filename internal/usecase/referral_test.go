package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"github.com/polkiloo/refmart/internal/usecase"
	"testing"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	testhelpers "github.com/polkiloo/refmart/internal/test"
)

func newReferralUseCase() (*usecase.ReferralUseCase, *testhelpers.SalespersonRepositoryStub) {
	salespeople := testhelpers.NewSalespersonRepositoryStub()
	return usecase.NewReferralUseCase(salespeople), salespeople
}

func TestReferralResolveByCode(t *testing.T) {
	uc, salespeople := newReferralUseCase()
	salespeople.Add(&model.Salesperson{ID: 5, UserID: 1, ReferralCode: "SPR-AAAA1111"})

	sp, err := uc.Resolve(context.Background(), "SPR-AAAA1111")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if sp.ID != 5 {
		t.Fatalf("expected salesperson 5, got %d", sp.ID)
	}
}

func TestReferralResolveNormalizesToken(t *testing.T) {
	uc, salespeople := newReferralUseCase()
	salespeople.Add(&model.Salesperson{ID: 5, UserID: 1, ReferralCode: "SPR-AAAA1111"})

	sp, err := uc.Resolve(context.Background(), "  spr-aaaa1111  ")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if sp.ID != 5 {
		t.Fatalf("expected salesperson 5, got %d", sp.ID)
	}
}

func TestReferralResolveNumericFallback(t *testing.T) {
	uc, salespeople := newReferralUseCase()
	salespeople.Add(&model.Salesperson{ID: 7, UserID: 2, ReferralCode: "SPR-BBBB2222"})

	sp, err := uc.Resolve(context.Background(), "7")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if sp.ID != 7 {
		t.Fatalf("expected salesperson 7, got %d", sp.ID)
	}
}

func TestReferralResolveEmptyTokenUnattributed(t *testing.T) {
	uc, _ := newReferralUseCase()

	sp, err := uc.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if sp != nil {
		t.Fatalf("expected unattributed resolution, got %v", sp)
	}
}

func TestReferralResolveUnknownToken(t *testing.T) {
	uc, _ := newReferralUseCase()

	if _, err := uc.Resolve(context.Background(), "SPR-UNKNOWN1"); !errors.Is(err, domainErrors.ErrInvalidReferralCode) {
		t.Fatalf("expected invalid referral code, got %v", err)
	}
	if _, err := uc.Resolve(context.Background(), "12345"); !errors.Is(err, domainErrors.ErrInvalidReferralCode) {
		t.Fatalf("expected invalid referral code for unknown ID, got %v", err)
	}
}

func TestReferralResolveSuspended(t *testing.T) {
	uc, salespeople := newReferralUseCase()
	salespeople.Add(&model.Salesperson{ID: 5, UserID: 1, ReferralCode: "SPR-AAAA1111", Suspended: true})

	if _, err := uc.Resolve(context.Background(), "SPR-AAAA1111"); !errors.Is(err, domainErrors.ErrSalespersonSuspended) {
		t.Fatalf("expected suspended error, got %v", err)
	}
	if _, err := uc.Resolve(context.Background(), "5"); !errors.Is(err, domainErrors.ErrSalespersonSuspended) {
		t.Fatalf("expected suspended error via ID, got %v", err)
	}
}

func TestReferralResolveRepositoryError(t *testing.T) {
	uc, salespeople := newReferralUseCase()
	salespeople.Err = fmt.Errorf("db down")

	if _, err := uc.Resolve(context.Background(), "SPR-AAAA1111"); err == nil || errors.Is(err, domainErrors.ErrInvalidReferralCode) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}
