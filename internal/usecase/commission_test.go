package usecase

import (
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
)

func TestCalculateCommissionPercentage(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionTypePercentage, Rate: decimal.NewFromInt(20)}
	item := model.LineItem{Quantity: 1, UnitPrice: decimal.NewFromInt(200)}

	amount, err := CalculateCommission(rule, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount.String() != "40" {
		t.Fatalf("expected 40, got %s", amount)
	}
}

func TestCalculateCommissionPercentageMultipleUnits(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionTypePercentage, Rate: decimal.NewFromFloat(7.5)}
	item := model.LineItem{Quantity: 3, UnitPrice: decimal.NewFromFloat(19.99)}

	amount, err := CalculateCommission(rule, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 * 19.99 * 7.5% = 4.49775, rounded half-up to 4.50
	if amount.String() != "4.5" {
		t.Fatalf("expected 4.5, got %s", amount)
	}
}

func TestCalculateCommissionFixedPerUnit(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionTypeFixed, Rate: decimal.NewFromInt(30)}
	item := model.LineItem{Quantity: 2, UnitPrice: decimal.NewFromInt(999)}

	amount, err := CalculateCommission(rule, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount.String() != "60" {
		t.Fatalf("expected 60, got %s", amount)
	}
}

func TestCalculateCommissionZeroRate(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionTypePercentage, Rate: decimal.Zero}
	item := model.LineItem{Quantity: 5, UnitPrice: decimal.NewFromInt(100)}

	amount, err := CalculateCommission(rule, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.IsZero() {
		t.Fatalf("expected zero commission, got %s", amount)
	}
}

func TestCalculateCommissionUnknownType(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionType("tiered"), Rate: decimal.NewFromInt(5)}
	item := model.LineItem{Quantity: 1, UnitPrice: decimal.NewFromInt(100)}

	if _, err := CalculateCommission(rule, item); err != domainErrors.ErrInvalidCommissionRule {
		t.Fatalf("expected invalid rule error, got %v", err)
	}
}

func TestCalculateCommissionRounding(t *testing.T) {
	rule := model.CommissionRule{Type: model.CommissionTypePercentage, Rate: decimal.NewFromInt(3)}
	item := model.LineItem{Quantity: 1, UnitPrice: decimal.NewFromFloat(33.33)}

	amount, err := CalculateCommission(rule, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 33.33 * 3% = 0.9999, rounds to 1.00
	if amount.String() != "1" {
		t.Fatalf("expected 1, got %s", amount)
	}
}
