package usecase_test

import (
	"context"
	"errors"
	"github.com/polkiloo/refmart/internal/usecase"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	testhelpers "github.com/polkiloo/refmart/internal/test"
)

func TestProductCreate(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub()
	uc := usecase.NewProductUseCase(products)

	product, err := uc.Create(context.Background(), "widget", decimal.RequireFromString("19.999"), model.CommissionRule{
		Type: model.CommissionTypePercentage,
		Rate: decimal.NewFromInt(15),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}
	if product.Price.String() != "20" {
		t.Fatalf("expected price rounded to 20, got %s", product.Price)
	}
	if !product.Active {
		t.Fatal("expected new product to be active")
	}
}

func TestProductCreateValidation(t *testing.T) {
	uc := usecase.NewProductUseCase(testhelpers.NewProductRepositoryStub())
	ctx := context.Background()
	percentage := model.CommissionRule{Type: model.CommissionTypePercentage, Rate: decimal.NewFromInt(10)}

	if _, err := uc.Create(ctx, "", decimal.NewFromInt(10), percentage); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for empty name, got %v", err)
	}
	if _, err := uc.Create(ctx, "widget", decimal.Zero, percentage); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for zero price, got %v", err)
	}
	if _, err := uc.Create(ctx, "widget", decimal.NewFromInt(10), model.CommissionRule{
		Type: model.CommissionTypePercentage,
		Rate: decimal.NewFromInt(-1),
	}); !errors.Is(err, domainErrors.ErrInvalidCommissionRule) {
		t.Fatalf("expected invalid rule for negative rate, got %v", err)
	}
	if _, err := uc.Create(ctx, "widget", decimal.NewFromInt(10), model.CommissionRule{
		Type: model.CommissionType("tiered"),
		Rate: decimal.NewFromInt(5),
	}); !errors.Is(err, domainErrors.ErrInvalidCommissionRule) {
		t.Fatalf("expected invalid rule for unknown type, got %v", err)
	}
}

func TestProductGet(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub()
	products.Add(&model.Product{ID: 42, Name: "widget"})
	uc := usecase.NewProductUseCase(products)

	product, err := uc.Get(context.Background(), 42)
	if err != nil || product.Name != "widget" {
		t.Fatalf("unexpected product %v err=%v", product, err)
	}

	if _, err := uc.Get(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
