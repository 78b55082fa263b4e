package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
)

// ProductUseCase is the thin catalog surface the engine owns: enough to
// configure commission rules. Negative rates are rejected here, at the
// product-configuration boundary.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create validates and stores a product.
func (u *ProductUseCase) Create(ctx context.Context, name string, price decimal.Decimal, rule model.CommissionRule) (*model.Product, error) {
	if name == "" || !price.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if !rule.Type.IsValid() || rule.Rate.IsNegative() {
		return nil, domainErrors.ErrInvalidCommissionRule
	}

	product := &model.Product{
		Name:       name,
		Price:      price.Round(2),
		Commission: rule,
		Active:     true,
	}
	return u.products.Create(ctx, product)
}

// Get returns a product by ID.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}
