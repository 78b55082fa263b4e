package repository

import (
	"context"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// ProductRepository exposes the catalog subset the engine needs: prices and
// commission rules, resolved at posting time.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}
