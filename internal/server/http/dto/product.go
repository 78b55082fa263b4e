package dto

import "github.com/shopspring/decimal"

// ProductRequest creates a catalog product with its commission rule.
type ProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	CommissionType string          `json:"commission_type" binding:"required"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// ProductResponse describes a catalog product.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	CommissionType string          `json:"commission_type"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Active         bool            `json:"active"`
}
