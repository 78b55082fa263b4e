package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is a single cart line.
type CheckoutItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CheckoutRequest describes the checkout payload.
type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items" binding:"required"`
	ReferralCode    string                `json:"referral_code"`
	PaymentMethod   string                `json:"payment_method" binding:"required"`
	ShippingAddress string                `json:"shipping_address"`
	ReceiptRef      string                `json:"receipt_ref"`
	Source          string                `json:"source"`
	ClickedAt       *time.Time            `json:"clicked_at"`
}

// OrderItemResponse mirrors a stored line item.
type OrderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse describes an order in API responses.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}
