package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order settlement lifecycle.
type OrderStatus string

const (
	OrderStatusPendingApproval OrderStatus = "pending_approval"
	OrderStatusPaid            OrderStatus = "paid"
	// Label-only states, never exercised by the settlement engine.
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
)

// PaymentMethod determines whether an order needs manual receipt verification.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodQRTransfer   PaymentMethod = "qr_transfer"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// RequiresVerification reports whether the payment method settles only after
// an admin reviews the uploaded receipt.
func (m PaymentMethod) RequiresVerification() bool {
	return m == PaymentMethodQRTransfer || m == PaymentMethodBankTransfer
}

// IsValid reports whether the payment method is one the engine accepts.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodQRTransfer, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// LineItem captures a single purchased position with the unit price frozen at
// checkout time. The commission rule is deliberately NOT frozen here: it is
// resolved from the product at posting time.
type LineItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order describes one checkout event registered by a buyer.
type Order struct {
	ID              int64
	BuyerID         int64
	SalespersonID   *int64
	Items           []LineItem
	TotalAmount     decimal.Decimal
	ShippingAddress string
	PaymentMethod   PaymentMethod
	Status          OrderStatus
	ReceiptRef      string
	Source          AttributionSource
	// Checkout metadata consumed by the risk scorer at posting time.
	UserAgent string
	ClickedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attributed reports whether a salesperson earned credit for this order.
func (o *Order) Attributed() bool {
	return o.SalespersonID != nil
}
