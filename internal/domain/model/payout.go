package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus tracks a withdrawal claim through admin review.
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusPaid       PayoutStatus = "paid"
	PayoutStatusRejected   PayoutStatus = "rejected"
)

// PayoutRequest is a withdrawal claim by a salesperson against the
// ledger-derived available balance. Once paid or rejected only the note
// may still change.
type PayoutRequest struct {
	ID            int64
	SalespersonID int64
	Amount        decimal.Decimal
	Status        PayoutStatus
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
