package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutResponse describes a payout request in API responses.
type PayoutResponse struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ResolvePayoutRequest carries the admin review decision.
type ResolvePayoutRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note"`
}

// ResolvePayoutBatchRequest approves several pending requests at once.
type ResolvePayoutBatchRequest struct {
	RequestIDs []int64 `json:"request_ids" binding:"required"`
}

// SettlePayoutRequest finalizes a processing payout.
type SettlePayoutRequest struct {
	Paid *bool  `json:"paid" binding:"required"`
	Note string `json:"note"`
}
