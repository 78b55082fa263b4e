package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryResponse describes a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID        int64           `json:"id"`
	Reference string          `json:"reference"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	RiskScore int             `json:"risk_score"`
	Source    string          `json:"source"`
	OrderID   *int64          `json:"order_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ManualEntryRequest posts an admin adjustment, bonus or fee.
type ManualEntryRequest struct {
	SalespersonID int64           `json:"salesperson_id" binding:"required"`
	Kind          string          `json:"kind" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// ReviewEntryRequest resolves a flagged entry.
type ReviewEntryRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}
