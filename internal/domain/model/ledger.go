package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryKindCommission EntryKind = "commission"
	EntryKindAdjustment EntryKind = "adjustment"
	EntryKindBonus      EntryKind = "bonus"
	EntryKindFee        EntryKind = "fee"
	EntryKindPayout     EntryKind = "payout"
)

// IsValid reports whether the kind is a known ledger entry kind.
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindCommission, EntryKindAdjustment, EntryKindBonus, EntryKindFee, EntryKindPayout:
		return true
	}
	return false
}

// EntryStatus describes the lifecycle of a ledger entry. Amount, kind and
// owner are immutable once written; status is the only mutable field.
type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusPaid       EntryStatus = "paid"
	EntryStatusFlagged    EntryStatus = "flagged"
	EntryStatusProcessing EntryStatus = "processing"
	EntryStatusRejected   EntryStatus = "rejected"
)

// AttributionSource records how the sale was attributed to a salesperson.
type AttributionSource string

const (
	AttributionLink   AttributionSource = "link"
	AttributionQR     AttributionSource = "qr"
	AttributionManual AttributionSource = "manual"
)

// LedgerEntry is one immutable financial record. Credits carry a positive
// amount, debits (payouts, fees) a negative one. Corrections are modeled as
// new offsetting entries, never as edits.
type LedgerEntry struct {
	ID            int64
	Reference     string
	Kind          EntryKind
	SalespersonID int64
	Amount        decimal.Decimal
	Status        EntryStatus
	RiskScore     int
	Source        AttributionSource
	OrderID       *int64
	LineItemID    *int64
	CreatedAt     time.Time
}

// CommissionReference builds the idempotency reference for the commission
// entry of the idx-th line item (1-based) of an order. The ledger enforces
// uniqueness on references, so a retried posting cannot duplicate entries.
func CommissionReference(orderID int64, idx int) string {
	return fmt.Sprintf("ORD-%d-%d", orderID, idx)
}
