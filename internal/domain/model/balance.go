package model

import "github.com/shopspring/decimal"

// BalanceSummary aggregates a salesperson's ledger position. Available is what
// can be withdrawn right now: settled credits minus non-rejected payout debits
// and minus amounts held by open payout requests. Pending covers commission
// entries still awaiting settlement or review.
type BalanceSummary struct {
	Available decimal.Decimal
	Pending   decimal.Decimal
	Withdrawn decimal.Decimal
}
