package dto

import "github.com/shopspring/decimal"

// BalanceResponse summarizes a salesperson's commission position.
type BalanceResponse struct {
	Available decimal.Decimal `json:"available"`
	Pending   decimal.Decimal `json:"pending"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
}
