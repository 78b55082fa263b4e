package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskFeatures are the transaction features the risk scorer evaluates for a
// candidate commission event. ClickToPurchase is nil when the referral click
// time is unknown.
type RiskFeatures struct {
	Amount          decimal.Decimal
	ClickToPurchase *time.Duration
	UserAgent       string
}
