package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionType selects how a product pays commission.
type CommissionType string

const (
	CommissionTypePercentage CommissionType = "percentage"
	CommissionTypeFixed      CommissionType = "fixed"
)

// IsValid reports whether the commission type is known.
func (t CommissionType) IsValid() bool {
	return t == CommissionTypePercentage || t == CommissionTypeFixed
}

// CommissionRule is the per-product commission configuration. A zero rate is
// legal and yields zero commission; negative rates are rejected when the
// product is configured.
type CommissionRule struct {
	Type CommissionType
	Rate decimal.Decimal
}

// Product is the catalog view the engine needs: price and commission rule.
// The rule is read at posting time, so it may differ from what was in effect
// at checkout.
type Product struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	Commission CommissionRule
	Active     bool
	CreatedAt  time.Time
}
