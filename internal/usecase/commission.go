package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// CalculateCommission derives the monetary commission for one line item from
// the product's commission rule. Percentage rules pay rate percent of the line
// subtotal, fixed rules pay rate per unit. The result is rounded half-up to
// the currency's two minor digits. A zero rate yields zero commission;
// negative rates are rejected when the product is configured, not here.
func CalculateCommission(rule model.CommissionRule, item model.LineItem) (decimal.Decimal, error) {
	qty := decimal.NewFromInt(int64(item.Quantity))

	switch rule.Type {
	case model.CommissionTypePercentage:
		return item.UnitPrice.Mul(qty).Mul(rule.Rate).Div(hundred).Round(2), nil
	case model.CommissionTypeFixed:
		return rule.Rate.Mul(qty).Round(2), nil
	default:
		return decimal.Zero, domainErrors.ErrInvalidCommissionRule
	}
}
