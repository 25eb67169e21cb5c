package catalog

import (
	"github.com/shopspring/decimal"

	"quote-desk/domain"
)

// Derive builds the dependent tiers offered for a parent selection: the
// parent tiers up to and including selected, each scaled by the rule's
// factors and floored to whole units. A negative selected index yields no
// tiers.
func Derive(parent []domain.PlanTier, selected int, rule domain.DerivedRule) []domain.PlanTier {
	if selected < 0 || selected >= len(parent) {
		return nil
	}

	priceFactor := decimal.RequireFromString(rule.PriceFactor)
	coverFactor := decimal.RequireFromString(rule.CoverFactor)

	out := make([]domain.PlanTier, 0, selected+1)
	for _, base := range parent[:selected+1] {
		out = append(out, domain.PlanTier{
			ID:         base.ID,
			Name:       base.Name,
			Price:      Scale(base.Price, priceFactor),
			CoverLimit: Scale(base.CoverLimit, coverFactor),
			Benefits:   append([]string(nil), rule.Benefits...),
		})
	}
	return out
}

// Scale returns floor(m × factor).
func Scale(m domain.Money, factor decimal.Decimal) domain.Money {
	return domain.Money(decimal.NewFromInt(int64(m)).Mul(factor).Floor().IntPart())
}
