package service

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"quote-desk/catalog"
	"quote-desk/domain"
)

// PricingRule turns a selection into premium lines for one product family.
type PricingRule interface {
	Lines(p *domain.ProductSchema, info domain.ApplicantInfo, sel domain.SelectionState) []domain.PremiumLine
}

var pricingRules = map[domain.ProductFamily]PricingRule{
	domain.FamilyMedical:   tierSumRule{},
	domain.SeniorMedical:   tierSumRule{},
	domain.StudentAccident: tierSumRule{},
	domain.MotorCommercial: motorRule{},
	domain.PrivateMotor:    motorRule{},
}

// Price computes the premium breakdown of sel. It never fails: a selection
// with nothing priced yields a zero total flagged Empty.
func Price(p *domain.ProductSchema, info domain.ApplicantInfo, sel domain.SelectionState) domain.PremiumBreakdown {
	rule, ok := pricingRules[p.Family]
	if !ok {
		rule = tierSumRule{}
	}

	var b domain.PremiumBreakdown
	b.Lines = rule.Lines(p, info, sel)
	b.Lines = append(b.Lines, addOnLines(p, sel)...)
	for _, l := range b.Lines {
		b.Total += l.Amount
	}
	b.Empty = len(b.Lines) == 0
	return b
}

type tierSumRule struct{}

func (tierSumRule) Lines(p *domain.ProductSchema, _ domain.ApplicantInfo, sel domain.SelectionState) []domain.PremiumLine {
	var lines []domain.PremiumLine
	for _, cat := range p.Categories {
		ref, ok := sel.Tiers[cat.Name]
		if !ok {
			continue
		}
		lines = append(lines, domain.PremiumLine{
			Category: cat.Name,
			TierID:   ref.TierID,
			Label:    cat.Label + ": " + ref.Name,
			Amount:   ref.Price,
		})
	}
	return lines
}

// motorRule prices value-rated cover types from the vehicle value and
// every other tier at its listed price. The cover type line carries the
// premium when it has one; otherwise the plan below it does.
type motorRule struct{}

func (motorRule) Lines(p *domain.ProductSchema, info domain.ApplicantInfo, sel domain.SelectionState) []domain.PremiumLine {
	if p.Motor == nil {
		return tierSumRule{}.Lines(p, info, sel)
	}

	cover, hasCover := sel.Tiers[domain.CategoryCoverType]
	valueRated := hasCover && contains(p.Motor.ValueRated, cover.TierID)
	value, err := ParseAmount(info[domain.FieldVehicleValue])
	if err != nil {
		value = 0
	}

	var lines []domain.PremiumLine
	for _, cat := range p.Categories {
		ref, ok := sel.Tiers[cat.Name]
		if !ok {
			continue
		}
		amount := ref.Price
		switch {
		case cat.Name == domain.CategoryCoverType && valueRated && !hasPlanCategory(p):
			amount = ComprehensivePremium(value, p.Motor.Brackets, p.Motor.Floor)
		case cat.Name == domain.CategoryPlan && valueRated:
			floor := p.Motor.Floor
			if floor == 0 {
				floor = ref.Price
			}
			amount = ComprehensivePremium(value, p.Motor.Brackets, floor)
		}
		if cat.Name == domain.CategoryCoverType && amount == 0 {
			continue
		}
		lines = append(lines, domain.PremiumLine{
			Category: cat.Name,
			TierID:   ref.TierID,
			Label:    cat.Label + ": " + ref.Name,
			Amount:   amount,
		})
	}
	return lines
}

func hasPlanCategory(p *domain.ProductSchema) bool {
	_, ok := p.Category(domain.CategoryPlan)
	return ok
}

// ComprehensivePremium applies the bracket rate for value and returns at
// least floor.
func ComprehensivePremium(value domain.Money, brackets []domain.ValueBracket, floor domain.Money) domain.Money {
	if value < 0 {
		value = 0
	}
	rate := decimal.Zero
	for _, b := range brackets {
		rate = decimal.RequireFromString(b.Rate)
		if b.UpTo == 0 || value <= b.UpTo {
			break
		}
	}
	premium := catalog.Scale(value, rate)
	if premium < floor {
		return floor
	}
	return premium
}

// addOnLines lists active add-ons in catalog order.
func addOnLines(p *domain.ProductSchema, sel domain.SelectionState) []domain.PremiumLine {
	var lines []domain.PremiumLine
	for _, a := range p.AddOns {
		if !sel.AddOns[a.ID] {
			continue
		}
		lines = append(lines, domain.PremiumLine{
			AddOnID: a.ID,
			Label:   a.Name,
			Amount:  a.Price,
		})
	}
	return lines
}

// SplitInstallments divides total into an upfront share and equal monthly
// payments rounded up to whole units.
func SplitInstallments(total domain.Money, terms domain.InstallmentTerms) domain.InstallmentPlan {
	share := decimal.RequireFromString(terms.UpfrontShare)
	upfront := catalog.Scale(total, share)
	if terms.Months <= 0 {
		return domain.InstallmentPlan{Upfront: total}
	}
	rest := int64(total - upfront)
	months := int64(terms.Months)
	monthly := (rest + months - 1) / months
	return domain.InstallmentPlan{
		Upfront: upfront,
		Monthly: domain.Money(monthly),
		Months:  terms.Months,
	}
}

var errBadAmount = errors.New("not an amount")

// ParseAmount reads free-text money such as "KES 1,200,000" or "1 200 000".
func ParseAmount(raw string) (domain.Money, error) {
	s := strings.TrimSpace(raw)
	for _, prefix := range []string{"KES", "KSh", "Ksh", "kes", "ksh"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	if s == "" {
		return 0, errBadAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0, errBadAmount
	}
	return domain.Money(d.Floor().IntPart()), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
