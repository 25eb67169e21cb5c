package service

import "quote-desk/domain"

const PromptSelectPlan = "Select a plan to see your premium"

type PresentedLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type PresentedInstallments struct {
	Upfront string `json:"upfront"`
	Monthly string `json:"monthly"`
	Months  int    `json:"months"`
}

// Presentation is the display form of a premium breakdown. Amounts are
// formatted here and nowhere earlier.
type Presentation struct {
	Product      string                 `json:"product"`
	CoverName    string                 `json:"cover_name"`
	Lines        []PresentedLine        `json:"lines,omitempty"`
	Total        string                 `json:"total,omitempty"`
	Prompt       string                 `json:"prompt,omitempty"`
	Installments *PresentedInstallments `json:"installments,omitempty"`
}

// Present formats b for display. An empty breakdown shows the selection
// prompt instead of a zero total.
func Present(p *domain.ProductSchema, b domain.PremiumBreakdown, plan *domain.InstallmentPlan) Presentation {
	out := Presentation{Product: p.Name, CoverName: p.CoverName}
	if b.Empty {
		out.Prompt = PromptSelectPlan
		return out
	}

	cur := p.Currency
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, PresentedLine{Label: l.Label, Amount: cur.Format(l.Amount)})
	}
	out.Total = cur.Format(b.Total)
	if plan != nil {
		out.Installments = &PresentedInstallments{
			Upfront: cur.Format(plan.Upfront),
			Monthly: cur.Format(plan.Monthly),
			Months:  plan.Months,
		}
	}
	return out
}
