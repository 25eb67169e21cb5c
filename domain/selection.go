package domain

// TierRef is a structured tier selection. Price is captured at selection
// time so derived tiers keep the price they were offered at.
type TierRef struct {
	TierID string `json:"tier_id"`
	Name   string `json:"name"`
	Price  Money  `json:"price"`
}

// SelectionState holds at most one tier per category plus add-on toggles.
type SelectionState struct {
	Tiers  map[string]TierRef `json:"tiers"`
	AddOns map[string]bool    `json:"add_ons"`
}

// NewSelectionState returns an empty selection.
func NewSelectionState() SelectionState {
	return SelectionState{
		Tiers:  map[string]TierRef{},
		AddOns: map[string]bool{},
	}
}

// Empty reports whether no tier is selected.
func (s SelectionState) Empty() bool {
	return len(s.Tiers) == 0
}

// Clone returns a deep copy of s.
func (s SelectionState) Clone() SelectionState {
	c := NewSelectionState()
	for k, v := range s.Tiers {
		c.Tiers[k] = v
	}
	for k, v := range s.AddOns {
		if v {
			c.AddOns[k] = true
		}
	}
	return c
}

// ActiveAddOns returns the ids of add-ons currently switched on.
func (s SelectionState) ActiveAddOns() []string {
	var ids []string
	for id, on := range s.AddOns {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

// PremiumLine is one priced row of a quote.
type PremiumLine struct {
	Category string `json:"category"`
	TierID   string `json:"tier_id,omitempty"`
	AddOnID  string `json:"add_on_id,omitempty"`
	Label    string `json:"label"`
	Amount   Money  `json:"amount"`
}

// PremiumBreakdown is the derived premium of a selection.
type PremiumBreakdown struct {
	Lines []PremiumLine `json:"lines"`
	Total Money         `json:"total"`
	Empty bool          `json:"empty"`
}

// InstallmentPlan splits a total into an upfront payment and equal
// monthly installments.
type InstallmentPlan struct {
	Upfront Money `json:"upfront"`
	Monthly Money `json:"monthly"`
	Months  int   `json:"months"`
}
