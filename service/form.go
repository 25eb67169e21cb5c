package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"quote-desk/catalog"
	"quote-desk/domain"
)

type Stage int

const (
	StageDetails Stage = iota
	StageQuote
)

// QuoteSubmitter receives configured quotes.
type QuoteSubmitter interface {
	Submit(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteRecord, error)
}

// Form is one quote-form session for a single product: the applicant
// details, the tier and add-on selection, and the derived premium.
//
// A Form is owned by one caller and is not safe for concurrent use.
type Form struct {
	product   *domain.ProductSchema
	applicant domain.ApplicantInfo
	selection domain.SelectionState
	stage     Stage
}

func NewForm(product *domain.ProductSchema) *Form {
	f := &Form{product: product}
	f.Reset()
	return f
}

func (f *Form) Product() *domain.ProductSchema { return f.product }

func (f *Form) Stage() Stage { return f.stage }

// Reset discards every entered value and selection, as closing the form does.
func (f *Form) Reset() {
	f.applicant = domain.ApplicantInfo{}
	for _, fs := range f.product.Fields {
		if fs.Default != "" {
			f.applicant[fs.Name] = fs.Default
		}
	}
	f.selection = domain.NewSelectionState()
	f.stage = StageDetails
}

// SetField stores the raw value of a product field. Nothing is validated
// until Proceed.
func (f *Form) SetField(name, value string) error {
	if _, ok := f.product.Field(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.applicant[name] = value
	return nil
}

func (f *Form) Applicant() domain.ApplicantInfo { return f.applicant.Clone() }

func (f *Form) Selection() domain.SelectionState { return f.selection.Clone() }

// Validate checks the applicant details the way a progression attempt does.
func (f *Form) Validate(now time.Time) []domain.ValidationMessage {
	var msgs []domain.ValidationMessage

	for _, fs := range f.product.Fields {
		if !fs.Required {
			continue
		}
		if strings.TrimSpace(f.applicant[fs.Name]) == "" {
			msgs = append(msgs, domain.ValidationMessage{
				Level:   domain.LevelCritical,
				Code:    "REQUIRED_FIELD_MISSING",
				Field:   fs.Name,
				Message: fmt.Sprintf("%s is required", fs.Label),
			})
		}
	}
	if len(msgs) > 0 {
		return msgs
	}

	if f.product.Vehicle != nil {
		msgs = append(msgs, f.validateVehicle(now)...)
	}
	return msgs
}

func (f *Form) validateVehicle(now time.Time) []domain.ValidationMessage {
	var msgs []domain.ValidationMessage
	limits := f.product.Vehicle

	if raw, ok := f.applicant[domain.FieldYearOfManufacture]; ok {
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil || year <= 0 || year > now.Year()+1:
			msgs = append(msgs, domain.ValidationMessage{
				Level:   domain.LevelCritical,
				Code:    "INVALID_VEHICLE_YEAR",
				Field:   domain.FieldYearOfManufacture,
				Message: fmt.Sprintf("Year of manufacture %q is not a valid year", raw),
			})
		case limits.MaxAgeYears > 0 && now.Year()-year > limits.MaxAgeYears:
			msgs = append(msgs, domain.ValidationMessage{
				Level:   domain.LevelCritical,
				Code:    "VEHICLE_TOO_OLD",
				Field:   domain.FieldYearOfManufacture,
				Message: fmt.Sprintf("Vehicle must be under %d years old for comprehensive coverage.", limits.MaxAgeYears),
			})
		}
	}

	if raw, ok := f.applicant[domain.FieldVehicleValue]; ok {
		value, err := ParseAmount(raw)
		switch {
		case err != nil:
			msgs = append(msgs, domain.ValidationMessage{
				Level:   domain.LevelCritical,
				Code:    "INVALID_VEHICLE_VALUE",
				Field:   domain.FieldVehicleValue,
				Message: fmt.Sprintf("Vehicle value %q is not a valid amount", raw),
			})
		case value < limits.MinValue:
			msgs = append(msgs, domain.ValidationMessage{
				Level:   domain.LevelCritical,
				Code:    "VEHICLE_VALUE_TOO_LOW",
				Field:   domain.FieldVehicleValue,
				Message: fmt.Sprintf("Minimum insured value is %s for comprehensive coverage.", f.product.Currency.Format(limits.MinValue)),
			})
		}
	}
	return msgs
}

// Proceed validates the details and, when nothing blocks, moves the form
// to the quote-selection stage.
func (f *Form) Proceed(now time.Time) ([]domain.ValidationMessage, bool) {
	msgs := f.Validate(now)
	if domain.Blocking(msgs) {
		return msgs, false
	}
	f.stage = StageQuote
	return msgs, true
}

// Back returns to the details stage keeping all state.
func (f *Form) Back() { f.stage = StageDetails }

// AvailableTiers returns the tiers currently selectable in category. A
// derived category is recomputed from the current parent selection.
func (f *Form) AvailableTiers(category string) ([]domain.PlanTier, error) {
	cat, ok := f.product.Category(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return f.tiersOf(cat), nil
}

func (f *Form) tiersOf(cat *domain.CategorySpec) []domain.PlanTier {
	switch {
	case cat.Derived != nil:
		parent, _ := f.product.Category(cat.Requires)
		ref, ok := f.selection.Tiers[cat.Requires]
		if !ok {
			return nil
		}
		base := f.tiersOf(parent)
		return catalog.Derive(base, indexOf(base, ref.TierID), *cat.Derived)
	case cat.TiersByParent != nil:
		ref, ok := f.selection.Tiers[cat.Requires]
		if !ok {
			return nil
		}
		return cat.TiersByParent[ref.TierID]
	default:
		return cat.Tiers
	}
}

// SelectTier sets the single selection of category. Selecting the tier
// that is already selected changes nothing.
func (f *Form) SelectTier(category, tierID string) error {
	cat, ok := f.product.Category(category)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if cat.Requires != "" {
		if _, ok := f.selection.Tiers[cat.Requires]; !ok {
			return fmt.Errorf("%w: %s requires %s", ErrParentNotSelected, category, cat.Requires)
		}
	}

	tiers := f.tiersOf(cat)
	i := indexOf(tiers, tierID)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", ErrUnknownTier, category, tierID)
	}
	if cur, ok := f.selection.Tiers[category]; ok && cur.TierID == tierID {
		return nil
	}

	t := tiers[i]
	f.selection.Tiers[category] = domain.TierRef{TierID: t.ID, Name: t.Name, Price: t.Price}
	f.reconcile(category)
	return nil
}

// ClearTier removes the selection of category together with everything
// that depends on it.
func (f *Form) ClearTier(category string) error {
	if _, ok := f.product.Category(category); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	delete(f.selection.Tiers, category)
	f.reconcile(category)
	return nil
}

// reconcile drops dependent selections that are no longer offered after
// parent changed. Derived selections survive while still in range; plan
// lists keyed by the parent tier are always cleared; static dependents
// survive unless the parent was cleared.
func (f *Form) reconcile(parent string) {
	_, parentSelected := f.selection.Tiers[parent]

	for i := range f.product.Categories {
		cat := &f.product.Categories[i]
		if cat.Requires != parent {
			continue
		}
		ref, ok := f.selection.Tiers[cat.Name]
		if !ok {
			continue
		}

		keep := parentSelected
		switch {
		case !parentSelected:
		case cat.Derived != nil:
			tiers := f.tiersOf(cat)
			if j := indexOf(tiers, ref.TierID); j >= 0 {
				f.selection.Tiers[cat.Name] = domain.TierRef{TierID: ref.TierID, Name: tiers[j].Name, Price: tiers[j].Price}
			} else {
				keep = false
			}
		case cat.TiersByParent != nil:
			keep = false
		}

		if !keep {
			delete(f.selection.Tiers, cat.Name)
			f.reconcile(cat.Name)
		}
	}

	if !parentSelected {
		for _, a := range f.product.AddOns {
			if a.Requires == parent {
				delete(f.selection.AddOns, a.ID)
			}
		}
	}
}

// ToggleAddOn flips an add-on. Switching one on requires the category it
// attaches to to be selected.
func (f *Form) ToggleAddOn(id string) error {
	a, ok := f.product.AddOn(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAddOn, id)
	}
	if f.selection.AddOns[id] {
		delete(f.selection.AddOns, id)
		return nil
	}
	if a.Requires != "" {
		if _, ok := f.selection.Tiers[a.Requires]; !ok {
			return fmt.Errorf("%w: %s requires %s", ErrParentNotSelected, id, a.Requires)
		}
	}
	f.selection.AddOns[id] = true
	return nil
}

// Breakdown prices the current selection.
func (f *Form) Breakdown() domain.PremiumBreakdown {
	return Price(f.product, f.applicant, f.selection)
}

// Total is the premium of the current selection; 0 when nothing is selected.
func (f *Form) Total() domain.Money {
	return f.Breakdown().Total
}

// Installments splits the total when the product sells in installments.
func (f *Form) Installments() (domain.InstallmentPlan, bool) {
	if f.product.Installments == nil {
		return domain.InstallmentPlan{}, false
	}
	b := f.Breakdown()
	if b.Empty {
		return domain.InstallmentPlan{}, false
	}
	return SplitInstallments(b.Total, *f.product.Installments), true
}

// Presentation renders the current premium summary.
func (f *Form) Presentation() Presentation {
	b := f.Breakdown()
	plan, ok := f.Installments()
	if !ok {
		return Present(f.product, b, nil)
	}
	return Present(f.product, b, &plan)
}

// Submission builds the hand-off record for the quote list.
func (f *Form) Submission(now time.Time) (domain.QuoteSubmission, error) {
	if f.stage != StageQuote {
		return domain.QuoteSubmission{}, ErrNotReady
	}
	b := f.Breakdown()
	if b.Empty {
		return domain.QuoteSubmission{}, ErrEmptySelection
	}
	return domain.QuoteSubmission{
		SubmissionID: uuid.NewString(),
		ProductKey:   f.product.Key,
		ProductName:  f.product.Name,
		Applicant:    f.applicant.Clone(),
		Selection:    f.selection.Clone(),
		TotalPremium: b.Total,
		Timestamp:    now.UTC(),
	}, nil
}

// Submit hands the quote to s and discards the form state on success.
func (f *Form) Submit(ctx context.Context, s QuoteSubmitter, now time.Time) (domain.QuoteRecord, error) {
	sub, err := f.Submission(now)
	if err != nil {
		return domain.QuoteRecord{}, err
	}
	rec, err := s.Submit(ctx, sub)
	if err != nil {
		return domain.QuoteRecord{}, err
	}
	f.Reset()
	return rec, nil
}

func indexOf(tiers []domain.PlanTier, id string) int {
	for i, t := range tiers {
		if t.ID == id {
			return i
		}
	}
	return -1
}
