package domain

// ProductFamily tags the shape of a product and selects its pricing rule.
type ProductFamily string

const (
	FamilyMedical   ProductFamily = "family-medical"
	SeniorMedical   ProductFamily = "senior-medical"
	MotorCommercial ProductFamily = "motor-commercial"
	PrivateMotor    ProductFamily = "private-motor"
	StudentAccident ProductFamily = "student-accident"
)

// Category names used by the catalog.
const (
	CategoryInpatient  = "inpatient"
	CategoryOutpatient = "outpatient"
	CategoryDental     = "dental"
	CategoryOptical    = "optical"
	CategoryCoverType  = "coverType"
	CategoryPlan       = "plan"
)

// PlanTier is a named, priced coverage option within a category.
type PlanTier struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Price      Money    `yaml:"price" json:"price"`
	CoverLimit Money    `yaml:"cover_limit,omitempty" json:"cover_limit,omitempty"`
	Benefits   []string `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	Preferred  bool     `yaml:"preferred,omitempty" json:"preferred,omitempty"`
}

// DerivedRule builds a category's tiers from the tiers of its parent
// category, up to and including the selected parent tier.
type DerivedRule struct {
	PriceFactor string   `yaml:"price_factor" json:"price_factor"`
	CoverFactor string   `yaml:"cover_factor" json:"cover_factor"`
	Benefits    []string `yaml:"benefits" json:"benefits"`
}

// CategorySpec is one coverage dimension of a product.
//
// Exactly one of Tiers, Derived or TiersByParent describes the options.
// Requires names the parent category that must be selected first.
type CategorySpec struct {
	Name          string                `yaml:"name" json:"name"`
	Label         string                `yaml:"label" json:"label"`
	Requires      string                `yaml:"requires,omitempty" json:"requires,omitempty"`
	Tiers         []PlanTier            `yaml:"tiers,omitempty" json:"tiers,omitempty"`
	Derived       *DerivedRule          `yaml:"derived,omitempty" json:"derived,omitempty"`
	TiersByParent map[string][]PlanTier `yaml:"tiers_by_parent,omitempty" json:"tiers_by_parent,omitempty"`
}

// AddOn is an independently togglable, flat-priced supplementary benefit.
type AddOn struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Limit    string `yaml:"limit,omitempty" json:"limit,omitempty"`
	Price    Money  `yaml:"price" json:"price"`
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// FieldSpec describes one applicant form field.
type FieldSpec struct {
	Name     string `yaml:"name" json:"name"`
	Label    string `yaml:"label" json:"label"`
	Required bool   `yaml:"required" json:"required"`
	Default  string `yaml:"default,omitempty" json:"default,omitempty"`
}

// ValueBracket applies Rate to vehicle values up to UpTo. A zero UpTo
// matches every value above the previous bracket.
type ValueBracket struct {
	UpTo Money  `yaml:"up_to" json:"up_to"`
	Rate string `yaml:"rate" json:"rate"`
}

// MotorPricing holds the value-bracket parameters of motor products.
type MotorPricing struct {
	// ValueRated lists the cover types priced from the vehicle value.
	ValueRated []string       `yaml:"value_rated" json:"value_rated"`
	Brackets   []ValueBracket `yaml:"brackets" json:"brackets"`
	// Floor is the minimum value-rated premium. Zero means the selected
	// tier's listed price is the floor.
	Floor Money `yaml:"floor,omitempty" json:"floor,omitempty"`
}

// VehicleLimits blocks progression for vehicles outside the insurable range.
type VehicleLimits struct {
	MaxAgeYears int   `yaml:"max_age_years" json:"max_age_years"`
	MinValue    Money `yaml:"min_value" json:"min_value"`
}

// InstallmentTerms splits a premium into an upfront payment and monthly
// installments.
type InstallmentTerms struct {
	UpfrontShare string `yaml:"upfront_share" json:"upfront_share"`
	Months       int    `yaml:"months" json:"months"`
}

// ProductSchema is the immutable description of one insurance product.
type ProductSchema struct {
	Key          string            `yaml:"key" json:"key"`
	Name         string            `yaml:"name" json:"name"`
	CoverName    string            `yaml:"cover_name" json:"cover_name"`
	Description  string            `yaml:"description" json:"description"`
	Family       ProductFamily     `yaml:"family" json:"family"`
	Currency     Currency          `yaml:"currency" json:"currency"`
	Fields       []FieldSpec       `yaml:"fields" json:"fields"`
	Categories   []CategorySpec    `yaml:"categories" json:"categories"`
	AddOns       []AddOn           `yaml:"add_ons,omitempty" json:"add_ons,omitempty"`
	Motor        *MotorPricing     `yaml:"motor,omitempty" json:"motor,omitempty"`
	Vehicle      *VehicleLimits    `yaml:"vehicle,omitempty" json:"vehicle,omitempty"`
	Installments *InstallmentTerms `yaml:"installments,omitempty" json:"installments,omitempty"`
}

// Category returns the category spec with the given name.
func (p *ProductSchema) Category(name string) (*CategorySpec, bool) {
	for i := range p.Categories {
		if p.Categories[i].Name == name {
			return &p.Categories[i], true
		}
	}
	return nil, false
}

// AddOn returns the add-on with the given id.
func (p *ProductSchema) AddOn(id string) (*AddOn, bool) {
	for i := range p.AddOns {
		if p.AddOns[i].ID == id {
			return &p.AddOns[i], true
		}
	}
	return nil, false
}

// Field returns the field spec with the given name.
func (p *ProductSchema) Field(name string) (*FieldSpec, bool) {
	for i := range p.Fields {
		if p.Fields[i].Name == name {
			return &p.Fields[i], true
		}
	}
	return nil, false
}

// ProductSummary is the list view of a product.
type ProductSummary struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Family      ProductFamily `json:"family"`
}

// Summary returns the list view of p.
func (p *ProductSchema) Summary() ProductSummary {
	return ProductSummary{
		Key:         p.Key,
		Name:        p.Name,
		Description: p.Description,
		Family:      p.Family,
	}
}
