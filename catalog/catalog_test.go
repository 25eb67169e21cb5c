package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-desk/domain"
)

func TestDefault_ProductOrder(t *testing.T) {
	c := Default()

	var keys []string
	for _, p := range c.Products() {
		keys = append(keys, p.Key)
	}
	want := []string{
		"seniors-mediplan",
		"family-medisure",
		"golfers-sportsman",
		"motor-commercial",
		"student-accident",
		"private-motor",
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("product order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_Shapes(t *testing.T) {
	c := Default()

	senior, err := c.Product("seniors-mediplan")
	require.NoError(t, err)
	assert.Equal(t, domain.SeniorMedical, senior.Family)
	assert.Equal(t, domain.KES, senior.Currency)
	inpatient, ok := senior.Category(domain.CategoryInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PlanTier{
		ID:         "standard",
		Name:       "Standard Coverage",
		Price:      4553,
		CoverLimit: 1000000,
		Benefits:   []string{"Private room", "Specialist consultations", "Advanced procedures"},
	}, inpatient.Tiers[1])

	family, err := c.Product("family-medisure")
	require.NoError(t, err)
	out, ok := family.Category(domain.CategoryOutpatient)
	require.True(t, ok)
	require.NotNil(t, out.Derived)
	assert.Equal(t, domain.CategoryInpatient, out.Requires)
	assert.Empty(t, out.Tiers)

	commercial, err := c.Product("motor-commercial")
	require.NoError(t, err)
	plan, ok := commercial.Category(domain.CategoryPlan)
	require.True(t, ok)
	assert.Len(t, plan.TiersByParent["third-party-only"], 2)
	assert.Len(t, plan.TiersByParent["comprehensive"], 3)
	assert.True(t, plan.TiersByParent["comprehensive"][2].Preferred)

	student, err := c.Product("student-accident")
	require.NoError(t, err)
	assert.Len(t, student.Categories, 1)

	private, err := c.Product("private-motor")
	require.NoError(t, err)
	assert.Len(t, private.AddOns, 10)
	require.NotNil(t, private.Installments)
	assert.Equal(t, 12, private.Installments.Months)
	assert.Equal(t, domain.Money(37500), private.Motor.Floor)
	assert.Equal(t, &domain.VehicleLimits{MaxAgeYears: 15, MinValue: 500000}, private.Vehicle)
}

func TestProduct_Unknown(t *testing.T) {
	_, err := Default().Product("pet-insurance")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty": `products: []`,
		"unknown family": `
products:
  - key: x
    family: pets
    categories: [{name: a, tiers: [{id: t, price: 1}]}]`,
		"requires undeclared": `
products:
  - key: x
    family: senior-medical
    categories:
      - {name: outpatient, requires: inpatient, tiers: [{id: t, price: 1}]}
      - {name: inpatient, tiers: [{id: t, price: 1}]}`,
		"duplicate tier": `
products:
  - key: x
    family: senior-medical
    categories: [{name: a, tiers: [{id: t, price: 1}, {id: t, price: 2}]}]`,
		"bad factor": `
products:
  - key: x
    family: family-medical
    categories:
      - {name: inpatient, tiers: [{id: t, price: 1}]}
      - {name: outpatient, requires: inpatient, derived: {price_factor: abc, cover_factor: "0.5"}}`,
		"motor without brackets": `
products:
  - key: x
    family: private-motor
    categories: [{name: coverType, tiers: [{id: t}]}]`,
		"add-on requires unknown": `
products:
  - key: x
    family: senior-medical
    categories: [{name: a, tiers: [{id: t, price: 1}]}]
    add_ons: [{id: y, price: 1, requires: b}]`,
		"duplicate key": `
products:
  - {key: x, family: student-accident, categories: [{name: plan, tiers: [{id: t, price: 1}]}]}
  - {key: x, family: student-accident, categories: [{name: plan, tiers: [{id: t, price: 1}]}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	doc := `
products:
  - key: cover
    name: Cover
    family: student-accident
    categories: [{name: plan, label: Plan, tiers: [{id: basic, name: Basic, price: 100}]}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	p, err := c.Product("cover")
	require.NoError(t, err)
	assert.Equal(t, domain.KES, p.Currency)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	parent := []domain.PlanTier{
		{ID: "a", Name: "A", Price: 25001, CoverLimit: 300001},
		{ID: "b", Name: "B", Price: 45000, CoverLimit: 500000},
		{ID: "c", Name: "C", Price: 75000, CoverLimit: 1000000},
	}
	rule := domain.DerivedRule{PriceFactor: "0.3", CoverFactor: "0.5", Benefits: []string{"GP consultations"}}

	got := Derive(parent, 1, rule)
	want := []domain.PlanTier{
		{ID: "a", Name: "A", Price: 7500, CoverLimit: 150000, Benefits: []string{"GP consultations"}},
		{ID: "b", Name: "B", Price: 13500, CoverLimit: 250000, Benefits: []string{"GP consultations"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Derive mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, Derive(parent, -1, rule))
	assert.Nil(t, Derive(parent, 3, rule))
}

func TestScale_Floors(t *testing.T) {
	assert.Equal(t, domain.Money(999), Scale(3333, decimal.RequireFromString("0.3")))
	assert.Equal(t, domain.Money(0), Scale(0, decimal.RequireFromString("0.06")))
}
