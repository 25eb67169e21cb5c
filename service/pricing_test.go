package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-desk/catalog"
	"quote-desk/domain"
)

func privateMotorBrackets(t *testing.T) *domain.MotorPricing {
	t.Helper()
	p, err := catalog.Default().Product("private-motor")
	require.NoError(t, err)
	require.NotNil(t, p.Motor)
	return p.Motor
}

func TestComprehensivePremium_Brackets(t *testing.T) {
	m := privateMotorBrackets(t)

	tests := []struct {
		value domain.Money
		want  domain.Money
	}{
		{0, 37500},
		{500000, 37500},
		{625000, 37500},
		{1000000, 60000},
		{1500000, 90000},
		{1500001, 60000},
		{2000000, 80000},
		{2500000, 100000},
		{2500001, 75000},
		{4000000, 120000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComprehensivePremium(tt.value, m.Brackets, m.Floor), "value %d", tt.value)
	}
}

func TestComprehensivePremium_MonotonicWithinBracket(t *testing.T) {
	m := privateMotorBrackets(t)

	bounds := [][2]domain.Money{
		{500000, 1500000},
		{1500001, 2500000},
		{2500001, 6000000},
	}
	for _, b := range bounds {
		prev := ComprehensivePremium(b[0], m.Brackets, m.Floor)
		for v := b[0]; v <= b[1]; v += 12345 {
			got := ComprehensivePremium(v, m.Brackets, m.Floor)
			assert.GreaterOrEqual(t, got, prev, "value %d", v)
			assert.GreaterOrEqual(t, got, m.Floor)
			prev = got
		}
	}
}

func TestPrivateMotorPricing(t *testing.T) {
	tests := []struct {
		name  string
		cover string
		value string
		want  domain.Money
	}{
		{"comprehensive", "comprehensive", "1,000,000", 60000},
		{"comprehensive floor", "comprehensive", "600000", 37500},
		{"unparseable value falls to floor", "comprehensive", "n/a", 37500},
		{"third party fire and theft", "third-party-fire-theft", "1,000,000", 15000},
		{"third party only", "third-party-only", "1,000,000", 7500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(t, "private-motor")
			require.NoError(t, f.SetField(domain.FieldVehicleValue, tt.value))
			require.NoError(t, f.SelectTier(domain.CategoryCoverType, tt.cover))
			assert.Equal(t, tt.want, f.Total())
		})
	}
}

func TestPrivateMotorAddOns(t *testing.T) {
	f := newTestForm(t, "private-motor")
	require.NoError(t, f.SetField(domain.FieldVehicleValue, "KES 2,000,000"))
	require.NoError(t, f.SelectTier(domain.CategoryCoverType, "comprehensive"))

	require.NoError(t, f.ToggleAddOn("loss-of-key"))
	require.NoError(t, f.ToggleAddOn("courtesy-car"))
	b := f.Breakdown()
	assert.Equal(t, domain.Money(80000+2000+3000), b.Total)

	// add-ons follow catalog order
	require.Len(t, b.Lines, 3)
	assert.Equal(t, "courtesy-car", b.Lines[1].AddOnID)
	assert.Equal(t, "loss-of-key", b.Lines[2].AddOnID)

	require.NoError(t, f.ClearTier(domain.CategoryCoverType))
	assert.Equal(t, domain.Money(0), f.Total())
}

func TestMotorCommercialPricing(t *testing.T) {
	tests := []struct {
		name  string
		cover string
		plan  string
		value string
		want  domain.Money
	}{
		{"third party flat", "third-party-only", "easy-bima", "3,000,000", 15000},
		{"comprehensive rated", "comprehensive", "easy-bima", "1,000,000", 60000},
		{"comprehensive plan price floor", "comprehensive", "motor-commercial", "600,000", 52000},
		{"comprehensive top bracket", "comprehensive", "motor-commercial-preferred", "3,000,000", 90000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(t, "motor-commercial")
			require.NoError(t, f.SetField(domain.FieldVehicleValue, tt.value))
			require.NoError(t, f.SelectTier(domain.CategoryCoverType, tt.cover))
			require.NoError(t, f.SelectTier(domain.CategoryPlan, tt.plan))
			assert.Equal(t, tt.want, f.Total())

			b := f.Breakdown()
			require.Len(t, b.Lines, 1)
			assert.Equal(t, domain.CategoryPlan, b.Lines[0].Category)
		})
	}
}

func TestSplitInstallments(t *testing.T) {
	terms := domain.InstallmentTerms{UpfrontShare: "0.2", Months: 12}

	tests := []struct {
		total domain.Money
		want  domain.InstallmentPlan
	}{
		{60000, domain.InstallmentPlan{Upfront: 12000, Monthly: 4000, Months: 12}},
		{60001, domain.InstallmentPlan{Upfront: 12000, Monthly: 4001, Months: 12}},
		{40500, domain.InstallmentPlan{Upfront: 8100, Monthly: 2700, Months: 12}},
		{0, domain.InstallmentPlan{Months: 12}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitInstallments(tt.total, terms), "total %d", tt.total)
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]domain.Money{
		"1200000":         1200000,
		"1,200,000":       1200000,
		" KES 1,200,000 ": 1200000,
		"KSh 750 000":     750000,
		"1_000_000":       1000000,
		"999.99":          999,
	}
	for raw, want := range valid {
		got, err := ParseAmount(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "KES", "abc", "-5", "1.2.3"} {
		_, err := ParseAmount(raw)
		assert.Error(t, err, raw)
	}
}

func TestPresent(t *testing.T) {
	f := newTestForm(t, "seniors-mediplan")

	p := f.Presentation()
	assert.Equal(t, PromptSelectPlan, p.Prompt)
	assert.Empty(t, p.Total)
	assert.Empty(t, p.Lines)

	require.NoError(t, f.SelectTier(domain.CategoryInpatient, "standard"))
	require.NoError(t, f.ToggleAddOn("last-expense"))
	p = f.Presentation()
	assert.Empty(t, p.Prompt)
	assert.Equal(t, "KES 6,553", p.Total)
	assert.Equal(t, []PresentedLine{
		{Label: "Inpatient Coverage: Standard Coverage", Amount: "KES 4,553"},
		{Label: "Last Expense Cover", Amount: "KES 2,000"},
	}, p.Lines)
	assert.Nil(t, p.Installments)
}

func TestPresent_Installments(t *testing.T) {
	f := newTestForm(t, "private-motor")
	require.NoError(t, f.SetField(domain.FieldVehicleValue, "1000000"))
	require.NoError(t, f.SelectTier(domain.CategoryCoverType, "comprehensive"))

	p := f.Presentation()
	require.NotNil(t, p.Installments)
	assert.Equal(t, "KES 12,000", p.Installments.Upfront)
	assert.Equal(t, "KES 4,000", p.Installments.Monthly)
	assert.Equal(t, 12, p.Installments.Months)
}
