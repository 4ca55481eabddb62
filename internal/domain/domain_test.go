package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samplePlan() *Plan {
	return &Plan{
		Name:                 "Sample",
		CurrentYear:          2025,
		InflationRate:        decimal.NewFromFloat(3.0),
		InvestmentGrowthRate: decimal.NewFromFloat(5.0),
		Self: Person{
			CurrentAge:           45,
			LumpSumSavings:       decimal.NewFromInt(500000),
			DesiredMonthlyIncome: decimal.NewFromInt(3500),
			LifeExpectancy:       90,
		},
		IncomeStreams: []IncomeStream{
			{ID: 1, Name: "State Pension", StartAge: 67, MonthlyAmount: decimal.NewFromInt(1200)},
		},
		OneTimePayments: []OneTimePayment{
			{ID: 1, Name: "House Sale", Age: 70, Amount: decimal.NewFromInt(200000)},
		},
	}
}

func TestPlan_DeepCopy(t *testing.T) {
	original := samplePlan()
	original.Partner = &PartnerPlan{
		Person: Person{CurrentAge: 43, LifeExpectancy: 92},
		IncomeStreams: []IncomeStream{
			{ID: 2, Name: "Work Pension", Owner: OwnerPartner, StartAge: 65, MonthlyAmount: decimal.NewFromInt(800)},
		},
	}

	copied := original.DeepCopy()

	assert.NotSame(t, original, copied)
	assert.NotSame(t, original.Partner, copied.Partner)
	assert.Equal(t, original.Name, copied.Name)

	copied.IncomeStreams[0].MonthlyAmount = decimal.NewFromInt(1)
	copied.Partner.IncomeStreams[0].Name = "changed"
	copied.OneTimePayments = append(copied.OneTimePayments, OneTimePayment{ID: 9})

	assert.True(t, original.IncomeStreams[0].MonthlyAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Work Pension", original.Partner.IncomeStreams[0].Name)
	assert.Len(t, original.OneTimePayments, 1)
}

func TestPlan_DeepCopyNil(t *testing.T) {
	var p *Plan
	assert.Nil(t, p.DeepCopy())
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"empty", nil, 1},
		{"single", []int{1}, 2},
		{"gaps", []int{3, 1, 7}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.ids))
		})
	}
}

func TestPlan_AddIncomeStreamDefaults(t *testing.T) {
	p := samplePlan()

	s := p.AddIncomeStream("Annuity", OwnerSelf)

	assert.Equal(t, 2, s.ID)
	assert.Equal(t, DefaultStreamStartAge, s.StartAge)
	assert.True(t, s.MonthlyAmount.IsZero())
	assert.Len(t, p.IncomeStreams, 2)
}

func TestPlan_IDsNotReusedAfterRemoval(t *testing.T) {
	p := samplePlan()
	second := p.AddIncomeStream("Second", OwnerSelf)
	require.Equal(t, 2, second.ID)

	require.True(t, p.RemoveIncomeStream(second.ID))
	third := p.AddIncomeStream("Third", OwnerSelf)
	assert.Equal(t, 3, third.ID)

	pay := p.AddOneTimePayment("Inheritance", OwnerSelf)
	require.Equal(t, 2, pay.ID)
	assert.Equal(t, DefaultPaymentAge, pay.Age)
	require.True(t, p.RemoveOneTimePayment(pay.ID))
	assert.Equal(t, 3, p.AddOneTimePayment("Gift", OwnerSelf).ID)
}

func TestPlan_IDsSharedWithPartnerList(t *testing.T) {
	p := samplePlan()
	p.Partner = &PartnerPlan{Person: Person{CurrentAge: 40, LifeExpectancy: 88}}

	s := p.AddIncomeStream("Partner Pension", OwnerPartner)

	assert.Equal(t, 2, s.ID)
	assert.Len(t, p.Partner.IncomeStreams, 1)
	assert.Len(t, p.AllIncomeStreams(), 2)
	assert.True(t, p.RemoveIncomeStream(2))
	assert.Empty(t, p.Partner.IncomeStreams)
}

func TestPlan_AddPartnerStreamWithoutPartnerFallsBackToSelf(t *testing.T) {
	p := samplePlan()

	s := p.AddIncomeStream("Orphan", OwnerPartner)

	assert.Equal(t, OwnerSelf, s.Owner)
	assert.Len(t, p.IncomeStreams, 2)
}

func TestPlan_RemoveUnknownID(t *testing.T) {
	p := samplePlan()
	assert.False(t, p.RemoveIncomeStream(42))
	assert.False(t, p.RemoveOneTimePayment(42))
}

func TestOwner(t *testing.T) {
	assert.False(t, Owner("").IsPartner())
	assert.Equal(t, "self", Owner("").String())
	assert.True(t, OwnerPartner.IsPartner())
	assert.True(t, Owner("").Valid())
	assert.False(t, Owner("spouse").Valid())
}

func TestOwner_TextMarshalling(t *testing.T) {
	var stream IncomeStream
	require.NoError(t, yaml.Unmarshal([]byte("name: Pension\nowner: Partner\n"), &stream))
	assert.Equal(t, OwnerPartner, stream.Owner)

	require.NoError(t, yaml.Unmarshal([]byte(`owner: ""`), &stream))
	assert.Equal(t, OwnerSelf, stream.Owner)

	err := yaml.Unmarshal([]byte("owner: spouse\n"), &stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown owner")

	var payment OneTimePayment
	require.NoError(t, json.Unmarshal([]byte(`{"owner":""}`), &payment))
	assert.Equal(t, OwnerSelf, payment.Owner)
	require.NoError(t, json.Unmarshal([]byte(`{"owner":"partner"}`), &payment))
	assert.Equal(t, OwnerPartner, payment.Owner)
	assert.Error(t, json.Unmarshal([]byte(`{"owner":"child"}`), &payment))

	text, err := Owner("").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "self", string(text))
}

func TestScenarioResult_Interpretation(t *testing.T) {
	age := 80
	year := 2060
	depleted := &ScenarioResult{
		YearlyData:       []YearRecord{{Age: 45}, {Age: 80, EndingSavings: decimal.NewFromInt(-500)}},
		MoneyRunsOutAge:  &age,
		MoneyRunsOutYear: &year,
		LifeExpectancy:   90,
	}
	assert.True(t, depleted.Depleted())
	assert.False(t, depleted.IsSuccessful())
	assert.Equal(t, 10, depleted.YearsShort())
	assert.Equal(t, 35, depleted.RunwayYears())
	assert.True(t, depleted.LastRecord().ClampedEndingSavings().IsZero())

	survived := &ScenarioResult{YearlyData: []YearRecord{{Age: 45}}, LifeExpectancy: 90}
	assert.True(t, survived.IsSuccessful())
	assert.Equal(t, 0, survived.YearsShort())
	assert.Equal(t, 45, survived.RunwayYears())

	empty := &ScenarioResult{LifeExpectancy: 90}
	assert.Equal(t, 0, empty.RunwayYears())
	assert.Nil(t, empty.LastRecord())
}

func TestScenarioInput_Horizon(t *testing.T) {
	in := ScenarioInput{CurrentAge: 60, LifeExpectancy: 85, CombinedLifeExpectancy: 93}
	assert.Equal(t, 93, in.Horizon())
}

func TestScenarioInput_PartnerAgeAt(t *testing.T) {
	in := ScenarioInput{CurrentAge: 60, HasPartner: true, Partner: &Person{CurrentAge: 57}}
	got, ok := in.PartnerAgeAt(65)
	assert.True(t, ok)
	assert.Equal(t, 62, got)

	_, ok = ScenarioInput{CurrentAge: 60}.PartnerAgeAt(65)
	assert.False(t, ok)
}

func TestSensitivitySummary_RiskLevel(t *testing.T) {
	tests := []struct {
		depleted, total int
		want            string
	}{
		{0, 5, RiskLow},
		{1, 5, RiskMedium},
		{2, 5, RiskHigh},
		{4, 5, RiskCritical},
		{0, 0, RiskLow},
	}
	for _, tt := range tests {
		ss := SensitivitySummary{DepletedPoints: tt.depleted, TotalPoints: tt.total}
		assert.Equal(t, tt.want, ss.DetermineRiskLevel())
	}
}

func TestSensitivitySummary_Recommendations(t *testing.T) {
	ss := SensitivitySummary{DepletedPoints: 4, TotalPoints: 5, MostSensitiveParameter: ParamGrowthRate}
	recs := ss.GenerateRecommendations()
	assert.Contains(t, recs, "Review asset allocation and expected returns")
	assert.Len(t, recs, 3)
}

func TestGetParameterByName(t *testing.T) {
	p, ok := GetParameterByName(ParamLumpSum)
	require.True(t, ok)
	assert.Equal(t, "currency", p.Unit)

	_, ok = GetParameterByName("nope")
	assert.False(t, ok)
}
