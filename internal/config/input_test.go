package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const couplePlanYAML = `
name: Couple
current_year: 2025
inflation_rate: 2.5
investment_growth_rate: 4
self:
  current_age: 60
  lump_sum_savings: 400000
  desired_monthly_income: 2500
  life_expectancy: 85
income_streams:
  - name: State Pension
    start_age: 67
    monthly_amount: 1100
one_time_payments:
  - id: 4
    name: Downsizing
    age: 70
    amount: 150000
partner:
  current_age: 58
  lump_sum_savings: 120000
  desired_monthly_income: 1500
  life_expectancy: 92
  income_streams:
    - name: Work Pension
      start_age: 65
      monthly_amount: 700
`

func TestInputParser_ParseCouple(t *testing.T) {
	plan, err := NewInputParser().Parse([]byte(couplePlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "Couple", plan.Name)
	assert.True(t, plan.InflationRate.Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, plan.Self.LumpSumSavings.Equal(decimal.NewFromInt(400000)))
	require.NotNil(t, plan.Partner)
	assert.Equal(t, 58, plan.Partner.CurrentAge)
	assert.True(t, plan.Partner.DesiredMonthlyIncome.Equal(decimal.NewFromInt(1500)))

	// missing ids are filled with max+1 across both lists
	assert.Equal(t, 1, plan.IncomeStreams[0].ID)
	assert.Equal(t, 2, plan.Partner.IncomeStreams[0].ID)
	assert.Equal(t, 4, plan.OneTimePayments[0].ID)
}

func TestInputParser_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(couplePlanYAML), 0644))

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Couple", plan.Name)

	_, err = NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_ParseInvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("self: [1, 2"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidatePlan_Default(t *testing.T) {
	assert.NoError(t, NewInputParser().ValidatePlan(DefaultPlan()))
}

func TestValidatePlan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Plan)
		field  string
	}{
		{"negative savings", func(p *domain.Plan) { p.Self.LumpSumSavings = decimal.NewFromInt(-1) }, "self.lump_sum_savings"},
		{"life expectancy below age", func(p *domain.Plan) { p.Self.LifeExpectancy = 40 }, "self.life_expectancy"},
		{"negative inflation", func(p *domain.Plan) { p.InflationRate = decimal.NewFromInt(-2) }, "inflation_rate"},
		{"negative growth", func(p *domain.Plan) { p.InvestmentGrowthRate = decimal.NewFromInt(-2) }, "investment_growth_rate"},
		{"negative age", func(p *domain.Plan) { p.Self.CurrentAge = -1 }, "self.current_age"},
		{"missing year", func(p *domain.Plan) { p.CurrentYear = 0 }, "current_year"},
		{"unnamed stream", func(p *domain.Plan) { p.IncomeStreams[0].Name = " " }, "income_streams[0].name"},
		{"negative stream", func(p *domain.Plan) { p.IncomeStreams[0].MonthlyAmount = decimal.NewFromInt(-5) }, "income_streams[0].monthly_amount"},
		{"partner owner without partner", func(p *domain.Plan) { p.OneTimePayments[0].Owner = domain.OwnerPartner }, "one_time_payments[0].owner"},
		{"unknown owner", func(p *domain.Plan) { p.IncomeStreams[0].Owner = "spouse" }, "income_streams[0].owner"},
		{"duplicate stream id", func(p *domain.Plan) {
			p.IncomeStreams = append(p.IncomeStreams, domain.IncomeStream{ID: 1, Name: "Dup"})
		}, "income_streams[1].id"},
		{"partner too old", func(p *domain.Plan) {
			p.Partner = &domain.PartnerPlan{Person: domain.Person{CurrentAge: 70, LifeExpectancy: 60}}
		}, "partner.life_expectancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := DefaultPlan()
			tt.mutate(plan)

			err := NewInputParser().ValidatePlan(plan)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidatePlan_Nil(t *testing.T) {
	assert.Error(t, NewInputParser().ValidatePlan(nil))
}

func TestWritePlan_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	original := DefaultPlan()

	require.NoError(t, WritePlan(path, original))

	loaded, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, original.Name, loaded.Name)
	assert.True(t, original.Self.LumpSumSavings.Equal(loaded.Self.LumpSumSavings))
	assert.True(t, original.InflationRate.Equal(loaded.InflationRate))
	assert.Equal(t, original.IncomeStreams[0].StartAge, loaded.IncomeStreams[0].StartAge)
	assert.Nil(t, loaded.Partner)
}

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()

	assert.Equal(t, 45, p.Self.CurrentAge)
	assert.Equal(t, 2025, p.CurrentYear)
	assert.Equal(t, 90, p.Self.LifeExpectancy)
	assert.Equal(t, "State Pension", p.IncomeStreams[0].Name)
	assert.Equal(t, "House Sale", p.OneTimePayments[0].Name)
	assert.NotSame(t, DefaultPlan(), p)
}
