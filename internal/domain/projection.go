package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearRecord is the ledger entry of one simulated year
type YearRecord struct {
	Age             int             `json:"age"`
	PartnerAge      *int            `json:"partnerAge"`
	Year            int             `json:"year"`
	StartingSavings decimal.Decimal `json:"startingSavings"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	DesiredIncome   decimal.Decimal `json:"desiredIncome"` // inflation adjusted
	NetExpense      decimal.Decimal `json:"netExpense"`
	OneTimePayment  decimal.Decimal `json:"oneTimePayment"`
	GrowthAmount    decimal.Decimal `json:"growthAmount"`
	EndingSavings   decimal.Decimal `json:"endingSavings"`
	InflationFactor decimal.Decimal `json:"inflationFactor"`
	MainPersonAlive bool            `json:"mainPersonAlive"`
	PartnerAlive    bool            `json:"partnerAlive"`
}

// ClampedEndingSavings returns the ending balance floored at zero for display
func (r YearRecord) ClampedEndingSavings() decimal.Decimal {
	if r.EndingSavings.IsNegative() {
		return decimal.Zero
	}
	return r.EndingSavings
}

// Summary aggregates a projection run
type Summary struct {
	InitialSavings       decimal.Decimal `json:"initialSavings"`
	TotalIncomeReceived  decimal.Decimal `json:"totalIncomeReceived"`
	TotalOneTimePayments decimal.Decimal `json:"totalOneTimePayments"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	TotalGrowth          decimal.Decimal `json:"totalGrowth"`
	FinalBalance         decimal.Decimal `json:"finalBalance"`
	TotalYears           int             `json:"totalYears"`
	AverageAnnualExpense decimal.Decimal `json:"averageAnnualExpense"`
	AverageAnnualIncome  decimal.Decimal `json:"averageAnnualIncome"`
	NetCashFlow          decimal.Decimal `json:"netCashFlow"`
}

// ScenarioResult is the outcome of one projection run
type ScenarioResult struct {
	YearlyData       []YearRecord    `json:"yearlyData"`
	MoneyRunsOutAge  *int            `json:"moneyRunsOutAge"`
	MoneyRunsOutYear *int            `json:"moneyRunsOutYear"`
	LifeExpectancy   int             `json:"lifeExpectancy"`
	FinalSavings     decimal.Decimal `json:"finalSavings"` // may be negative
	Summary          Summary         `json:"summary"`
}

// Depleted reports whether savings reached zero within the horizon
func (r *ScenarioResult) Depleted() bool {
	return r.MoneyRunsOutAge != nil
}

// IsSuccessful reports whether savings last through life expectancy
func (r *ScenarioResult) IsSuccessful() bool {
	return r.MoneyRunsOutAge == nil || *r.MoneyRunsOutAge > r.LifeExpectancy
}

// YearsShort returns how many years before life expectancy the money runs out
func (r *ScenarioResult) YearsShort() int {
	if r.MoneyRunsOutAge == nil {
		return 0
	}
	return r.LifeExpectancy - *r.MoneyRunsOutAge
}

// RunwayYears returns the number of years savings last, counted from the
// first simulated age. When savings never run out it is the distance to
// life expectancy.
func (r *ScenarioResult) RunwayYears() int {
	if len(r.YearlyData) == 0 {
		return 0
	}
	first := r.YearlyData[0].Age
	if r.MoneyRunsOutAge != nil {
		return *r.MoneyRunsOutAge - first
	}
	return r.LifeExpectancy - first
}

// LastRecord returns the final ledger entry, or nil for an empty run
func (r *ScenarioResult) LastRecord() *YearRecord {
	if len(r.YearlyData) == 0 {
		return nil
	}
	return &r.YearlyData[len(r.YearlyData)-1]
}

// Analysis bundles a plan with its assembled input and projection result
type Analysis struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Plan        *Plan           `json:"plan"`
	Input       ScenarioInput   `json:"input"`
	Result      *ScenarioResult `json:"result"`
}
