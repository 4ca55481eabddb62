package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioInput is the fully assembled input of a single projection run.
// Partner savings and streams are already merged into the shared pools.
type ScenarioInput struct {
	CurrentAge           int             `json:"currentAge"`
	CurrentYear          int             `json:"currentYear"`
	LifeExpectancy       int             `json:"lifeExpectancy"`
	DesiredMonthlyIncome decimal.Decimal `json:"desiredMonthlyIncome"`
	InflationRate        decimal.Decimal `json:"inflationRatePct"`
	InvestmentGrowthRate decimal.Decimal `json:"investmentGrowthRatePct"`

	CombinedLumpSum        decimal.Decimal `json:"combinedLumpSum"`
	CombinedDesiredIncome  decimal.Decimal `json:"combinedDesiredIncome"` // monthly, today's money
	CombinedLifeExpectancy int             `json:"combinedLifeExpectancy"`

	HasPartner bool    `json:"hasPartner"`
	Partner    *Person `json:"partner,omitempty"`

	IncomeStreams   []IncomeStream   `json:"incomeStreams"`
	OneTimePayments []OneTimePayment `json:"oneTimePayments"`
}

// Horizon returns the last simulated age of the primary person
func (in ScenarioInput) Horizon() int {
	return in.CombinedLifeExpectancy
}

// PartnerAgeAt returns the partner's age in the year the primary person is age.
// ok is false when there is no partner.
func (in ScenarioInput) PartnerAgeAt(age int) (partnerAge int, ok bool) {
	if !in.HasPartner || in.Partner == nil {
		return 0, false
	}
	return in.Partner.CurrentAge + (age - in.CurrentAge), true
}
