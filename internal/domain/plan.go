package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Owner identifies whose age track an income stream or payment follows
type Owner string

const (
	OwnerSelf    Owner = "self"
	OwnerPartner Owner = "partner"
)

// IsPartner reports whether the owner is the partner. An empty owner means self.
func (o Owner) IsPartner() bool {
	return o == OwnerPartner
}

// String returns the canonical owner name
func (o Owner) String() string {
	if o.IsPartner() {
		return string(OwnerPartner)
	}
	return string(OwnerSelf)
}

// Valid reports whether the owner is empty, self or partner
func (o Owner) Valid() bool {
	return o == "" || o == OwnerSelf || o == OwnerPartner
}

// MarshalText writes the canonical owner name
func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts self or partner in any case. Empty decodes to self.
func (o *Owner) UnmarshalText(text []byte) error {
	switch v := Owner(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case "", OwnerSelf:
		*o = OwnerSelf
	case OwnerPartner:
		*o = OwnerPartner
	default:
		return fmt.Errorf("unknown owner %q, expected self or partner", string(text))
	}
	return nil
}

// Person holds the per-person inputs of a plan
type Person struct {
	CurrentAge           int             `yaml:"current_age" json:"currentAge"`
	LumpSumSavings       decimal.Decimal `yaml:"lump_sum_savings" json:"lumpSumSavings"`
	DesiredMonthlyIncome decimal.Decimal `yaml:"desired_monthly_income" json:"desiredMonthlyIncome"` // today's money
	LifeExpectancy       int             `yaml:"life_expectancy" json:"lifeExpectancy"`
}

// IncomeStream is a recurring monthly income fixed in today's purchasing power
type IncomeStream struct {
	ID            int             `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Owner         Owner           `yaml:"owner,omitempty" json:"owner,omitempty"`
	StartAge      int             `yaml:"start_age" json:"startAge"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount"`
}

// AnnualAmount returns the yearly contribution of the stream
func (s IncomeStream) AnnualAmount() decimal.Decimal {
	return s.MonthlyAmount.Mul(monthsPerYear)
}

// OneTimePayment is a single cash injection paid in the year the owner reaches Age
type OneTimePayment struct {
	ID     int             `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Owner  Owner           `yaml:"owner,omitempty" json:"owner,omitempty"`
	Age    int             `yaml:"age" json:"age"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PartnerPlan is the optional partner sub-record of a plan
type PartnerPlan struct {
	Person          `yaml:",inline"`
	IncomeStreams   []IncomeStream   `yaml:"income_streams,omitempty" json:"incomeStreams,omitempty"`
	OneTimePayments []OneTimePayment `yaml:"one_time_payments,omitempty" json:"oneTimePayments,omitempty"`
}

// Plan is the complete set of raw planner inputs, as entered by the user or
// loaded from a plan file.
type Plan struct {
	Name                 string           `yaml:"name,omitempty" json:"name,omitempty"`
	CurrentYear          int              `yaml:"current_year" json:"currentYear"`
	InflationRate        decimal.Decimal  `yaml:"inflation_rate" json:"inflationRate"`                 // percent
	InvestmentGrowthRate decimal.Decimal  `yaml:"investment_growth_rate" json:"investmentGrowthRate"` // percent
	Self                 Person           `yaml:"self" json:"self"`
	Partner              *PartnerPlan     `yaml:"partner,omitempty" json:"partner,omitempty"`
	IncomeStreams        []IncomeStream   `yaml:"income_streams,omitempty" json:"incomeStreams,omitempty"`
	OneTimePayments      []OneTimePayment `yaml:"one_time_payments,omitempty" json:"oneTimePayments,omitempty"`

	// highest ids handed out so far; removing the top id never frees it
	streamHighWater  int
	paymentHighWater int
}

// HasPartner reports whether the plan models a partner
func (p *Plan) HasPartner() bool {
	return p.Partner != nil
}

// DeepCopy returns an independent copy of the plan
func (p *Plan) DeepCopy() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.IncomeStreams = append([]IncomeStream(nil), p.IncomeStreams...)
	cp.OneTimePayments = append([]OneTimePayment(nil), p.OneTimePayments...)
	if p.Partner != nil {
		partner := *p.Partner
		partner.IncomeStreams = append([]IncomeStream(nil), p.Partner.IncomeStreams...)
		partner.OneTimePayments = append([]OneTimePayment(nil), p.Partner.OneTimePayments...)
		cp.Partner = &partner
	}
	return &cp
}

// AllIncomeStreams returns self and partner streams in plan order
func (p *Plan) AllIncomeStreams() []IncomeStream {
	streams := append([]IncomeStream(nil), p.IncomeStreams...)
	if p.Partner != nil {
		streams = append(streams, p.Partner.IncomeStreams...)
	}
	return streams
}

// AllOneTimePayments returns self and partner payments in plan order
func (p *Plan) AllOneTimePayments() []OneTimePayment {
	payments := append([]OneTimePayment(nil), p.OneTimePayments...)
	if p.Partner != nil {
		payments = append(payments, p.Partner.OneTimePayments...)
	}
	return payments
}

var monthsPerYear = decimal.NewFromInt(12)
