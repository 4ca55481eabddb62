package calculation

import (
	"github.com/rgehrsitz/runway/internal/domain"
)

// AssembleScenario merges the self and partner parts of a plan into the single
// input the projection loop consumes. Savings and desired income are pooled,
// the horizon is the later of the two life expectancies, and the partner's
// streams and payments are appended after self's, tagged with the partner
// owner. The plan is not modified.
func AssembleScenario(plan *domain.Plan) domain.ScenarioInput {
	in := domain.ScenarioInput{
		CurrentAge:             plan.Self.CurrentAge,
		CurrentYear:            plan.CurrentYear,
		LifeExpectancy:         plan.Self.LifeExpectancy,
		DesiredMonthlyIncome:   plan.Self.DesiredMonthlyIncome,
		InflationRate:          plan.InflationRate,
		InvestmentGrowthRate:   plan.InvestmentGrowthRate,
		CombinedLumpSum:        plan.Self.LumpSumSavings,
		CombinedDesiredIncome:  plan.Self.DesiredMonthlyIncome,
		CombinedLifeExpectancy: plan.Self.LifeExpectancy,
	}

	in.IncomeStreams = make([]domain.IncomeStream, 0, len(plan.AllIncomeStreams()))
	for _, s := range plan.IncomeStreams {
		s.Owner = domain.Owner(s.Owner.String())
		in.IncomeStreams = append(in.IncomeStreams, s)
	}
	in.OneTimePayments = make([]domain.OneTimePayment, 0, len(plan.AllOneTimePayments()))
	for _, p := range plan.OneTimePayments {
		p.Owner = domain.Owner(p.Owner.String())
		in.OneTimePayments = append(in.OneTimePayments, p)
	}

	if plan.Partner == nil {
		return in
	}

	partner := plan.Partner.Person
	in.HasPartner = true
	in.Partner = &partner
	in.CombinedLumpSum = in.CombinedLumpSum.Add(partner.LumpSumSavings)
	in.CombinedDesiredIncome = in.CombinedDesiredIncome.Add(partner.DesiredMonthlyIncome)
	if partner.LifeExpectancy > in.CombinedLifeExpectancy {
		in.CombinedLifeExpectancy = partner.LifeExpectancy
	}

	for _, s := range plan.Partner.IncomeStreams {
		s.Owner = domain.OwnerPartner
		in.IncomeStreams = append(in.IncomeStreams, s)
	}
	for _, p := range plan.Partner.OneTimePayments {
		p.Owner = domain.OwnerPartner
		in.OneTimePayments = append(in.OneTimePayments, p)
	}

	return in
}
