package calculation

import (
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// Project runs the year-by-year runway simulation. It is deterministic, does
// not validate its input and never modifies it.
//
// Each year: desired spending of every living person is inflated from today's
// money, fixed income streams and exact-age one-time payments are added, the
// payment is credited, the net expense debited, and growth is applied to the
// adjusted balance. The loop stops after the year savings reach zero or after
// the combined life expectancy.
func Project(input domain.ScenarioInput) *domain.ScenarioResult {
	inflationBase := one.Add(input.InflationRate.Div(hundred))
	growthRate := input.InvestmentGrowthRate.Div(hundred)
	growthMultiplier := one.Add(growthRate)

	savings := input.CombinedLumpSum
	age := input.CurrentAge
	year := input.CurrentYear
	partnerAge, hasPartner := input.PartnerAgeAt(age)

	incomeReceived := decimal.Zero
	oneTimeTotal := decimal.Zero
	expenseTotal := decimal.Zero
	growthTotal := decimal.Zero

	var yearly []domain.YearRecord

	for age <= input.Horizon() && savings.IsPositive() {
		inflationFactor := compound(inflationBase, age-input.CurrentAge)

		selfAlive := age <= input.LifeExpectancy
		partnerAlive := hasPartner && partnerAge <= input.Partner.LifeExpectancy

		desiredIncome := decimal.Zero
		if selfAlive {
			desiredIncome = desiredIncome.Add(input.DesiredMonthlyIncome.Mul(monthsPerYear).Mul(inflationFactor))
		}
		if partnerAlive {
			desiredIncome = desiredIncome.Add(input.Partner.DesiredMonthlyIncome.Mul(monthsPerYear).Mul(inflationFactor))
		}
		expenseTotal = expenseTotal.Add(desiredIncome)

		owners := ownerTrack{
			selfAge: age, selfLE: input.LifeExpectancy,
			partnerAge: partnerAge, hasPartner: hasPartner,
		}
		if hasPartner {
			owners.partnerLE = input.Partner.LifeExpectancy
		}

		totalIncome := decimal.Zero
		for _, stream := range input.IncomeStreams {
			ownerAge, ownerLE, ok := owners.resolve(stream.Owner)
			if ok && ownerAge >= stream.StartAge && ownerAge <= ownerLE {
				totalIncome = totalIncome.Add(stream.AnnualAmount())
			}
		}
		incomeReceived = incomeReceived.Add(totalIncome)

		payment := decimal.Zero
		for _, p := range input.OneTimePayments {
			ownerAge, _, ok := owners.resolve(p.Owner)
			if ok && ownerAge == p.Age {
				payment = payment.Add(p.Amount)
			}
		}
		oneTimeTotal = oneTimeTotal.Add(payment)

		netExpense := desiredIncome.Sub(totalIncome)
		starting := savings

		savings = savings.Add(payment)
		savings = savings.Sub(netExpense)
		growth := savings.Mul(growthRate)
		savings = savings.Mul(growthMultiplier)
		growthTotal = growthTotal.Add(growth)

		record := domain.YearRecord{
			Age:             age,
			Year:            year,
			StartingSavings: starting,
			TotalIncome:     totalIncome,
			DesiredIncome:   desiredIncome,
			NetExpense:      netExpense,
			OneTimePayment:  payment,
			GrowthAmount:    growth,
			EndingSavings:   savings,
			InflationFactor: inflationFactor,
			MainPersonAlive: selfAlive,
			PartnerAlive:    partnerAlive,
		}
		if hasPartner {
			pa := partnerAge
			record.PartnerAge = &pa
		}
		yearly = append(yearly, record)

		if !savings.IsPositive() {
			break
		}

		age++
		year++
		if hasPartner {
			partnerAge++
		}
	}

	result := &domain.ScenarioResult{
		YearlyData:     yearly,
		LifeExpectancy: input.Horizon(),
		FinalSavings:   savings,
	}
	if !savings.IsPositive() {
		runsOutAge, runsOutYear := age, year
		result.MoneyRunsOutAge = &runsOutAge
		result.MoneyRunsOutYear = &runsOutYear
	}

	result.Summary = summarize(input, savings, len(yearly), incomeReceived, oneTimeTotal, expenseTotal, growthTotal)
	return result
}

func summarize(input domain.ScenarioInput, savings decimal.Decimal, years int, income, oneTime, expenses, growth decimal.Decimal) domain.Summary {
	s := domain.Summary{
		InitialSavings:       input.CombinedLumpSum,
		TotalIncomeReceived:  income,
		TotalOneTimePayments: oneTime,
		TotalExpenses:        expenses,
		TotalGrowth:          growth,
		FinalBalance:         decimal.Max(decimal.Zero, savings),
		TotalYears:           years,
		AverageAnnualExpense: decimal.Zero,
		AverageAnnualIncome:  decimal.Zero,
		NetCashFlow:          income.Add(oneTime).Sub(expenses),
	}
	// a run that never simulates a year reports zero averages
	if years > 0 {
		n := decimal.NewFromInt(int64(years))
		s.AverageAnnualExpense = expenses.Div(n)
		s.AverageAnnualIncome = income.Div(n)
	}
	return s
}

// ownerTrack resolves an owner tag to that person's simulated age and
// life expectancy for the current year.
type ownerTrack struct {
	selfAge, selfLE       int
	partnerAge, partnerLE int
	hasPartner            bool
}

func (t ownerTrack) resolve(owner domain.Owner) (age, lifeExpectancy int, ok bool) {
	if owner.IsPartner() {
		if !t.hasPartner {
			return 0, 0, false
		}
		return t.partnerAge, t.partnerLE, true
	}
	return t.selfAge, t.selfLE, true
}

// compound returns base^years for a non-negative whole number of years
func compound(base decimal.Decimal, years int) decimal.Decimal {
	factor := one
	for i := 0; i < years; i++ {
		factor = factor.Mul(base)
	}
	return factor
}
