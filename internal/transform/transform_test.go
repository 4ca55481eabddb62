package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func couplePlan() *domain.Plan {
	return &domain.Plan{
		Name:                 "Couple",
		CurrentYear:          2025,
		InflationRate:        d("3"),
		InvestmentGrowthRate: d("5"),
		Self: domain.Person{
			CurrentAge:           60,
			LumpSumSavings:       d("400000"),
			DesiredMonthlyIncome: d("4000"),
			LifeExpectancy:       90,
		},
		Partner: &domain.PartnerPlan{
			Person: domain.Person{
				CurrentAge:           58,
				LumpSumSavings:       d("100000"),
				DesiredMonthlyIncome: d("2000"),
				LifeExpectancy:       92,
			},
			IncomeStreams: []domain.IncomeStream{
				{ID: 2, Name: "Partner Pension", Owner: domain.OwnerPartner, StartAge: 65, MonthlyAmount: d("1200")},
			},
		},
		IncomeStreams: []domain.IncomeStream{
			{ID: 1, Name: "Social Security", Owner: domain.OwnerSelf, StartAge: 67, MonthlyAmount: d("2500")},
		},
		OneTimePayments: []domain.OneTimePayment{
			{ID: 1, Name: "Inheritance", Owner: domain.OwnerSelf, Age: 70, Amount: d("50000")},
			{ID: 2, Name: "House Sale", Owner: domain.OwnerSelf, Age: 75, Amount: d("150000")},
		},
	}
}

func singlePlan() *domain.Plan {
	p := couplePlan()
	p.Partner = nil
	return p
}

func TestApplyTransforms(t *testing.T) {
	t.Run("nil base", func(t *testing.T) {
		_, err := ApplyTransforms(nil, nil)
		require.Error(t, err)
	})

	t.Run("empty list returns copy", func(t *testing.T) {
		base := couplePlan()
		out, err := ApplyTransforms(base, nil)
		require.NoError(t, err)
		assert.NotSame(t, base, out)
		assert.Equal(t, base.Self, out.Self)
	})

	t.Run("nil transform", func(t *testing.T) {
		_, err := ApplyTransforms(couplePlan(), []PlanTransform{nil})
		assert.ErrorContains(t, err, "index 0")
	})

	t.Run("chained transforms do not touch base", func(t *testing.T) {
		base := couplePlan()
		out, err := ApplyTransforms(base, []PlanTransform{
			&SetInflation{Rate: d("4")},
			&AdjustSpending{Who: WhoSelf, Percent: pct(-10)},
			&DropPayments{},
		})
		require.NoError(t, err)
		assert.True(t, out.InflationRate.Equal(d("4")))
		assert.True(t, out.Self.DesiredMonthlyIncome.Equal(d("3600")))
		assert.True(t, out.Partner.DesiredMonthlyIncome.Equal(d("2000")))
		assert.Empty(t, out.OneTimePayments)

		assert.True(t, base.InflationRate.Equal(d("3")))
		assert.True(t, base.Self.DesiredMonthlyIncome.Equal(d("4000")))
		assert.Len(t, base.OneTimePayments, 2)
	})

	t.Run("validation error is wrapped", func(t *testing.T) {
		_, err := ApplyTransforms(singlePlan(), []PlanTransform{
			&ScaleSavings{Who: WhoPartner, Percent: d("10")},
		})
		require.Error(t, err)
		var te *TransformError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "scale_savings", te.TransformName)
		assert.Equal(t, "validate", te.Operation)
	})
}

func TestAdjustSpending(t *testing.T) {
	tests := []struct {
		name        string
		transform   *AdjustSpending
		wantSelf    string
		wantPartner string
		wantErr     bool
	}{
		{"percent both", &AdjustSpending{Who: WhoBoth, Percent: pct(-25)}, "3000", "1500", false},
		{"monthly partner", &AdjustSpending{Who: WhoPartner, Monthly: ptr(d("2500"))}, "4000", "2500", false},
		{"neither set", &AdjustSpending{Who: WhoBoth}, "", "", true},
		{"both set", &AdjustSpending{Who: WhoBoth, Percent: pct(5), Monthly: ptr(d("1"))}, "", "", true},
		{"percent at -100", &AdjustSpending{Who: WhoBoth, Percent: pct(-100)}, "", "", true},
		{"negative monthly", &AdjustSpending{Who: WhoSelf, Monthly: ptr(d("-1"))}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := couplePlan()
			err := tt.transform.Validate(base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			out, err := tt.transform.Apply(base)
			require.NoError(t, err)
			assert.True(t, out.Self.DesiredMonthlyIncome.Equal(d(tt.wantSelf)), out.Self.DesiredMonthlyIncome.String())
			assert.True(t, out.Partner.DesiredMonthlyIncome.Equal(d(tt.wantPartner)), out.Partner.DesiredMonthlyIncome.String())
		})
	}
}

func TestRateTransforms(t *testing.T) {
	base := couplePlan()

	assert.Error(t, (&SetInflation{Rate: d("-1")}).Validate(base))
	assert.Error(t, (&SetGrowth{Rate: d("30")}).Validate(base))

	out, err := (&ShiftRates{InflationDelta: d("-5"), GrowthDelta: d("2")}).Apply(base)
	require.NoError(t, err)
	assert.True(t, out.InflationRate.IsZero(), "floored at zero")
	assert.True(t, out.InvestmentGrowthRate.Equal(d("7")))
}

func TestShiftLifeExpectancy(t *testing.T) {
	base := couplePlan()

	out, err := (&ShiftLifeExpectancy{Who: WhoBoth, Years: 3}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 93, out.Self.LifeExpectancy)
	assert.Equal(t, 95, out.Partner.LifeExpectancy)

	assert.Error(t, (&ShiftLifeExpectancy{Who: WhoSelf, Years: -40}).Validate(base))
	assert.Error(t, (&ShiftLifeExpectancy{Who: WhoPartner, Years: 1}).Validate(singlePlan()))
	assert.NoError(t, (&ShiftLifeExpectancy{Who: WhoBoth, Years: 1}).Validate(singlePlan()))
}

func TestDelayStreams(t *testing.T) {
	base := couplePlan()

	out, err := (&DelayStreams{Years: 2}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 69, out.IncomeStreams[0].StartAge)
	assert.Equal(t, 67, out.Partner.IncomeStreams[0].StartAge)

	named := &DelayStreams{Years: 1, Stream: "partner pension"}
	require.NoError(t, named.Validate(base))
	out, err = named.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 67, out.IncomeStreams[0].StartAge)
	assert.Equal(t, 66, out.Partner.IncomeStreams[0].StartAge)

	assert.Error(t, (&DelayStreams{Years: 1, Stream: "Lottery"}).Validate(base))
	assert.Error(t, (&DelayStreams{Years: 0}).Validate(base))
	assert.Error(t, (&DelayStreams{Years: -70}).Validate(base))
}

func TestDropPayments(t *testing.T) {
	base := couplePlan()

	out, err := (&DropPayments{Payment: "inheritance"}).Apply(base)
	require.NoError(t, err)
	require.Len(t, out.OneTimePayments, 1)
	assert.Equal(t, "House Sale", out.OneTimePayments[0].Name)

	// dropped ids are not handed out again
	added, err := (&AddPayment{Payment: "Bonus", Age: 66, Amount: d("1000")}).Apply(out)
	require.NoError(t, err)
	assert.Equal(t, 3, added.OneTimePayments[len(added.OneTimePayments)-1].ID)

	assert.Error(t, (&DropPayments{Payment: "Lottery"}).Validate(base))
}

func TestAddStreamAndPayment(t *testing.T) {
	base := couplePlan()

	out, err := (&AddStream{Stream: "Annuity", Owner: domain.OwnerPartner, StartAge: 70, MonthlyAmount: d("800")}).Apply(base)
	require.NoError(t, err)
	require.Len(t, out.Partner.IncomeStreams, 2)
	added := out.Partner.IncomeStreams[1]
	assert.Equal(t, 3, added.ID, "ids are shared across self and partner lists")
	assert.Equal(t, 70, added.StartAge)
	assert.True(t, added.MonthlyAmount.Equal(d("800")))
	assert.Len(t, base.Partner.IncomeStreams, 1)

	assert.Error(t, (&AddStream{Stream: "", MonthlyAmount: d("1")}).Validate(base))
	assert.Error(t, (&AddStream{Stream: "X", Owner: domain.OwnerPartner}).Validate(singlePlan()))
	assert.Error(t, (&AddStream{Stream: "X", Owner: "cousin"}).Validate(base))

	out, err = (&AddPayment{Payment: "Bonus", Age: 62, Amount: d("20000")}).Apply(base)
	require.NoError(t, err)
	require.Len(t, out.OneTimePayments, 3)
	assert.Equal(t, 62, out.OneTimePayments[2].Age)
	assert.Error(t, (&AddPayment{Payment: "Bonus", Age: -1}).Validate(base))
}

func TestScaleSavings(t *testing.T) {
	out, err := (&ScaleSavings{Who: WhoBoth, Percent: d("-50")}).Apply(couplePlan())
	require.NoError(t, err)
	assert.True(t, out.Self.LumpSumSavings.Equal(d("200000")))
	assert.True(t, out.Partner.LumpSumSavings.Equal(d("50000")))

	assert.Error(t, (&ScaleSavings{Who: WhoSelf, Percent: d("-101")}).Validate(couplePlan()))
}

func TestParseWho(t *testing.T) {
	w, err := ParseWho("")
	require.NoError(t, err)
	assert.Equal(t, WhoBoth, w)

	w, err = ParseWho("partner")
	require.NoError(t, err)
	assert.Equal(t, WhoPartner, w)

	_, err = ParseWho("everyone")
	assert.Error(t, err)
}

func ptr(v decimal.Decimal) *decimal.Decimal {
	return &v
}
