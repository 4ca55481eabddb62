package calculation

import (
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleScenario_SinglePerson(t *testing.T) {
	plan := scenarioA()

	in := AssembleScenario(plan)

	assert.False(t, in.HasPartner)
	assert.Nil(t, in.Partner)
	assert.True(t, in.CombinedLumpSum.Equal(d(500000)))
	assert.True(t, in.CombinedDesiredIncome.Equal(d(3500)))
	assert.Equal(t, 90, in.CombinedLifeExpectancy)
	require.Len(t, in.IncomeStreams, 1)
	assert.Equal(t, domain.OwnerSelf, in.IncomeStreams[0].Owner)
}

func TestAssembleScenario_MergesPartner(t *testing.T) {
	plan := scenarioA()
	plan.OneTimePayments = []domain.OneTimePayment{{ID: 1, Name: "Sale", Age: 70, Amount: d(100)}}
	plan.Partner = &domain.PartnerPlan{
		Person: domain.Person{
			CurrentAge:           42,
			LumpSumSavings:       d(150000),
			DesiredMonthlyIncome: d(1500),
			LifeExpectancy:       93,
		},
		IncomeStreams: []domain.IncomeStream{
			{ID: 2, Name: "Partner Pension", StartAge: 66, MonthlyAmount: d(900)},
		},
		OneTimePayments: []domain.OneTimePayment{
			{ID: 2, Name: "Inheritance", Owner: domain.OwnerSelf, Age: 60, Amount: d(50000)},
		},
	}

	in := AssembleScenario(plan)

	assert.True(t, in.HasPartner)
	require.NotNil(t, in.Partner)
	assert.Equal(t, 42, in.Partner.CurrentAge)
	assert.True(t, in.CombinedLumpSum.Equal(d(650000)))
	assert.True(t, in.CombinedDesiredIncome.Equal(d(5000)))
	assert.Equal(t, 93, in.CombinedLifeExpectancy)
	assert.Equal(t, 90, in.LifeExpectancy)

	require.Len(t, in.IncomeStreams, 2)
	assert.Equal(t, "State Pension", in.IncomeStreams[0].Name)
	assert.Equal(t, domain.OwnerSelf, in.IncomeStreams[0].Owner)
	assert.Equal(t, domain.OwnerPartner, in.IncomeStreams[1].Owner)

	require.Len(t, in.OneTimePayments, 2)
	assert.Equal(t, domain.OwnerPartner, in.OneTimePayments[1].Owner, "partner list entries always follow the partner")

	// plan untouched
	assert.Equal(t, domain.OwnerSelf, plan.Partner.OneTimePayments[0].Owner)
	assert.Equal(t, domain.Owner(""), plan.IncomeStreams[0].Owner)
}

func TestAssembleScenario_SelfLongerLived(t *testing.T) {
	plan := scenarioA()
	plan.Partner = &domain.PartnerPlan{Person: domain.Person{CurrentAge: 50, LifeExpectancy: 80}}

	in := AssembleScenario(plan)

	assert.Equal(t, 90, in.CombinedLifeExpectancy)
}

func TestAssembleScenario_SelfListKeepsPartnerTag(t *testing.T) {
	plan := scenarioA()
	plan.Partner = &domain.PartnerPlan{Person: domain.Person{CurrentAge: 50, LifeExpectancy: 85}}
	plan.IncomeStreams[0].Owner = domain.OwnerPartner

	in := AssembleScenario(plan)

	assert.Equal(t, domain.OwnerPartner, in.IncomeStreams[0].Owner)
}
