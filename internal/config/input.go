package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValidationError describes one invalid plan field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a plan
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan document. Rows without an id are given
// one using the max+1 rule.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	AssignMissingIDs(&plan)

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks a plan for values the projection cannot meaningfully use.
// The returned error is a ValidationErrors when non-nil.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan == nil {
		return ValidationErrors{{Field: "plan", Message: "plan is required"}}
	}

	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if plan.CurrentYear <= 0 {
		add("current_year", "must be positive, got %d", plan.CurrentYear)
	}
	if plan.InflationRate.IsNegative() {
		add("inflation_rate", "cannot be negative, got %s", plan.InflationRate.String())
	}
	if plan.InvestmentGrowthRate.IsNegative() {
		add("investment_growth_rate", "cannot be negative, got %s", plan.InvestmentGrowthRate.String())
	}

	validatePerson("self", plan.Self, add)
	if plan.Partner != nil {
		validatePerson("partner", plan.Partner.Person, add)
	}

	streamIDs := map[int]bool{}
	for i, s := range plan.AllIncomeStreams() {
		field := fmt.Sprintf("income_streams[%d]", i)
		if s.ID <= 0 {
			add(field+".id", "must be positive, got %d", s.ID)
		} else if streamIDs[s.ID] {
			add(field+".id", "duplicate id %d", s.ID)
		}
		streamIDs[s.ID] = true
		if strings.TrimSpace(s.Name) == "" {
			add(field+".name", "is required")
		}
		if s.StartAge < 0 {
			add(field+".start_age", "cannot be negative, got %d", s.StartAge)
		}
		if s.MonthlyAmount.IsNegative() {
			add(field+".monthly_amount", "cannot be negative, got %s", s.MonthlyAmount.String())
		}
		validateOwner(field, s.Owner, plan, add)
	}

	paymentIDs := map[int]bool{}
	for i, p := range plan.AllOneTimePayments() {
		field := fmt.Sprintf("one_time_payments[%d]", i)
		if p.ID <= 0 {
			add(field+".id", "must be positive, got %d", p.ID)
		} else if paymentIDs[p.ID] {
			add(field+".id", "duplicate id %d", p.ID)
		}
		paymentIDs[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			add(field+".name", "is required")
		}
		if p.Age < 0 {
			add(field+".age", "cannot be negative, got %d", p.Age)
		}
		if p.Amount.IsNegative() {
			add(field+".amount", "cannot be negative, got %s", p.Amount.String())
		}
		validateOwner(field, p.Owner, plan, add)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePerson(prefix string, p domain.Person, add func(field, format string, args ...any)) {
	if p.CurrentAge < 0 {
		add(prefix+".current_age", "cannot be negative, got %d", p.CurrentAge)
	}
	if p.LifeExpectancy < p.CurrentAge {
		add(prefix+".life_expectancy", "must be at least current age %d, got %d", p.CurrentAge, p.LifeExpectancy)
	}
	if p.LumpSumSavings.IsNegative() {
		add(prefix+".lump_sum_savings", "cannot be negative, got %s", p.LumpSumSavings.String())
	}
	if p.DesiredMonthlyIncome.IsNegative() {
		add(prefix+".desired_monthly_income", "cannot be negative, got %s", p.DesiredMonthlyIncome.String())
	}
}

func validateOwner(field string, owner domain.Owner, plan *domain.Plan, add func(field, format string, args ...any)) {
	if !owner.Valid() {
		add(field+".owner", "must be self or partner, got %q", string(owner))
		return
	}
	if owner.IsPartner() && plan.Partner == nil {
		add(field+".owner", "is partner but the plan has no partner")
	}
}

// AssignMissingIDs gives every stream and payment with id 0 the next free id
func AssignMissingIDs(plan *domain.Plan) {
	assignStreams := func(streams []domain.IncomeStream) {
		for i := range streams {
			if streams[i].ID == 0 {
				streams[i].ID = plan.NextIncomeStreamID()
			}
		}
	}
	assignPayments := func(payments []domain.OneTimePayment) {
		for i := range payments {
			if payments[i].ID == 0 {
				payments[i].ID = plan.NextPaymentID()
			}
		}
	}

	assignStreams(plan.IncomeStreams)
	assignPayments(plan.OneTimePayments)
	if plan.Partner != nil {
		assignStreams(plan.Partner.IncomeStreams)
		assignPayments(plan.Partner.OneTimePayments)
	}
}

// WritePlan saves a plan as YAML
func WritePlan(filename string, plan *domain.Plan) error {
	data, err := MarshalPlan(plan)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan %s: %w", filename, err)
	}
	return nil
}

// MarshalPlan renders a plan as YAML
func MarshalPlan(plan *domain.Plan) ([]byte, error) {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return data, nil
}

// DefaultPlan returns the planner's starting values
func DefaultPlan() *domain.Plan {
	return &domain.Plan{
		Name:                 "Baseline",
		CurrentYear:          2025,
		InflationRate:        decimal.NewFromFloat(3.0),
		InvestmentGrowthRate: decimal.NewFromFloat(5.0),
		Self: domain.Person{
			CurrentAge:           45,
			LumpSumSavings:       decimal.NewFromInt(500000),
			DesiredMonthlyIncome: decimal.NewFromInt(3500),
			LifeExpectancy:       90,
		},
		IncomeStreams: []domain.IncomeStream{
			{ID: 1, Name: "State Pension", Owner: domain.OwnerSelf, StartAge: 67, MonthlyAmount: decimal.NewFromInt(1200)},
		},
		OneTimePayments: []domain.OneTimePayment{
			{ID: 1, Name: "House Sale", Owner: domain.OwnerSelf, Age: 70, Amount: decimal.NewFromInt(200000)},
		},
	}
}
