package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_spending", createAdjustSpending)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("set_growth", createSetGrowth)
	registry.Register("shift_rates", createShiftRates)
	registry.Register("shift_life_expectancy", createShiftLifeExpectancy)
	registry.Register("delay_streams", createDelayStreams)
	registry.Register("scale_savings", createScaleSavings)
	registry.Register("drop_payments", createDropPayments)
	registry.Register("add_stream", createAddStream)
	registry.Register("add_payment", createAddPayment)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_spending:percent=-10,who=self"
// The ":params" part may be omitted for transforms without required parameters.
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createAdjustSpending(params map[string]string) (PlanTransform, error) {
	who, err := ParseWho(params["who"])
	if err != nil {
		return nil, err
	}
	t := &AdjustSpending{Who: who}

	if v, ok := params["percent"]; ok {
		pct, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid percent value: %w", err)
		}
		t.Percent = &pct
	}
	if v, ok := params["monthly"]; ok {
		monthly, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid monthly value: %w", err)
		}
		t.Monthly = &monthly
	}
	if t.Percent == nil && t.Monthly == nil {
		return nil, fmt.Errorf("adjust_spending requires 'percent' or 'monthly' parameter")
	}
	return t, nil
}

func createSetInflation(params map[string]string) (PlanTransform, error) {
	rate, err := requireDecimal("set_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createSetGrowth(params map[string]string) (PlanTransform, error) {
	rate, err := requireDecimal("set_growth", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetGrowth{Rate: rate}, nil
}

func createShiftRates(params map[string]string) (PlanTransform, error) {
	t := &ShiftRates{}
	if v, ok := params["inflation"]; ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid inflation value: %w", err)
		}
		t.InflationDelta = d
	}
	if v, ok := params["growth"]; ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid growth value: %w", err)
		}
		t.GrowthDelta = d
	}
	return t, nil
}

func createShiftLifeExpectancy(params map[string]string) (PlanTransform, error) {
	years, err := requireInt("shift_life_expectancy", params, "years")
	if err != nil {
		return nil, err
	}
	who, err := ParseWho(params["who"])
	if err != nil {
		return nil, err
	}
	return &ShiftLifeExpectancy{Who: who, Years: years}, nil
}

func createDelayStreams(params map[string]string) (PlanTransform, error) {
	years, err := requireInt("delay_streams", params, "years")
	if err != nil {
		return nil, err
	}
	return &DelayStreams{Years: years, Stream: params["name"]}, nil
}

func createScaleSavings(params map[string]string) (PlanTransform, error) {
	pct, err := requireDecimal("scale_savings", params, "percent")
	if err != nil {
		return nil, err
	}
	who, err := ParseWho(params["who"])
	if err != nil {
		return nil, err
	}
	return &ScaleSavings{Who: who, Percent: pct}, nil
}

func createDropPayments(params map[string]string) (PlanTransform, error) {
	return &DropPayments{Payment: params["name"]}, nil
}

func createAddStream(params map[string]string) (PlanTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("add_stream requires 'name' parameter")
	}
	monthly, err := requireDecimal("add_stream", params, "monthly")
	if err != nil {
		return nil, err
	}
	t := &AddStream{
		Stream:        name,
		Owner:         domain.Owner(params["owner"]),
		StartAge:      domain.DefaultStreamStartAge,
		MonthlyAmount: monthly,
	}
	if _, ok := params["start_age"]; ok {
		if t.StartAge, err = requireInt("add_stream", params, "start_age"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func createAddPayment(params map[string]string) (PlanTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("add_payment requires 'name' parameter")
	}
	amount, err := requireDecimal("add_payment", params, "amount")
	if err != nil {
		return nil, err
	}
	t := &AddPayment{
		Payment: name,
		Owner:   domain.Owner(params["owner"]),
		Age:     domain.DefaultPaymentAge,
		Amount:  amount,
	}
	if _, ok := params["age"]; ok {
		if t.Age, err = requireInt("add_payment", params, "age"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	v, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func requireInt(transform string, params map[string]string, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
