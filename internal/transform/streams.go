package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// DelayStreams pushes income stream start ages back. With an empty Stream every
// stream is delayed, otherwise only streams whose name matches case-insensitively.
type DelayStreams struct {
	Years  int
	Stream string
}

func (ds *DelayStreams) Name() string {
	return "delay_streams"
}

func (ds *DelayStreams) Description() string {
	if ds.Stream == "" {
		return fmt.Sprintf("Delay all income streams by %d years", ds.Years)
	}
	return fmt.Sprintf("Delay %s by %d years", ds.Stream, ds.Years)
}

func (ds *DelayStreams) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ds.Name(), "validate", "base plan cannot be nil", nil)
	}
	if ds.Years == 0 {
		return NewTransformError(ds.Name(), "validate", "years cannot be zero", nil)
	}
	matched := false
	for _, s := range base.AllIncomeStreams() {
		if !matchesName(s.Name, ds.Stream) {
			continue
		}
		matched = true
		if s.StartAge+ds.Years < 0 {
			return NewTransformError(ds.Name(), "validate", fmt.Sprintf("start age of %s would become negative", s.Name), nil)
		}
	}
	if ds.Stream != "" && !matched {
		return NewTransformError(ds.Name(), "validate", fmt.Sprintf("no income stream named %q", ds.Stream), nil)
	}
	return nil
}

func (ds *DelayStreams) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	delay := func(streams []domain.IncomeStream) {
		for i := range streams {
			if matchesName(streams[i].Name, ds.Stream) {
				streams[i].StartAge += ds.Years
			}
		}
	}
	delay(modified.IncomeStreams)
	if modified.Partner != nil {
		delay(modified.Partner.IncomeStreams)
	}
	return modified, nil
}

// DropPayments removes one-time payments, all of them or those matching Payment.
type DropPayments struct {
	Payment string
}

func (dp *DropPayments) Name() string {
	return "drop_payments"
}

func (dp *DropPayments) Description() string {
	if dp.Payment == "" {
		return "Drop all one-time payments"
	}
	return fmt.Sprintf("Drop one-time payment %s", dp.Payment)
}

func (dp *DropPayments) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(dp.Name(), "validate", "base plan cannot be nil", nil)
	}
	if dp.Payment == "" {
		return nil
	}
	for _, p := range base.AllOneTimePayments() {
		if matchesName(p.Name, dp.Payment) {
			return nil
		}
	}
	return NewTransformError(dp.Name(), "validate", fmt.Sprintf("no one-time payment named %q", dp.Payment), nil)
}

func (dp *DropPayments) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	for _, p := range modified.AllOneTimePayments() {
		if matchesName(p.Name, dp.Payment) {
			modified.RemoveOneTimePayment(p.ID)
		}
	}
	return modified, nil
}

// AddStream adds a recurring monthly income stream.
type AddStream struct {
	Stream        string
	Owner         domain.Owner
	StartAge      int
	MonthlyAmount decimal.Decimal
}

func (as *AddStream) Name() string {
	return "add_stream"
}

func (as *AddStream) Description() string {
	return fmt.Sprintf("Add %s of %s/month from age %d", as.Stream, as.MonthlyAmount.StringFixed(0), as.StartAge)
}

func (as *AddStream) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(as.Name(), "validate", "base plan cannot be nil", nil)
	}
	if strings.TrimSpace(as.Stream) == "" {
		return NewTransformError(as.Name(), "validate", "stream name is required", nil)
	}
	if as.StartAge < 0 {
		return NewTransformError(as.Name(), "validate", "start age cannot be negative", nil)
	}
	if as.MonthlyAmount.IsNegative() {
		return NewTransformError(as.Name(), "validate", "monthly amount cannot be negative", nil)
	}
	return checkOwner(as.Name(), as.Owner, base)
}

func (as *AddStream) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	added := modified.AddIncomeStream(as.Stream, as.Owner)
	streams := modified.IncomeStreams
	if added.Owner.IsPartner() {
		streams = modified.Partner.IncomeStreams
	}
	last := &streams[len(streams)-1]
	last.StartAge = as.StartAge
	last.MonthlyAmount = as.MonthlyAmount
	return modified, nil
}

// AddPayment adds a one-time payment received at the owner's given age.
type AddPayment struct {
	Payment string
	Owner   domain.Owner
	Age     int
	Amount  decimal.Decimal
}

func (ap *AddPayment) Name() string {
	return "add_payment"
}

func (ap *AddPayment) Description() string {
	return fmt.Sprintf("Add %s of %s at age %d", ap.Payment, ap.Amount.StringFixed(0), ap.Age)
}

func (ap *AddPayment) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ap.Name(), "validate", "base plan cannot be nil", nil)
	}
	if strings.TrimSpace(ap.Payment) == "" {
		return NewTransformError(ap.Name(), "validate", "payment name is required", nil)
	}
	if ap.Age < 0 {
		return NewTransformError(ap.Name(), "validate", "age cannot be negative", nil)
	}
	if ap.Amount.IsNegative() {
		return NewTransformError(ap.Name(), "validate", "amount cannot be negative", nil)
	}
	return checkOwner(ap.Name(), ap.Owner, base)
}

func (ap *AddPayment) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	added := modified.AddOneTimePayment(ap.Payment, ap.Owner)
	payments := modified.OneTimePayments
	if added.Owner.IsPartner() {
		payments = modified.Partner.OneTimePayments
	}
	last := &payments[len(payments)-1]
	last.Age = ap.Age
	last.Amount = ap.Amount
	return modified, nil
}

func matchesName(name, filter string) bool {
	return filter == "" || strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(filter))
}

func checkOwner(name string, owner domain.Owner, base *domain.Plan) error {
	if !owner.Valid() {
		return NewTransformError(name, "validate", fmt.Sprintf("invalid owner %q", owner), nil)
	}
	if owner.IsPartner() && base.Partner == nil {
		return NewTransformError(name, "validate", "plan has no partner", nil)
	}
	return nil
}
