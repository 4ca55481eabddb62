package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
)

// ShiftLifeExpectancy moves the planning horizon of one or both people.
type ShiftLifeExpectancy struct {
	Who   Who
	Years int
}

func (sl *ShiftLifeExpectancy) Name() string {
	return "shift_life_expectancy"
}

func (sl *ShiftLifeExpectancy) Description() string {
	return fmt.Sprintf("Shift %s life expectancy by %+d years", sl.Who, sl.Years)
}

func (sl *ShiftLifeExpectancy) Validate(base *domain.Plan) error {
	if err := checkWho(sl.Name(), sl.Who, base); err != nil {
		return err
	}
	if sl.Who.includesSelf() && base.Self.LifeExpectancy+sl.Years < base.Self.CurrentAge {
		return NewTransformError(sl.Name(), "validate", "life expectancy would fall below current age", nil)
	}
	if sl.Who.includesPartner() && base.Partner != nil && base.Partner.LifeExpectancy+sl.Years < base.Partner.CurrentAge {
		return NewTransformError(sl.Name(), "validate", "partner life expectancy would fall below current age", nil)
	}
	return nil
}

func (sl *ShiftLifeExpectancy) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	if sl.Who.includesSelf() {
		modified.Self.LifeExpectancy += sl.Years
	}
	if sl.Who.includesPartner() && modified.Partner != nil {
		modified.Partner.LifeExpectancy += sl.Years
	}
	return modified, nil
}
