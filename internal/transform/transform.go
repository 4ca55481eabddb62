package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
)

// PlanTransform defines the interface for all plan transformations.
// Transforms are composable what-if edits used by plan comparison, the
// break-even solver and the interactive planner.
type PlanTransform interface {
	// Apply returns a new plan with the edit applied; base is never modified.
	Apply(base *domain.Plan) (*domain.Plan, error)

	// Name returns a short identifier for this transform (e.g., "adjust_spending").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base *domain.Plan) error
}

// ApplyTransforms applies a sequence of transforms to a base plan.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *domain.Plan, transforms []PlanTransform) (*domain.Plan, error) {
	if base == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base

	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// Who selects which person a transform edits
type Who string

const (
	WhoSelf    Who = "self"
	WhoPartner Who = "partner"
	WhoBoth    Who = "both"
)

// ParseWho parses a person selector; empty means both
func ParseWho(s string) (Who, error) {
	switch Who(s) {
	case "", WhoBoth:
		return WhoBoth, nil
	case WhoSelf, WhoPartner:
		return Who(s), nil
	}
	return "", fmt.Errorf("invalid person %q, expected self, partner or both", s)
}

func (w Who) includesSelf() bool    { return w != WhoPartner }
func (w Who) includesPartner() bool { return w != WhoSelf }

// checkWho rejects partner-only edits on plans without a partner
func checkWho(name string, who Who, base *domain.Plan) error {
	if base == nil {
		return NewTransformError(name, "validate", "base plan cannot be nil", nil)
	}
	if who == WhoPartner && base.Partner == nil {
		return NewTransformError(name, "validate", "plan has no partner", nil)
	}
	return nil
}
