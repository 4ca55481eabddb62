package compare

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // built-in template names
	Transforms []string // ad-hoc transform specs, one alternative each
	PlanPath   string   // shown in reports only
}

type alternative struct {
	name        string
	description string
	plan        *domain.Plan
}

// Compare runs the base plan and one alternative per template or transform spec.
// Alternatives are projected concurrently; results keep the order of options.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan *domain.Plan,
	options CompareOptions,
) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	baseName := plan.Name
	if baseName == "" {
		baseName = "Baseline"
	}

	// alternatives are resolved before any projection runs
	var alts []alternative
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(plan, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alts = append(alts, alternative{name: template.Name, description: template.Description, plan: modified})
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(plan, []transform.PlanTransform{tr})
		if err != nil {
			return nil, err
		}
		alts = append(alts, alternative{name: tr.Name(), description: tr.Description(), plan: modified})
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, "Plan as entered", ce.CalcEngine.RunPlan(plan))

	alternatives := make([]ComparisonResult, len(alts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, alt := range alts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := ce.MetricsCalculator.CalculateMetrics(alt.name, alt.description, ce.CalcEngine.RunPlan(alt.plan))
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(result, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.PlanPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
