package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	categoryMarkets   = "Market Assumptions"
	categorySpending  = "Spending"
	categoryIncome    = "Income Timing"
	categoryLongevity = "Longevity"
)

func pct(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "conservative",
		Description: "Inflation 1 point higher, growth 2 points lower",
		Category:    categoryMarkets,
		Transforms: []PlanTransform{
			&ShiftRates{InflationDelta: decimal.NewFromInt(1), GrowthDelta: decimal.NewFromInt(-2)},
		},
	})

	registry.Register(Template{
		Name:        "optimistic",
		Description: "Inflation half a point lower, growth 1 point higher",
		Category:    categoryMarkets,
		Transforms: []PlanTransform{
			&ShiftRates{InflationDelta: decimal.NewFromFloat(-0.5), GrowthDelta: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "market_crash",
		Description: "Savings drop 30% before retirement begins",
		Category:    categoryMarkets,
		Transforms: []PlanTransform{
			&ScaleSavings{Who: WhoBoth, Percent: decimal.NewFromInt(-30)},
		},
	})

	registry.Register(Template{
		Name:        "frugal",
		Description: "Spend 15% less each month",
		Category:    categorySpending,
		Transforms: []PlanTransform{
			&AdjustSpending{Who: WhoBoth, Percent: pct(-15)},
		},
	})

	registry.Register(Template{
		Name:        "lavish",
		Description: "Spend 20% more each month",
		Category:    categorySpending,
		Transforms: []PlanTransform{
			&AdjustSpending{Who: WhoBoth, Percent: pct(20)},
		},
	})

	registry.Register(Template{
		Name:        "delayed_pension",
		Description: "All income streams start 3 years later",
		Category:    categoryIncome,
		Transforms: []PlanTransform{
			&DelayStreams{Years: 3},
		},
	})

	registry.Register(Template{
		Name:        "no_windfall",
		Description: "None of the one-time payments arrive",
		Category:    categoryIncome,
		Transforms: []PlanTransform{
			&DropPayments{},
		},
	})

	registry.Register(Template{
		Name:        "long_life",
		Description: "Everyone lives 5 years longer than expected",
		Category:    categoryLongevity,
		Transforms: []PlanTransform{
			&ShiftLifeExpectancy{Who: WhoBoth, Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base *domain.Plan, template Template) (*domain.Plan, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	for _, category := range []string{categoryMarkets, categorySpending, categoryIncome, categoryLongevity, ""} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		title := category
		if title == "" {
			title = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", title))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  runway compare plan.yaml --with conservative,frugal\n")
	sb.WriteString("  runway compare plan.yaml --with long_life --format csv\n")

	return sb.String()
}
