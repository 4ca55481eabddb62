package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	want := []string{"conservative", "delayed_pension", "frugal", "lavish", "long_life", "market_crash", "no_windfall", "optimistic"}
	assert.Equal(t, want, registry.List())

	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			tmpl, ok := registry.Get(name)
			require.True(t, ok)
			_, err := ApplyTemplate(couplePlan(), tmpl)
			assert.NoError(t, err)
			_, err = ApplyTemplate(singlePlan(), tmpl)
			assert.NoError(t, err)
		})
	}
}

func TestTemplateLookupIsCaseInsensitive(t *testing.T) {
	registry := CreateBuiltInTemplates()
	_, ok := registry.Get("  Frugal ")
	assert.True(t, ok)
	_, ok = registry.Get("reckless")
	assert.False(t, ok)
}

func TestTemplateEffects(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := couplePlan()

	tmpl, _ := registry.Get("conservative")
	out, err := ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.True(t, out.InflationRate.Equal(d("4")))
	assert.True(t, out.InvestmentGrowthRate.Equal(d("3")))

	tmpl, _ = registry.Get("long_life")
	out, err = ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.Equal(t, 95, out.Self.LifeExpectancy)
	assert.Equal(t, 97, out.Partner.LifeExpectancy)

	tmpl, _ = registry.Get("no_windfall")
	out, err = ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.Empty(t, out.AllOneTimePayments())
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"frugal", "long_life"}, ParseTemplateList(" frugal, ,long_life "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Market Assumptions:")
	assert.Contains(t, help, "market_crash")
	assert.Contains(t, help, "Usage:")
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
