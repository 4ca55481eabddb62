package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/runway/internal/domain"
)

// HTMLFormatter produces a printable HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatWholeCurrency,
	"pct":   FormatPercentage,
	"owner": func(o domain.Owner) string { return o.String() },
}).Parse(htmlTemplateSource))

type htmlReport struct {
	*domain.Analysis
	GeneratedOn    string
	Summary        domain.Summary
	KeyFinding     string
	Warning        bool
	FinalPositive  bool
	Assumptions    []Assumption
	Streams        []domain.IncomeStream
	Payments       []domain.OneTimePayment
	Rows           []domain.YearRecord
	ImportantNotes []string
}

func (h HTMLFormatter) Format(analysis *domain.Analysis) ([]byte, error) {
	if analysis == nil || analysis.Result == nil {
		return nil, fmt.Errorf("analysis has no result")
	}
	finding, warning := KeyFinding(analysis.Result)
	data := htmlReport{
		Analysis:       analysis,
		Summary:        analysis.Result.Summary,
		KeyFinding:     finding,
		Warning:        warning,
		FinalPositive:  analysis.Result.Summary.FinalBalance.IsPositive(),
		Assumptions:    PlanAssumptions(analysis.Plan),
		Rows:           analysis.Result.YearlyData,
		ImportantNotes: ImportantNotes,
	}
	if !analysis.GeneratedAt.IsZero() {
		data.GeneratedOn = analysis.GeneratedAt.Format("January 2, 2006")
	}
	if analysis.Plan != nil {
		data.Streams = analysis.Plan.AllIncomeStreams()
		data.Payments = analysis.Plan.AllOneTimePayments()
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
