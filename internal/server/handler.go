package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
)

// CompareRequest is the body of POST /api/v1/compare
type CompareRequest struct {
	Plan       *domain.Plan `json:"plan"`
	Templates  []string     `json:"templates"`
	Transforms []string     `json:"transforms"`
}

// BreakEvenRequest is the body of the break-even endpoints
type BreakEvenRequest struct {
	Plan  *domain.Plan     `json:"plan"`
	Lower *decimal.Decimal `json:"lower,omitempty"`
	Upper *decimal.Decimal `json:"upper,omitempty"`
}

// SensitivityRequest is the body of POST /api/v1/sensitivity. Setting
// With turns the sweep into a two-parameter matrix.
type SensitivityRequest struct {
	Plan      *domain.Plan     `json:"plan"`
	Parameter string           `json:"parameter"`
	Min       *decimal.Decimal `json:"min,omitempty"`
	Max       *decimal.Decimal `json:"max,omitempty"`
	Steps     int              `json:"steps,omitempty"`
	With      string           `json:"with,omitempty"`
}

// TemplateDTO describes a built-in what-if template
type TemplateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Handler serves the projection API
type Handler struct {
	calc        *calculation.CalculationEngine
	parser      *config.InputParser
	compare     *compare.CompareEngine
	solver      *breakeven.Solver
	sensitivity *calculation.SensitivityAnalyzer
}

// NewHandler builds a handler around one shared calculation engine. A nil
// engine gets a fresh one.
func NewHandler(calc *calculation.CalculationEngine) *Handler {
	if calc == nil {
		calc = calculation.NewCalculationEngine()
	}
	return &Handler{
		calc:        calc,
		parser:      config.NewInputParser(),
		compare:     compare.NewCompareEngine(calc),
		solver:      breakeven.NewDefaultSolver(calc),
		sensitivity: calculation.NewSensitivityAnalyzerWithEngine(calc),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) DefaultPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.DefaultPlan())
}

func (h *Handler) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"formats": output.AvailableFormatterNames(),
		"aliases": output.AvailableFormatAliases(),
	})
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	registry := h.compare.TemplateRegistry
	templates := make([]TemplateDTO, 0)
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		templates = append(templates, TemplateDTO{Name: t.Name, Description: t.Description, Category: t.Category})
	}
	writeJSON(w, http.StatusOK, templates)
}

// ValidatePlan reports whether a plan is usable without running it.
func (h *Handler) ValidatePlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := decodeJSON(w, r, &plan); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(&plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// Project runs a plan. The analysis is returned as JSON unless ?format
// names another formatter, in which case the rendered export is returned.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := decodeJSON(w, r, &plan); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(&plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	analysis := h.calc.Analyze(&plan)

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		writeJSON(w, http.StatusOK, analysis)
		return
	}

	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return
	}
	data, err := formatter.Format(analysis)
	if err != nil {
		log.Errorf("failed to format analysis: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(formatter))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.DefaultFileName(formatter)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(req.Plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Templates) == 0 && len(req.Transforms) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one template or transform is required"))
		return
	}

	set, err := h.compare.Compare(r.Context(), req.Plan, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) BreakEven(w http.ResponseWriter, r *http.Request) {
	target, err := breakeven.ParseTarget(mux.Vars(r)["target"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req BreakEvenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(req.Plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.solver.Solve(r.Context(), breakeven.Request{
		Plan:        req.Plan,
		Target:      target,
		Constraints: breakeven.Constraints{Lower: req.Lower, Upper: req.Upper},
	})
	switch {
	case errors.Is(err, breakeven.ErrNoSolution):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) BreakEvenAll(w http.ResponseWriter, r *http.Request) {
	var req BreakEvenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(req.Plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	multi, err := h.solver.SolveAll(r.Context(), req.Plan)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, multi)
}

func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	if err := h.checkPlan(req.Plan); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	param, err := sweepParameter(req.Parameter, req.Min, req.Max, req.Steps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.With == "" {
		analysis, err := h.sensitivity.AnalyzeSingleParameter(req.Plan, param)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
		return
	}

	second, err := sweepParameter(req.With, nil, nil, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	matrix, err := h.sensitivity.AnalyzeParameterMatrix(req.Plan, param, second)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, matrix)
}

// checkPlan assigns missing ids and validates a decoded plan.
func (h *Handler) checkPlan(plan *domain.Plan) error {
	if plan == nil {
		return errors.New("plan is required")
	}
	config.AssignMissingIDs(plan)
	return h.parser.ValidatePlan(plan)
}

// sweepParameter looks up a common parameter and applies range overrides.
func sweepParameter(name string, min, max *decimal.Decimal, steps int) (domain.SensitivityParameter, error) {
	param, ok := domain.GetParameterByName(name)
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %q", name)
	}
	if min != nil {
		param.MinValue = *min
	}
	if max != nil {
		param.MaxValue = *max
	}
	if steps > 0 {
		param.Steps = steps
	}
	return param, nil
}

func contentType(f output.Formatter) string {
	switch f.Name() {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
