package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
)

func (a *app) sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Sweep a plan input and report how the runway responds",
		Long: `Sweep one plan input across a range, or two inputs as a matrix, and
report runway, runs-out age and final balance at every point.

Examples:
  runway sensitivity plan.yaml --parameter growth_rate
  runway sensitivity plan.yaml --parameter inflation_rate --min 1 --max 6 --steps 6
  runway sensitivity plan.yaml --parameter growth_rate --with inflation_rate --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-parameters"); list {
				for _, p := range domain.GetCommonParameters() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s to %s, %d steps (%s)\n",
						p.Name, p.MinValue.String(), p.MaxValue.String(), p.Steps, p.Description)
				}
				return nil
			}

			plan, _, err := loadPlan(cmd, args)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("parameter")
			if name == "" {
				return errors.New("--parameter is required (see --list-parameters)")
			}
			param, err := parameterFromFlags(cmd, name)
			if err != nil {
				return err
			}

			analyzer := calculation.NewSensitivityAnalyzerWithEngine(a.engine())
			var analysis interface{}
			if with, _ := cmd.Flags().GetString("with"); with != "" {
				second, ok := domain.GetParameterByName(with)
				if !ok {
					return unknownParameter(with)
				}
				analysis, err = analyzer.AnalyzeParameterMatrix(plan, param, second)
			} else {
				analysis, err = analyzer.AnalyzeSingleParameter(plan, param)
			}
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addInputFlag(cmd)
	cmd.Flags().StringP("parameter", "p", "", "Parameter to sweep")
	cmd.Flags().String("min", "", "Override the sweep minimum")
	cmd.Flags().String("max", "", "Override the sweep maximum")
	cmd.Flags().Int("steps", 0, "Override the number of sweep points")
	cmd.Flags().String("with", "", "Second parameter for a matrix sweep")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().Bool("list-parameters", false, "List the sweepable parameters and exit")
	return cmd
}

// parameterFromFlags looks up a common parameter and applies --min, --max and --steps
func parameterFromFlags(cmd *cobra.Command, name string) (domain.SensitivityParameter, error) {
	param, ok := domain.GetParameterByName(name)
	if !ok {
		return param, unknownParameter(name)
	}

	for _, bound := range []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"min", &param.MinValue},
		{"max", &param.MaxValue},
	} {
		raw, _ := cmd.Flags().GetString(bound.flag)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return param, fmt.Errorf("invalid --%s %q: %w", bound.flag, raw, err)
		}
		*bound.dst = v
	}
	if steps, _ := cmd.Flags().GetInt("steps"); steps > 0 {
		param.Steps = steps
	}
	return param, nil
}

func unknownParameter(name string) error {
	names := make([]string, 0, 5)
	for _, p := range domain.GetCommonParameters() {
		names = append(names, p.Name)
	}
	return fmt.Errorf("unknown parameter %q (available: %s)", name, strings.Join(names, ", "))
}
