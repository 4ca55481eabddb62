package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/breakeven"
)

func (a *app) breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [plan-file]",
		Short: "Find the break-even spending, savings or growth rate",
		Long: `Search for the value at which savings exactly last to life expectancy.

Targets:
  max_spending  largest monthly spending that still lasts
  min_savings   smallest starting savings that still lasts
  min_growth    lowest growth rate that still lasts
  all           solve every target (default)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(cmd, args)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}

			solver := breakeven.NewDefaultSolver(a.engine())
			targetName, _ := cmd.Flags().GetString("target")

			if targetName == "all" {
				multi, err := solver.SolveAll(cmd.Context(), plan)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMulti(multi))
				return nil
			}

			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}
			constraints, err := boundFlags(cmd)
			if err != nil {
				return err
			}

			result, err := solver.Solve(cmd.Context(), breakeven.Request{
				Plan:        plan,
				Target:      target,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	addInputFlag(cmd)
	cmd.Flags().StringP("target", "t", "all", "Target: max_spending, min_savings, min_growth or all")
	cmd.Flags().String("lower", "", "Lower bound of the search bracket")
	cmd.Flags().String("upper", "", "Upper bound of the search bracket")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func boundFlags(cmd *cobra.Command) (breakeven.Constraints, error) {
	var c breakeven.Constraints
	for _, name := range []string{"lower", "upper"} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}
		if name == "lower" {
			c.Lower = &v
		} else {
			c.Upper = &v
		}
	}
	return c, nil
}
