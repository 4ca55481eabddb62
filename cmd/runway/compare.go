package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/transform"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan against what-if templates",
		Long: `Run the plan as given and once per template or transform, then report
how each alternative changes the runway and final balance.

Examples:
  runway compare plan.yaml --with conservative,frugal
  runway compare plan.yaml --transform adjust_spending:percent=-10 --format csv
  runway compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(a.engine())

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprintln(cmd.OutOrStdout(), transform.GetTemplateHelp(engine.TemplateRegistry))
				return nil
			}

			plan, path, err := loadPlan(cmd, args)
			if err != nil {
				return err
			}

			with, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 && len(transforms) == 0 {
				return errors.New("nothing to compare; pass --with templates or --transform specs (see --list-templates)")
			}

			set, err := engine.Compare(cmd.Context(), plan, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
				PlanPath:   path,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addInputFlag(cmd)
	cmd.Flags().String("with", "", "Comma-separated template names")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable, one alternative each)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates and exit")
	return cmd
}
