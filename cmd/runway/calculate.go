package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/output"
)

func (a *app) calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Project a plan year by year",
		Long: `Project a plan and print the report.

Examples:
  runway calculate plan.yaml
  runway calculate --input plan.yaml --format csv --output runway.csv
  runway calculate plan.yaml --format html --out-dir reports`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(cmd, args)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if !cmd.Flags().Changed("format") {
				format = a.settings.Output.Format
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			analysis := a.engine().Analyze(plan)
			log.WithFields(log.Fields{"analysis": analysis.ID, "format": f.Name()}).Debug("analysis complete")

			outDir, _ := cmd.Flags().GetString("out-dir")
			outFile, _ := cmd.Flags().GetString("output")
			switch {
			case outDir != "":
				written, err := output.WriteFormatted(f, analysis, outDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
			case outFile != "":
				data, err := f.Format(analysis)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outFile)
			default:
				data, err := f.Format(analysis)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			}

			if share, _ := cmd.Flags().GetBool("share"); share {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), output.ShareSummary(analysis))
			}
			return nil
		},
	}
	addInputFlag(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().String("out-dir", "", "Write the report into this directory under its default file name")
	cmd.Flags().Bool("share", false, "Also print a short summary for sharing")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadPlan(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", path)
			return nil
		},
	}
	addInputFlag(cmd)
	return cmd
}

func (a *app) exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write or print a starter plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := config.DefaultPlan()
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				data, err := config.MarshalPlan(plan)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := config.WritePlan(out, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "File to write; prints to stdout when empty")
	return cmd
}
