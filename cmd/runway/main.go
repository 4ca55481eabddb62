package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	settingsPath string
	logLevel     string
	settings     config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{settings: config.DefaultSettings()}

	root := &cobra.Command{
		Use:   "runway",
		Short: "Retirement runway calculator",
		Long: `Project year by year how long retirement savings last against inflating
spending, income streams and one-time payments, then explore what-if
templates, break-even values and parameter sensitivity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadSettings()
		},
	}
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "Path to a settings YAML file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides settings")

	root.AddCommand(
		a.calculateCmd(),
		a.validateCmd(),
		a.exampleCmd(),
		a.compareCmd(),
		a.breakEvenCmd(),
		a.sensitivityCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) loadSettings() error {
	s, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if a.logLevel != "" {
		s.Log.Level = a.logLevel
	}
	a.settings = s
	config.ConfigureLogging(s)
	return nil
}

// engine returns a calculation engine logging through logrus
func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(log.WithField("component", "engine"))
	return engine
}

// loadPlan reads the plan named by the first argument or the --input flag
func loadPlan(cmd *cobra.Command, args []string) (*domain.Plan, string, error) {
	path, _ := cmd.Flags().GetString("input")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, "", errors.New("no plan file given; pass one as an argument or with --input (runway example writes a starter plan)")
	}

	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}
	log.WithField("plan", path).Debug("plan loaded")
	return plan, path, nil
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Plan YAML file")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "runway %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
