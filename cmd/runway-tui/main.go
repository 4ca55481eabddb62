package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/tui"
)

func newRootCmd() *cobra.Command {
	var settingsPath, logFile string

	cmd := &cobra.Command{
		Use:          "runway-tui [plan.yaml]",
		Short:        "Interactive retirement runway planner",
		Long:         "Edit a plan with sliders and watch the runway projection update. Starts from the default plan when no file is given.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alt screen owns the terminal; logs go to a file or nowhere
			log.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			config.ConfigureLogging(settings)

			planPath := ""
			if len(args) > 0 {
				planPath = args[0]
				if _, err := os.Stat(planPath); os.IsNotExist(err) {
					return fmt.Errorf("plan file not found: %s", planPath)
				}
			}

			p := tea.NewProgram(
				tui.NewModel(planPath),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a settings YAML file")
	cmd.Flags().StringVar(&logFile, "log", "", "Write logs to this file (logs are discarded otherwise)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
