// Package cli wires the commands of the nebula binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagMonth  string
)

var rootCmd = &cobra.Command{
	Use:          "nebula",
	Short:        "Personal finance tracker",
	Long:         "Track incomes, expenses, debts, investments and goals, month by month.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go. The context
// cancels long-running commands (list --follow) on interrupt.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./nebula.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "M", "", "Month to operate on, YYYY-MM (default: current)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(carryForwardCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(settingsCmd)
}

// notify prints a status line unless notifications are disabled in config.
func (a *app) notify(format string, args ...interface{}) {
	if !a.cfg.Notifications {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
