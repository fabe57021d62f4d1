package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/domain"
)

var (
	flagTheme    string
	flagCurrency string
	flagRate     string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the stored preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.settings().Get(ctx)
		if err != nil {
			return err
		}
		printSettings(s)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		patch := &domain.Settings{
			Theme:    flagTheme,
			Currency: strings.ToUpper(flagCurrency),
		}
		if flagRate != "" {
			rate, err := decimal.NewFromString(flagRate)
			if err != nil || rate.IsNegative() {
				return fmt.Errorf("invalid exchange rate %q", flagRate)
			}
			patch.ExchangeRate = rate
		}

		s, err := a.settings().Update(ctx, patch)
		if err != nil {
			return err
		}
		a.notify("Settings saved")
		printSettings(s)
		return nil
	},
}

var settingsMoveWidgetCmd = &cobra.Command{
	Use:   "move-widget <widget> <position>",
	Short: "Move a dashboard widget to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.settings().MoveWidget(ctx, args[0], position)
		if err != nil {
			return err
		}
		a.notify("Layout saved")
		printSettings(s)
		return nil
	},
}

func printSettings(s *domain.Settings) {
	fmt.Printf("Theme:\t\t%s\n", s.Theme)
	fmt.Printf("Currency:\t%s\n", s.Currency)
	fmt.Printf("Dolar MEP:\t%s\n", s.ExchangeRate.String())
	fmt.Printf("Dashboard:\t%s\n", strings.Join(s.DashboardLayout, ", "))
}

func init() {
	settingsSetCmd.Flags().StringVar(&flagTheme, "theme", "", "UI theme (dark, light, matrix, ...)")
	settingsSetCmd.Flags().StringVar(&flagCurrency, "currency", "", "Display currency (ARS, USD)")
	settingsSetCmd.Flags().StringVar(&flagRate, "rate", "", "Dolar MEP exchange rate")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsMoveWidgetCmd)
}
