package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/usecase/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the month's summary widgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sel, err := selection()
		if err != nil {
			return err
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		cfg, err := a.settings().Get(ctx)
		if err != nil {
			return err
		}
		sum, err := dashboard.NewService(a.repo, a.owner).Summarize(ctx, sel)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintf(w, "%s %d\n\n", sel.Month, sel.Year)
		fmt.Fprintf(w, "Neto Total\t%s\n", formatAmount(sum.NetTotal, cfg))
		fmt.Fprintf(w, "Neto Mensual\t%s\n", formatAmount(sum.MonthlyFlow, cfg))
		fmt.Fprintf(w, "Gastos del Mes\t%s en %d transacciones\n", formatAmount(sum.TotalExpenses, cfg), sum.ExpenseCount)
		fmt.Fprintf(w, "Inversiones\t%s\n", formatAmount(sum.Investments, cfg))

		if len(sum.TopExpenses) > 0 {
			fmt.Fprintln(w, "\nGastos más grandes:")
			for i, e := range sum.TopExpenses {
				fmt.Fprintf(w, "  %d. %s\t%s\n", i+1, e.Description, formatAmount(e.Amount, cfg))
			}
		}
		if len(sum.ByCategory) > 0 {
			fmt.Fprintln(w, "\nGastos por categoría:")
			for _, c := range sum.ByCategory {
				fmt.Fprintf(w, "  %s\t%s\n", c.Category, formatAmount(c.Total, cfg))
			}
		}
		if len(sum.Goals) > 0 {
			fmt.Fprintln(w, "\nMetas:")
			for _, g := range sum.Goals {
				fmt.Fprintf(w, "  %s\t%s / %s\t%d%%\n", g.Description,
					formatAmount(g.Current, cfg), formatAmount(g.Target, cfg), g.Percent)
			}
		}
		if sum.Debts.TotalDebt > 0 {
			fmt.Fprintf(w, "\nDeudas\t%s / %s\t%d%%\n",
				formatAmount(sum.Debts.TotalPaid, cfg), formatAmount(sum.Debts.TotalDebt, cfg), sum.Debts.Percent)
		}
		return nil
	},
}
