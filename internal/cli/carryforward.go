package cli

import (
	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/usecase/carryforward"
)

var carryForwardCmd = &cobra.Command{
	Use:   "carry-forward <collection>",
	Short: "Copy last month's records into the selected month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		sel, err := selection()
		if err != nil {
			return err
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		count, err := carryforward.NewService(a.repo, a.owner).CopyFromPreviousMonth(ctx, kind, sel)
		if err != nil {
			return err
		}
		if count == 0 {
			a.notify("Nothing to copy from the previous month")
			return nil
		}
		a.notify("Copied %d records into %s %d", count, sel.Month, sel.Year)
		return nil
	},
}
