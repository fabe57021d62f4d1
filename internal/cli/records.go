package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/domain"
	"github.com/igwlord/nebula/internal/usecase/dashboard"
	"github.com/igwlord/nebula/internal/usecase/records"
)

var (
	flagFollow         bool
	flagDescription    string
	flagAmount         string
	flagCategory       string
	flagType           string
	flagTargetAmount   string
	flagCurrentAmount  string
	flagMonthlyPayment string
	flagPaidAmount     string
)

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Record description")
	cmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount")
	cmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&flagType, "type", "t", "", "Investment type")
	cmd.Flags().StringVar(&flagTargetAmount, "target", "", "Goal target amount")
	cmd.Flags().StringVar(&flagCurrentAmount, "current", "", "Goal current amount")
	cmd.Flags().StringVar(&flagMonthlyPayment, "monthly-payment", "", "Debt monthly payment")
	cmd.Flags().StringVar(&flagPaidAmount, "paid", "", "Debt amount paid so far")
}

func recordInput() records.Input {
	return records.Input{
		Description:    flagDescription,
		Amount:         flagAmount,
		Category:       flagCategory,
		Type:           flagType,
		TargetAmount:   flagTargetAmount,
		CurrentAmount:  flagCurrentAmount,
		MonthlyPayment: flagMonthlyPayment,
		PaidAmount:     flagPaidAmount,
	}
}

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List a collection for the selected month",
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

		cfg, err := a.settings().Get(ctx)
		if err != nil {
			return err
		}

		if !flagFollow {
			printRecords(kind, a.records().List(ctx, kind, sel), cfg)
			return nil
		}

		snapshots, err := a.records().Watch(ctx, kind, sel)
		if err != nil {
			return err
		}
		for snap := range snapshots {
			printRecords(kind, snap, cfg)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <collection>",
	Short: "Add a record",
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

		rec, err := a.records().Create(ctx, kind, sel, recordInput())
		if err != nil {
			return saveError(err)
		}
		a.notify("Saved %q (%s)", rec.Description, rec.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <collection> <id>",
	Short: "Edit a record",
	Args:  cobra.ExactArgs(2),
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

		existing, err := findRecord(ctx, a, kind, sel, args[1])
		if err != nil {
			return err
		}
		if _, err := a.records().Update(ctx, kind, existing, recordInput()); err != nil {
			return saveError(err)
		}
		a.notify("Updated %s", args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.records().Delete(ctx, kind, args[1]); err != nil {
			return err
		}
		a.notify("Deleted %s", args[1])
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <collection> <from> <to>",
	Short: "Move a record to a new position in the list",
	Args:  cobra.ExactArgs(3),
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
		from, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[2])
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		current := a.records().List(ctx, kind, sel)
		reconciler := records.NewReconciler(a.repo, a.owner)
		moved, err := reconciler.MoveItem(ctx, kind, current, from, to)
		if err != nil {
			// The view keeps its previous order when persistence fails.
			var rerr *domain.ReorderError
			if errors.As(err, &rerr) {
				a.notify("Reorder not saved, keeping previous order")
			}
			return err
		}

		cfg, err := a.settings().Get(ctx)
		if err != nil {
			return err
		}
		printRecords(kind, moved, cfg)
		return nil
	},
}

func findRecord(ctx context.Context, a *app, kind domain.Kind, sel domain.MonthSelection, id string) (*domain.Record, error) {
	for _, rec := range a.records().List(ctx, kind, sel) {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

// saveError makes validation failures read as user feedback rather than
// internal errors.
func saveError(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("not saved: %s", verr)
	}
	return err
}

func printRecords(kind domain.Kind, recs []*domain.Record, cfg *domain.Settings) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch kind {
	case domain.KindGoal:
		fmt.Fprintln(w, "#\tID\tDESCRIPTION\tCURRENT\tTARGET")
		for i, r := range recs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, r.ID, r.Description,
				formatAmount(r.CurrentAmount, cfg), formatAmount(r.TargetAmount, cfg))
		}
	case domain.KindDebt:
		fmt.Fprintln(w, "#\tID\tDESCRIPTION\tTOTAL\tMONTHLY\tPAID")
		for i, r := range recs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i, r.ID, r.Description,
				formatAmount(r.Amount, cfg), formatAmount(r.MonthlyPayment, cfg), formatAmount(r.PaidAmount, cfg))
		}
	default:
		fmt.Fprintln(w, "#\tID\tDESCRIPTION\tAMOUNT\tCATEGORY\tDATE")
		for i, r := range recs {
			date := ""
			if !r.Date.IsZero() {
				date = r.Date.Format("02/01/2006")
			}
			category := r.Category
			if kind == domain.KindInvestment {
				category = r.Type
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i, r.ID, r.Description,
				formatAmount(r.Amount, cfg), category, date)
		}
	}
}

func formatAmount(v int64, cfg *domain.Settings) string {
	return "$ " + dashboard.Convert(v, cfg).StringFixed(2)
}

func init() {
	listCmd.Flags().BoolVarP(&flagFollow, "follow", "f", false, "Keep printing snapshots as the collection changes")
	addRecordFlags(addCmd)
	addRecordFlags(editCmd)
}
