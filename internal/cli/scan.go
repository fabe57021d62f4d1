package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/usecase/statement"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Extract payment details from a card statement image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		image, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		client := statement.NewClient(a.cfg.Vision.APIKey)
		text, err := client.RecognizeText(ctx, image)
		if err != nil {
			return err
		}

		s := statement.Parse(text)
		if !s.Detected() {
			a.notify("No payment total detected in %s", args[0])
			return nil
		}

		fmt.Printf("Total a pagar:\t$ %s\n", s.TotalDue.StringFixed(2))
		if s.MinimumPayment != nil {
			fmt.Printf("Pago mínimo:\t$ %s\n", s.MinimumPayment.StringFixed(2))
		}
		if s.DueDate != nil {
			fmt.Printf("Vencimiento:\t%s\n", s.DueDate.Format("02/01/2006"))
		}
		if s.CutoffDate != nil {
			fmt.Printf("Fecha de corte:\t%s\n", s.CutoffDate.Format("02/01/2006"))
		}
		if s.CreditLimit != nil {
			fmt.Printf("Límite de crédito:\t$ %s\n", s.CreditLimit.StringFixed(2))
		}
		if s.PreviousBalance != nil {
			fmt.Printf("Saldo anterior:\t$ %s\n", s.PreviousBalance.StringFixed(2))
		}
		if s.NewCharges != nil {
			fmt.Printf("Nuevos cargos:\t$ %s\n", s.NewCharges.StringFixed(2))
		}
		return nil
	},
}
