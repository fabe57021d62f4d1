package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/igwlord/nebula/internal/usecase/export"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all collections to a spreadsheet",
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

		f, err := os.Create(flagExportOut)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.NewService(a.repo, a.owner).Write(ctx, sel, f); err != nil {
			os.Remove(flagExportOut)
			return err
		}
		a.notify("Exported to %s", flagExportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", export.DefaultFilename, "Output file")
}
