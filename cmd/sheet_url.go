package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/presence-audit/internal/source"
)

var sheetURLCmd = &cobra.Command{
	Use:   "sheet-url <sharing-url>",
	Short: "Print the CSV export URL of a Google Sheets sharing link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSheetURL(cmd.OutOrStdout(), args[0])
	},
}

// printSheetURL prints nothing and fails when the link has no /d/<id> segment.
func printSheetURL(w io.Writer, sharing string) error {
	export := source.ParseGoogleSheetsURL(sharing)
	if export == "" {
		return eris.Errorf("no spreadsheet id in %q", sharing)
	}
	_, err := fmt.Fprintln(w, export)
	return err
}

func init() {
	rootCmd.AddCommand(sheetURLCmd)
}
