package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/report"
)

var (
	exportFormat string
	exportOutput string
	exportFilter audit.Filter
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the (filtered) company records",
	Long:  "Writes one line per company. Without --output the file is named Audit_DIGICITY.<ext>; use --output - for stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		env, err := initAudit(cfg, "source")
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), env)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = report.DefaultFilename("", format)
		}
		records := exportFilter.Apply(ds.Records)
		return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
			return report.Export(w, format, records)
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv, xlsx, json, yaml or markdown")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (- for stdout)")
	addFilterFlags(exportCmd, &exportFilter)
	rootCmd.AddCommand(exportCmd)
}
