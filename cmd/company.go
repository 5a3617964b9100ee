package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/dataset"
	"github.com/sells-group/presence-audit/internal/report"
)

var (
	companyFormat string
	companyOutput string
	companySave   bool
)

var companyCmd = &cobra.Command{
	Use:   "company [name]",
	Short: "Audit report and action plan for one company",
	Long:  "Prints the audit of one company. Without a name the first company of the sheet is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initAudit(cfg, "source")
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), env)
		if err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		view, err := companyView(ds, name)
		if err != nil {
			return err
		}

		out := companyOutput
		if out == "" && companySave {
			f, err := report.ParseFormat(companyFormat)
			if err != nil {
				return err
			}
			out = report.DefaultFilename(view.Company.Name, f)
		}
		return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
			return writeCompany(w, view, companyFormat)
		})
	},
}

// companyView finds a company by exact name, or takes the first one when
// name is empty.
func companyView(ds *dataset.Dataset, name string) (report.CompanyView, error) {
	if len(ds.Records) == 0 {
		return report.CompanyView{}, eris.New("no companies in dataset")
	}
	c := ds.Records[0]
	if name != "" {
		found, ok := audit.Find(ds.Records, name)
		if !ok {
			return report.CompanyView{}, eris.Errorf("company %q not found", name)
		}
		c = found
	}
	return report.NewCompanyView(ds.Records, c), nil
}

func writeCompany(w io.Writer, v report.CompanyView, format string) error {
	switch format {
	case "markdown", "md":
		return report.WriteCompanyMarkdown(w, v)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode company")
	case "yaml", "yml":
		return encodeYAML(w, v)
	default:
		return eris.Errorf("unknown format %q (want markdown, json or yaml)", format)
	}
}

func init() {
	companyCmd.Flags().StringVar(&companyFormat, "format", "markdown", "output format: markdown, json or yaml")
	companyCmd.Flags().StringVarP(&companyOutput, "output", "o", "", "write to this file instead of stdout")
	companyCmd.Flags().BoolVar(&companySave, "save", false, "write to Audit_<name>.<ext> in the current directory")
	rootCmd.AddCommand(companyCmd)
}
