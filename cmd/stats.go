package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/presence-audit/internal/aggregate"
	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/dataset"
	"github.com/sells-group/presence-audit/internal/report"
)

var (
	auditMode   string
	auditFormat string
	auditFilter audit.Filter
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Print population statistics for the (filtered) companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := aggregate.ParseMode(auditMode)
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

		return writeStats(cmd.OutOrStdout(), ds, mode, auditFilter, auditFormat)
	},
}

// computeStats aggregates the filtered subset against the full dataset.
func computeStats(ds *dataset.Dataset, mode aggregate.Mode, f audit.Filter) aggregate.Stats {
	return aggregate.Aggregate(mode, ds.Platforms, ds.Records, f.Apply(ds.Records))
}

func writeStats(w io.Writer, ds *dataset.Dataset, mode aggregate.Mode, f audit.Filter, format string) error {
	stats := computeStats(ds, mode, f)

	switch format {
	case "table":
		return printStatsTable(w, stats)
	case "markdown", "md":
		return report.WritePopulationMarkdown(w, stats, f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(stats), "encode stats")
	case "yaml":
		return encodeYAML(w, stats)
	default:
		return eris.Errorf("unknown format %q (want table, markdown, json or yaml)", format)
	}
}

func printStatsTable(out io.Writer, s aggregate.Stats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Mode:\t%s\n", s.Mode)
	_, _ = fmt.Fprintf(w, "Companies:\t%d\n", s.Count)
	if s.HasData() {
		_, _ = fmt.Fprintf(w, "Average:\t%.1f\n", *s.Avg)
	} else {
		_, _ = fmt.Fprintln(w, "Average:\tno data")
	}

	_, _ = fmt.Fprintln(w, "\nCITY\tSCORE\tCOMPANIES")
	for _, g := range s.ByCity {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\n", g.Name, g.Score, g.Count)
	}

	_, _ = fmt.Fprintln(w, "\nSECTOR\tSCORE\tCOMPANIES")
	for _, g := range s.BySector {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\n", g.Name, g.Score, g.Count)
	}

	_, _ = fmt.Fprintln(w, "\nPLATFORM\tSCORE")
	for _, p := range s.PlatformPerf {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Score)
	}

	_, _ = fmt.Fprintln(w, "\nLEVEL\tCOMPANIES")
	for _, b := range s.Distribution {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", b.Name, b.Value)
	}
	return w.Flush()
}

// addFilterFlags binds the dashboard filters to f.
func addFilterFlags(cmd *cobra.Command, f *audit.Filter) {
	cmd.Flags().StringVar(&f.City, "city", "", "only companies in this city (exact match)")
	cmd.Flags().StringVar(&f.Sector, "sector", "", "only companies in this sector (exact match)")
	cmd.Flags().StringVar(&f.Search, "search", "", "only companies whose name contains this text")
}

func init() {
	auditCmd.Flags().StringVar(&auditMode, "mode", string(aggregate.ModePresence), "scoring mode: presence or performance")
	auditCmd.Flags().StringVar(&auditFormat, "format", "table", "output format: table, markdown, json or yaml")
	addFilterFlags(auditCmd, &auditFilter)
	rootCmd.AddCommand(auditCmd)
}
