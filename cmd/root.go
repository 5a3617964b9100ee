package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/presence-audit/internal/config"
)

var cfg *config.Config

var (
	sourceURLs  []string
	sourceFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "presence-audit",
	Short: "Digital presence audit of local companies",
	Long: "Loads a spreadsheet of companies and their presence on Facebook, LinkedIn, Instagram, " +
		"their website, Google My Business, Pages Jaunes, YouTube and TripAdvisor, scores every " +
		"platform on a 0-100 scale and reports population statistics and per-company action plans.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c
		applySourceFlags(cfg)

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// applySourceFlags replaces the configured sources when any --source or
// --file flag is given.
func applySourceFlags(c *config.Config) {
	if len(sourceURLs)+len(sourceFiles) == 0 {
		return
	}
	c.Source.URL = ""
	c.Source.File = ""
	c.Source.URLs = append([]string(nil), sourceURLs...)
	c.Source.Files = append([]string(nil), sourceFiles...)
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&sourceURLs, "source", nil, "spreadsheet URL: Google Sheets link, http(s) or ftp (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&sourceFiles, "file", nil, "local CSV or XLSX file (repeatable)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
