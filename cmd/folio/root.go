package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Single-page portfolio and blog preview site",
	Long: `folio serves a single-page portfolio with projects, an education
timeline, blog previews and a contact panel. Page metadata and structured
data follow the selected section, and the light/dark theme is remembered
per visitor.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "folio.yml", "config file path")
}

func loadConfig() (folio.SiteConfig, error) {
	return folio.LoadConfig(cfgFile)
}
