package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/log"
	"github.com/eringen/folio/theme"
)

var (
	exportOut string
	exportURL string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a static build of every section",
	Long: `Export renders every section into <out>/index.html and <out>/<section>/index.html,
together with sitemap.xml, feed.xml, robots.txt and og-image.jpg. The theme is
read from the settings table, falling back to prefer_dark.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("url") {
			cfg.URL = strings.TrimSuffix(exportURL, "/")
		}

		app := folio.New(cfg)
		defer app.Close()
		if err := app.Open(); err != nil {
			return err
		}

		th := theme.New(folio.NewSettingsStorage(app.Store), func() bool { return cfg.PreferDark })
		written, err := app.Export(cmd.Context(), exportOut, th)
		if err != nil {
			return err
		}
		log.S().Infow("export complete", "dir", exportOut, "files", len(written), "theme", th.Name())
		for _, name := range written {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dist", "output directory")
	exportCmd.Flags().StringVar(&exportURL, "url", "", "site origin for canonical links (overrides config; empty means unknown)")
	rootCmd.AddCommand(exportCmd)
}
