package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the theme used by export",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := folio.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		th := theme.New(folio.NewSettingsStorage(store), func() bool { return cfg.PreferDark })
		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				if _, err := th.Toggle(); err != nil {
					return err
				}
			default:
				dark, err := theme.Parse(args[0])
				if err != nil {
					return err
				}
				if err := th.Set(dark); err != nil {
					return err
				}
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), th.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
