package cli

import (
	"fmt"

	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the stored theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			stored, ok := store.Get(config.ThemeKey)
			if !ok {
				stored = "unset"
			}
			effective := theme.Name(theme.Resolve(store, theme.SystemDark))

			fmt.Fprintf(cmd.OutOrStdout(), "stored: %s\neffective: %s\n", stored, effective)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set dark|light",
		Short:     "Store a theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.Dark, theme.Light},
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, err := theme.Parse(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := theme.NewController(theme.NewFlag(dark), store).Set(dark); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", theme.Name(dark))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip the stored theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			flag := theme.NewFlag(theme.Resolve(store, theme.SystemDark))
			dark, err := theme.NewController(flag, store).Toggle()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", theme.Name(dark))
			return nil
		},
	})

	return cmd
}
