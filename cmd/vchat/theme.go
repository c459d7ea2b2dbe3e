package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avitaltamir/vibechat/internal/theme"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect and validate themes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the built-in themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, n := range theme.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dump [name]",
		Short: "Print a built-in theme as a YAML theme file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := theme.DefaultName
			if len(args) == 1 {
				name = args[0]
			}
			th, err := theme.Builtin(name)
			if err != nil {
				return err
			}
			data, err := theme.Dump(th)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a theme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := theme.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: theme %q is complete\n", args[0], th.Name())
			return nil
		},
	})
	return cmd
}
