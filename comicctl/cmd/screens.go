package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicapp/catalog/navigation"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the comic list screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.openAndRender(cmd, navigation.ListRoute())
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <comic-id>",
		Short: "Show the details screen of one comic",
		Example: `  comicctl show 42
  comicctl show 42 --output yaml --retries 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.openAndRender(cmd, navigation.DetailsRoute(args[0]))
		},
	}
}

func newOpenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Open a screen by route, e.g. comic_list or comic_details/42",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.openAndRender(cmd, args[0])
		},
	}
}

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Print navigation routes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the comic list route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), navigation.ListRoute())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "details <comic-id>",
		Short: "Print the details route of a comic; the id is not escaped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), navigation.DetailsRoute(args[0]))
			return err
		},
	})
	return cmd
}
