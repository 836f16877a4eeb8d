package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func encodeCmd() *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the query string for a set of filters",
		Long: `Print the query string a search with these filters would put in the
page URL. No request is made.

Examples:
  recipes encode --diet balanced --meal Dinner
  recipes encode --calories 100-300 --query "dishType=Soup"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Encode())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
