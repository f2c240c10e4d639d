package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/api"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand() *cobra.Command {
	var (
		fields    bool
		providers bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [SEARCH]",
		Short: "Show the table catalog",
		Long:  "Print the catalog of providers and fields available to queries as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var search string
			if len(args) > 0 {
				search = args[0]
			}

			factory, err := newFactory(newLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			catalog, err := apifactory.API[api.CurrentTableFieldCatalogAPI](factory)
			if err != nil {
				return err
			}

			var result string

			switch {
			case fields:
				result, err = catalog.GetFields(cmd.Context(), search)
			case providers:
				result, err = catalog.GetProviders(cmd.Context(), search)
			default:
				result, err = catalog.GetCatalog(cmd.Context(), search)
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

			return err
		},
	}

	cmd.Flags().BoolVar(&fields, "fields", false, "list fields of tables matching SEARCH")
	cmd.Flags().BoolVar(&providers, "providers", false, "list providers matching SEARCH")
	cmd.MarkFlagsMutuallyExclusive("fields", "providers")

	return cmd
}
