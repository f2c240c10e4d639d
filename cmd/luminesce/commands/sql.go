package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/api"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
)

var textFormats = []api.ResultFormat{api.FormatCSV, api.FormatJSON, api.FormatPipe, api.FormatXML}

// parseTextFormat accepts the result formats that can be printed.
func parseTextFormat(format string) (api.ResultFormat, error) {
	resultFormat := api.ResultFormat(format)
	if !slices.Contains(textFormats, resultFormat) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return resultFormat, nil
}

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	var (
		format    string
		queryName string
		timeout   time.Duration
		inBody    bool
		params    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "sql QUERY",
		Short: "Run a query",
		Long:  "Run a query synchronously and print the result in the requested format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return ErrQueryRequired
			}

			resultFormat, err := parseTextFormat(format)
			if err != nil {
				return err
			}

			factory, err := newFactory(newLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			sqlAPI, err := apifactory.API[api.SQLExecutionAPI](factory)
			if err != nil {
				return err
			}

			opts := &api.QueryOptions{QueryName: queryName, Timeout: timeout, ScalarParameters: params}

			run := sqlAPI.GetByQuery
			if inBody {
				run = sqlAPI.PutByQuery
			}

			result, err := run(cmd.Context(), resultFormat, query, opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(api.FormatCSV), "result format (csv, json, pipe, xml)")
	cmd.Flags().StringVar(&queryName, "name", "", "query name shown in the history")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "server side query timeout")
	cmd.Flags().BoolVar(&inBody, "body", false, "send the query in the request body")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "scalar parameter (name=value)")

	return cmd
}
