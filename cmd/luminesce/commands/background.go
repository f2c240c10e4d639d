package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/api"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
)

const defaultPollInterval = 2 * time.Second

// Background command errors.
var (
	ErrInvalidExecutionID = errors.New("invalid execution ID")
	ErrQueryNotCompleted  = errors.New("query did not complete")
)

// NewBackgroundCommand creates the background command group.
func NewBackgroundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "background",
		Aliases: []string{"bg"},
		Short:   "Run queries in the background",
		Long:    "Start background queries, follow their progress, fetch their results and cancel them",
	}

	cmd.AddCommand(newBackgroundStartCommand())
	cmd.AddCommand(newBackgroundProgressCommand())
	cmd.AddCommand(newBackgroundFetchCommand())
	cmd.AddCommand(newBackgroundCancelCommand())

	return cmd
}

func newBackgroundStartCommand() *cobra.Command {
	var (
		queryName    string
		format       string
		wait         bool
		pollInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "start QUERY",
		Short: "Start a background query",
		Long:  "Start a background query and print its execution ID, or wait for it and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultFormat, err := parseTextFormat(format)
			if err != nil {
				return err
			}

			background, err := backgroundAPI(cmd)
			if err != nil {
				return err
			}

			started, err := background.StartQuery(cmd.Context(), args[0], &api.QueryOptions{QueryName: queryName})
			if err != nil {
				return err
			}

			if !wait {
				return writeOutput(cmd.OutOrStdout(), started, []string{"Execution ID"}, [][]string{{started.ExecutionID}})
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Running query " + started.ExecutionID + "..."
			s.Start()

			progress, err := waitForQuery(cmd.Context(), background, started.ExecutionID, pollInterval)

			s.Stop()

			if err != nil {
				return err
			}

			if progress.Status != api.TaskStatusRanToCompletion {
				return fmt.Errorf("%w: %s: %s", ErrQueryNotCompleted, progress.Status, progress.Progress)
			}

			result, err := background.FetchQueryResult(cmd.Context(), started.ExecutionID, resultFormat)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

			return err
		},
	}

	cmd.Flags().StringVar(&queryName, "name", "", "query name shown in the history")
	cmd.Flags().StringVarP(&format, "format", "f", string(api.FormatCSV), "result format used with --wait")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the query and print its result")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", defaultPollInterval, "interval between progress checks")

	return cmd
}

func newBackgroundProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress EXECUTION_ID",
		Short: "Show the progress of a background query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executionID, err := parseExecutionID(args[0])
			if err != nil {
				return err
			}

			background, err := backgroundAPI(cmd)
			if err != nil {
				return err
			}

			progress, err := background.GetProgressOf(cmd.Context(), executionID)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), progress, []string{"Property", "Value"}, [][]string{
				{"Status", string(progress.Status)},
				{"State", progress.State},
				{"Rows", strconv.Itoa(progress.RowCount)},
				{"Has Data", strconv.FormatBool(progress.HasData)},
			})
		},
	}
}

func newBackgroundFetchCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fetch EXECUTION_ID",
		Short: "Fetch the result of a background query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executionID, err := parseExecutionID(args[0])
			if err != nil {
				return err
			}

			resultFormat, err := parseTextFormat(format)
			if err != nil {
				return err
			}

			background, err := backgroundAPI(cmd)
			if err != nil {
				return err
			}

			result, err := background.FetchQueryResult(cmd.Context(), executionID, resultFormat)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(api.FormatCSV), "result format (csv, json, pipe, xml)")

	return cmd
}

func newBackgroundCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel EXECUTION_ID",
		Short: "Cancel a background query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executionID, err := parseExecutionID(args[0])
			if err != nil {
				return err
			}

			background, err := backgroundAPI(cmd)
			if err != nil {
				return err
			}

			cancelled, err := background.CancelQuery(cmd.Context(), executionID)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), cancelled, []string{"Property", "Value"}, [][]string{
				{"Previous Status", string(cancelled.PreviousStatus)},
				{"Had Data", strconv.FormatBool(cancelled.HadData)},
			})
		},
	}
}

func backgroundAPI(cmd *cobra.Command) (api.SQLBackgroundExecutionAPI, error) {
	factory, err := newFactory(newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}

	return apifactory.API[api.SQLBackgroundExecutionAPI](factory)
}

// parseExecutionID checks that id is a GUID and returns it in canonical form.
func parseExecutionID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidExecutionID, id)
	}

	return parsed.String(), nil
}

// waitForQuery polls the progress of executionID until it stops running.
func waitForQuery(ctx context.Context, background api.SQLBackgroundExecutionAPI, executionID string, interval time.Duration) (*api.BackgroundQueryProgressResponse, error) {
	ticker := time.NewTicker(max(interval, time.Millisecond))
	defer ticker.Stop()

	for {
		progress, err := background.GetProgressOf(ctx, executionID)
		if err != nil {
			return nil, err
		}

		if progress.Status.IsFinal() {
			return progress, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
