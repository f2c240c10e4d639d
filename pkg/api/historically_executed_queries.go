package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// HistoricallyExecutedQueriesClient implements HistoricallyExecutedQueriesAPI.
type HistoricallyExecutedQueriesClient struct {
	accessor
}

// NewHistoricallyExecutedQueriesClient creates a new query history client.
func NewHistoricallyExecutedQueriesClient(config *sdk.Configuration) (*HistoricallyExecutedQueriesClient, error) {
	base, err := newAccessor(config)
	if err != nil {
		return nil, err
	}

	return &HistoricallyExecutedQueriesClient{accessor: base}, nil
}

// GetHistory implements HistoricallyExecutedQueriesAPI.GetHistory. The search
// runs as a background query whose progress is read with GetProgressOfHistory.
func (c *HistoricallyExecutedQueriesClient) GetHistory(ctx context.Context, opts *HistoryOptions) (*BackgroundQueryResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/api/History", opts.values())
	if err != nil {
		return nil, fmt.Errorf("searching query history: %w", err)
	}

	var started BackgroundQueryResponse

	err = json.Unmarshal(resp.Body, &started)
	if err != nil {
		return nil, fmt.Errorf("parsing history response: %w", err)
	}

	return &started, nil
}

// GetProgressOfHistory implements HistoricallyExecutedQueriesAPI.GetProgressOfHistory.
func (c *HistoricallyExecutedQueriesClient) GetProgressOfHistory(ctx context.Context, executionID string) (*BackgroundQueryProgressResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/api/History/"+url.PathEscape(executionID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting history progress: %w", err)
	}

	var progress BackgroundQueryProgressResponse

	err = json.Unmarshal(resp.Body, &progress)
	if err != nil {
		return nil, fmt.Errorf("parsing history progress: %w", err)
	}

	return &progress, nil
}

// FetchHistoryResultJSON implements HistoricallyExecutedQueriesAPI.FetchHistoryResultJSON.
func (c *HistoricallyExecutedQueriesClient) FetchHistoryResultJSON(ctx context.Context, executionID string) (string, error) {
	resp, err := c.httpClient.Get(ctx, "/api/History/"+url.PathEscape(executionID)+"/json", nil)
	if err != nil {
		return "", fmt.Errorf("fetching history result: %w", err)
	}

	return string(resp.Body), nil
}

// CancelHistory implements HistoricallyExecutedQueriesAPI.CancelHistory.
func (c *HistoricallyExecutedQueriesClient) CancelHistory(ctx context.Context, executionID string) (*BackgroundQueryCancelResponse, error) {
	resp, err := c.httpClient.Delete(ctx, "/api/History/"+url.PathEscape(executionID))
	if err != nil {
		return nil, fmt.Errorf("cancelling history search: %w", err)
	}

	var cancelled BackgroundQueryCancelResponse

	err = json.Unmarshal(resp.Body, &cancelled)
	if err != nil {
		return nil, fmt.Errorf("parsing cancel response: %w", err)
	}

	return &cancelled, nil
}
