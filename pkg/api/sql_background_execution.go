package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	sdkhttp "github.com/fivetwenty-io/luminesce-sdk/internal/http"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// SQLBackgroundExecutionClient implements SQLBackgroundExecutionAPI.
type SQLBackgroundExecutionClient struct {
	accessor
}

// NewSQLBackgroundExecutionClient creates a new background execution client.
func NewSQLBackgroundExecutionClient(config *sdk.Configuration) (*SQLBackgroundExecutionClient, error) {
	base, err := newAccessor(config)
	if err != nil {
		return nil, err
	}

	return &SQLBackgroundExecutionClient{accessor: base}, nil
}

// StartQuery implements SQLBackgroundExecutionAPI.StartQuery.
func (c *SQLBackgroundExecutionClient) StartQuery(ctx context.Context, sql string, opts *QueryOptions) (*BackgroundQueryResponse, error) {
	query, err := opts.values()
	if err != nil {
		return nil, fmt.Errorf("encoding query options: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, &sdkhttp.Request{
		Method: http.MethodPut,
		Path:   "/api/SqlBackground",
		Query:  query,
		Body:   sql,
	})
	if err != nil {
		return nil, fmt.Errorf("starting background query: %w", err)
	}

	var started BackgroundQueryResponse

	err = json.Unmarshal(resp.Body, &started)
	if err != nil {
		return nil, fmt.Errorf("parsing background query response: %w", err)
	}

	return &started, nil
}

// GetProgressOf implements SQLBackgroundExecutionAPI.GetProgressOf.
func (c *SQLBackgroundExecutionClient) GetProgressOf(ctx context.Context, executionID string) (*BackgroundQueryProgressResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/api/SqlBackground/"+url.PathEscape(executionID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting query progress: %w", err)
	}

	var progress BackgroundQueryProgressResponse

	err = json.Unmarshal(resp.Body, &progress)
	if err != nil {
		return nil, fmt.Errorf("parsing query progress: %w", err)
	}

	return &progress, nil
}

// FetchQueryResult implements SQLBackgroundExecutionAPI.FetchQueryResult.
func (c *SQLBackgroundExecutionClient) FetchQueryResult(ctx context.Context, executionID string, format ResultFormat) (string, error) {
	resp, err := c.httpClient.Do(ctx, &sdkhttp.Request{
		Method: http.MethodGet,
		Path:   "/api/SqlBackground/" + url.PathEscape(executionID) + "/" + url.PathEscape(string(format)),
		Accept: format.ContentType(),
	})
	if err != nil {
		return "", fmt.Errorf("fetching query result: %w", err)
	}

	return string(resp.Body), nil
}

// CancelQuery implements SQLBackgroundExecutionAPI.CancelQuery.
func (c *SQLBackgroundExecutionClient) CancelQuery(ctx context.Context, executionID string) (*BackgroundQueryCancelResponse, error) {
	resp, err := c.httpClient.Delete(ctx, "/api/SqlBackground/"+url.PathEscape(executionID))
	if err != nil {
		return nil, fmt.Errorf("cancelling query: %w", err)
	}

	var cancelled BackgroundQueryCancelResponse

	err = json.Unmarshal(resp.Body, &cancelled)
	if err != nil {
		return nil, fmt.Errorf("parsing cancel response: %w", err)
	}

	return &cancelled, nil
}
