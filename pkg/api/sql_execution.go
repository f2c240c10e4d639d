package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	sdkhttp "github.com/fivetwenty-io/luminesce-sdk/internal/http"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// SQLExecutionClient implements SQLExecutionAPI.
type SQLExecutionClient struct {
	accessor
}

// NewSQLExecutionClient creates a new SQL execution client.
func NewSQLExecutionClient(config *sdk.Configuration) (*SQLExecutionClient, error) {
	base, err := newAccessor(config)
	if err != nil {
		return nil, err
	}

	return &SQLExecutionClient{accessor: base}, nil
}

// GetByQuery implements SQLExecutionAPI.GetByQuery. The query is sent in the URL.
func (c *SQLExecutionClient) GetByQuery(ctx context.Context, format ResultFormat, sql string, opts *QueryOptions) (string, error) {
	query, err := opts.values()
	if err != nil {
		return "", fmt.Errorf("encoding query options: %w", err)
	}

	query.Set("query", sql)

	resp, err := c.httpClient.Do(ctx, &sdkhttp.Request{
		Method: http.MethodGet,
		Path:   "/api/Sql/" + url.PathEscape(string(format)),
		Query:  query,
		Accept: format.ContentType(),
	})
	if err != nil {
		return "", fmt.Errorf("executing query: %w", err)
	}

	return string(resp.Body), nil
}

// PutByQuery implements SQLExecutionAPI.PutByQuery. The query is sent as the body.
func (c *SQLExecutionClient) PutByQuery(ctx context.Context, format ResultFormat, sql string, opts *QueryOptions) (string, error) {
	query, err := opts.values()
	if err != nil {
		return "", fmt.Errorf("encoding query options: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, &sdkhttp.Request{
		Method: http.MethodPut,
		Path:   "/api/Sql/" + url.PathEscape(string(format)),
		Query:  query,
		Body:   sql,
		Accept: format.ContentType(),
	})
	if err != nil {
		return "", fmt.Errorf("executing query: %w", err)
	}

	return string(resp.Body), nil
}
