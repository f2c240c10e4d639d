package api

import (
	"context"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// SQLExecutionAPI runs queries synchronously and returns the serialised result.
type SQLExecutionAPI interface {
	sdk.APIAccessor
	GetByQuery(ctx context.Context, format ResultFormat, sql string, opts *QueryOptions) (string, error)
	PutByQuery(ctx context.Context, format ResultFormat, sql string, opts *QueryOptions) (string, error)
}

// SQLBackgroundExecutionAPI runs queries asynchronously.
type SQLBackgroundExecutionAPI interface {
	sdk.APIAccessor
	StartQuery(ctx context.Context, sql string, opts *QueryOptions) (*BackgroundQueryResponse, error)
	GetProgressOf(ctx context.Context, executionID string) (*BackgroundQueryProgressResponse, error)
	FetchQueryResult(ctx context.Context, executionID string, format ResultFormat) (string, error)
	CancelQuery(ctx context.Context, executionID string) (*BackgroundQueryCancelResponse, error)
}

// CurrentTableFieldCatalogAPI describes the providers and fields available to queries.
type CurrentTableFieldCatalogAPI interface {
	sdk.APIAccessor
	GetCatalog(ctx context.Context, freeTextSearch string) (string, error)
	GetFields(ctx context.Context, tableLike string) (string, error)
	GetProviders(ctx context.Context, freeTextSearch string) (string, error)
}

// HistoricallyExecutedQueriesAPI searches previously executed queries.
type HistoricallyExecutedQueriesAPI interface {
	sdk.APIAccessor
	GetHistory(ctx context.Context, opts *HistoryOptions) (*BackgroundQueryResponse, error)
	GetProgressOfHistory(ctx context.Context, executionID string) (*BackgroundQueryProgressResponse, error)
	FetchHistoryResultJSON(ctx context.Context, executionID string) (string, error)
	CancelHistory(ctx context.Context, executionID string) (*BackgroundQueryCancelResponse, error)
}
