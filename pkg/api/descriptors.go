package api

import (
	"slices"
	"sync"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// Compile-time interface checks.
var (
	_ SQLExecutionAPI                = (*SQLExecutionClient)(nil)
	_ SQLBackgroundExecutionAPI      = (*SQLBackgroundExecutionClient)(nil)
	_ CurrentTableFieldCatalogAPI    = (*CurrentTableFieldCatalogClient)(nil)
	_ HistoricallyExecutedQueriesAPI = (*HistoricallyExecutedQueriesClient)(nil)
)

var descriptors = sync.OnceValue(func() []sdk.Descriptor {
	return []sdk.Descriptor{
		sdk.Describe[SQLExecutionAPI](NewSQLExecutionClient),
		sdk.Describe[SQLBackgroundExecutionAPI](NewSQLBackgroundExecutionClient),
		sdk.Describe[CurrentTableFieldCatalogAPI](NewCurrentTableFieldCatalogClient),
		sdk.Describe[HistoricallyExecutedQueriesAPI](NewHistoricallyExecutedQueriesClient),
	}
})

// Descriptors returns one descriptor per client in this package. The table is
// built once; callers receive a copy.
func Descriptors() []sdk.Descriptor {
	return slices.Clone(descriptors())
}
