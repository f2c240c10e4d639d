package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

func newTestConfiguration(baseURL string) *sdk.Configuration {
	config := sdk.NewConfiguration(baseURL, sdk.TokenProviderFunc(func(ctx context.Context) (string, error) {
		return "test-token", nil
	}))
	config.AddDefaultHeader("X-LUSID-Application", "tests")
	config.RetryMax = -1

	return config
}

func TestNewClients_RequireConfiguration(t *testing.T) {
	t.Parallel()

	_, err := NewSQLExecutionClient(nil)
	require.ErrorIs(t, err, sdk.ErrInvalidConfiguration)

	_, err = NewSQLBackgroundExecutionClient(nil)
	require.ErrorIs(t, err, sdk.ErrInvalidConfiguration)

	_, err = NewCurrentTableFieldCatalogClient(nil)
	require.ErrorIs(t, err, sdk.ErrInvalidConfiguration)

	_, err = NewHistoricallyExecutedQueriesClient(nil)
	require.ErrorIs(t, err, sdk.ErrInvalidConfiguration)
}

func TestAccessor(t *testing.T) {
	t.Parallel()

	config := newTestConfiguration("https://example.lusid.com/honeycomb/")

	client, err := NewSQLExecutionClient(config)
	require.NoError(t, err)
	assert.Same(t, config, client.Configuration())
	assert.Equal(t, "https://example.lusid.com/honeycomb", client.BasePath())
}

func TestSQLExecutionClient_GetByQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Sql/csv", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "select 1 as x", r.URL.Query().Get("query"))
		assert.Equal(t, "demo", r.URL.Query().Get("queryName"))
		assert.Equal(t, "30", r.URL.Query().Get("timeoutSeconds"))
		assert.JSONEq(t, `{"limit":"10"}`, r.URL.Query().Get("scalarParameters"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "tests", r.Header.Get("X-LUSID-Application"))
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))

		_, _ = w.Write([]byte("x\n1\n"))
	}))
	defer server.Close()

	client, err := NewSQLExecutionClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	result, err := client.GetByQuery(context.Background(), FormatCSV, "select 1 as x", &QueryOptions{
		QueryName:        "demo",
		Timeout:          30 * time.Second,
		ScalarParameters: map[string]string{"limit": "10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", result)
}

func TestSQLExecutionClient_PutByQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Sql/json", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "select * from Sys.Field limit 1", string(body))

		_, _ = w.Write([]byte(`[{"FieldName":"Name"}]`))
	}))
	defer server.Close()

	client, err := NewSQLExecutionClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	result, err := client.PutByQuery(context.Background(), FormatJSON, "select * from Sys.Field limit 1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"FieldName":"Name"}]`, result)
}

func TestSQLExecutionClient_Error(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":   "SqlSyntaxError",
			"title":  "Bad Request",
			"detail": "Unexpected token",
		})
	}))
	defer server.Close()

	client, err := NewSQLExecutionClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	_, err = client.GetByQuery(context.Background(), FormatCSV, "selec 1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected token")
}

func TestSQLBackgroundExecutionClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/SqlBackground":
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "select 1", string(body))
			_ = json.NewEncoder(w).Encode(BackgroundQueryResponse{
				ExecutionID: "exec-1",
				Progress:    &Link{Relation: "Progress", Href: "/api/SqlBackground/exec-1", Method: "GET"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/SqlBackground/exec-1":
			_ = json.NewEncoder(w).Encode(BackgroundQueryProgressResponse{
				HasData:  true,
				RowCount: 1,
				Status:   TaskStatusRanToCompletion,
				State:    "Completed",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/SqlBackground/exec-1/csv":
			_, _ = w.Write([]byte("x\n1\n"))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/SqlBackground/exec-1":
			_ = json.NewEncoder(w).Encode(BackgroundQueryCancelResponse{
				HadData:        true,
				PreviousStatus: TaskStatusRanToCompletion,
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewSQLBackgroundExecutionClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	started, err := client.StartQuery(ctx, "select 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "exec-1", started.ExecutionID)
	require.NotNil(t, started.Progress)

	progress, err := client.GetProgressOf(ctx, started.ExecutionID)
	require.NoError(t, err)
	assert.True(t, progress.HasData)
	assert.True(t, progress.Status.IsFinal())

	result, err := client.FetchQueryResult(ctx, started.ExecutionID, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", result)

	cancelled, err := client.CancelQuery(ctx, started.ExecutionID)
	require.NoError(t, err)
	assert.True(t, cancelled.HadData)
}

func TestCurrentTableFieldCatalogClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/Catalog":
			assert.Equal(t, "Sys", r.URL.Query().Get("freeTextSearch"))
			_, _ = w.Write([]byte(`[{"Name":"Sys.Field"}]`))
		case "/api/Catalog/fields":
			assert.Equal(t, "Sys.%", r.URL.Query().Get("tableLike"))
			_, _ = w.Write([]byte(`[{"FieldName":"TableName"}]`))
		case "/api/Catalog/providers":
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewCurrentTableFieldCatalogClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	catalog, err := client.GetCatalog(ctx, "Sys")
	require.NoError(t, err)
	assert.Contains(t, catalog, "Sys.Field")

	fields, err := client.GetFields(ctx, "Sys.%")
	require.NoError(t, err)
	assert.Contains(t, fields, "TableName")

	providers, err := client.GetProviders(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "[]", providers)
}

func TestHistoricallyExecutedQueriesClient(t *testing.T) {
	t.Parallel()

	startAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/History":
			assert.Equal(t, "2026-01-02T03:04:05Z", r.URL.Query().Get("startAt"))
			assert.Equal(t, "true", r.URL.Query().Get("showAll"))
			_ = json.NewEncoder(w).Encode(BackgroundQueryResponse{ExecutionID: "hist-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/History/hist-1":
			_ = json.NewEncoder(w).Encode(BackgroundQueryProgressResponse{Status: TaskStatusRunning})
		case r.Method == http.MethodGet && r.URL.Path == "/api/History/hist-1/json":
			_, _ = w.Write([]byte(`[]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/History/hist-1":
			_ = json.NewEncoder(w).Encode(BackgroundQueryCancelResponse{PreviousStatus: TaskStatusRunning})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewHistoricallyExecutedQueriesClient(newTestConfiguration(server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	started, err := client.GetHistory(ctx, &HistoryOptions{StartAt: startAt, ShowAll: true})
	require.NoError(t, err)
	assert.Equal(t, "hist-1", started.ExecutionID)

	progress, err := client.GetProgressOfHistory(ctx, "hist-1")
	require.NoError(t, err)
	assert.False(t, progress.Status.IsFinal())

	result, err := client.FetchHistoryResultJSON(ctx, "hist-1")
	require.NoError(t, err)
	assert.Equal(t, "[]", result)

	cancelled, err := client.CancelHistory(ctx, "hist-1")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusRunning, cancelled.PreviousStatus)

	_, err = client.GetProgressOfHistory(ctx, "missing")
	require.Error(t, err)
	assert.True(t, sdk.IsNotFound(err))
}
