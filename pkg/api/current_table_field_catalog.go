package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// CurrentTableFieldCatalogClient implements CurrentTableFieldCatalogAPI.
type CurrentTableFieldCatalogClient struct {
	accessor
}

// NewCurrentTableFieldCatalogClient creates a new catalog client.
func NewCurrentTableFieldCatalogClient(config *sdk.Configuration) (*CurrentTableFieldCatalogClient, error) {
	base, err := newAccessor(config)
	if err != nil {
		return nil, err
	}

	return &CurrentTableFieldCatalogClient{accessor: base}, nil
}

// GetCatalog implements CurrentTableFieldCatalogAPI.GetCatalog.
func (c *CurrentTableFieldCatalogClient) GetCatalog(ctx context.Context, freeTextSearch string) (string, error) {
	return c.get(ctx, "/api/Catalog", "freeTextSearch", freeTextSearch, "getting catalog")
}

// GetFields implements CurrentTableFieldCatalogAPI.GetFields.
func (c *CurrentTableFieldCatalogClient) GetFields(ctx context.Context, tableLike string) (string, error) {
	return c.get(ctx, "/api/Catalog/fields", "tableLike", tableLike, "getting fields")
}

// GetProviders implements CurrentTableFieldCatalogAPI.GetProviders.
func (c *CurrentTableFieldCatalogClient) GetProviders(ctx context.Context, freeTextSearch string) (string, error) {
	return c.get(ctx, "/api/Catalog/providers", "freeTextSearch", freeTextSearch, "getting providers")
}

func (c *CurrentTableFieldCatalogClient) get(ctx context.Context, path, param, value, action string) (string, error) {
	var query url.Values
	if value != "" {
		query = url.Values{param: []string{value}}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	return string(resp.Body), nil
}
