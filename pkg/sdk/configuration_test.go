package sdk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

func TestNewConfiguration(t *testing.T) {
	t.Parallel()

	provider := sdk.TokenProviderFunc(func(ctx context.Context) (string, error) {
		return "token", nil
	})

	config := sdk.NewConfiguration("https://example.lusid.com/honeycomb", provider)
	assert.Equal(t, "https://example.lusid.com/honeycomb", config.BasePath)
	assert.Empty(t, config.DefaultHeaders)

	token, err := config.TokenProvider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	config.AddDefaultHeader("X-LUSID-Application", "demo")
	assert.Equal(t, map[string]string{"X-LUSID-Application": "demo"}, config.DefaultHeaders)

	empty := &sdk.Configuration{}
	empty.AddDefaultHeader("X-Test", "1")
	assert.Equal(t, "1", empty.DefaultHeaders["X-Test"])
}

func TestAPIConfiguration_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *sdk.APIConfiguration {
		return &sdk.APIConfiguration{
			TokenURL: "https://example.identity.com/oauth2/token",
			APIURL:   "https://example.lusid.com/honeycomb",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*sdk.APIConfiguration) *sdk.APIConfiguration
		wantErr error
		wantMsg string
	}{
		{
			name:   "valid",
			mutate: func(c *sdk.APIConfiguration) *sdk.APIConfiguration { return c },
		},
		{
			name:    "nil",
			mutate:  func(*sdk.APIConfiguration) *sdk.APIConfiguration { return nil },
			wantErr: sdk.ErrInvalidConfiguration,
		},
		{
			name: "missing token URL",
			mutate: func(c *sdk.APIConfiguration) *sdk.APIConfiguration {
				c.TokenURL = ""

				return c
			},
			wantErr: sdk.ErrInvalidConfiguration,
			wantMsg: "token URL is required",
		},
		{
			name: "missing API URL",
			mutate: func(c *sdk.APIConfiguration) *sdk.APIConfiguration {
				c.APIURL = ""

				return c
			},
			wantErr: sdk.ErrInvalidConfiguration,
			wantMsg: "API URL is required",
		},
		{
			name: "token URL checked first",
			mutate: func(c *sdk.APIConfiguration) *sdk.APIConfiguration {
				c.TokenURL = "not a url"
				c.APIURL = "also not a url"

				return c
			},
			wantErr: sdk.ErrInvalidURL,
			wantMsg: "invalid token URL: not a url",
		},
		{
			name: "relative API URL",
			mutate: func(c *sdk.APIConfiguration) *sdk.APIConfiguration {
				c.APIURL = "honeycomb/api"

				return c
			},
			wantErr: sdk.ErrInvalidURL,
			wantMsg: "invalid API URL: honeycomb/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.mutate(valid()).Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	t.Parallel()

	assert.True(t, sdk.IsAbsoluteURL("https://example.lusid.com/honeycomb"))
	assert.True(t, sdk.IsAbsoluteURL("http://localhost:8080"))
	assert.False(t, sdk.IsAbsoluteURL("not a url"))
	assert.False(t, sdk.IsAbsoluteURL("/honeycomb"))
	assert.False(t, sdk.IsAbsoluteURL("https://"))
	assert.False(t, sdk.IsAbsoluteURL("://missing-scheme"))
}
