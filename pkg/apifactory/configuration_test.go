package apifactory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/luminesce-sdk/internal/auth"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

func TestNewConfiguration(t *testing.T) {
	t.Parallel()

	config, err := apifactory.NewConfiguration(&sdk.APIConfiguration{
		TokenURL:        "https://example.identity.com/oauth2/token",
		APIURL:          "https://example.lusid.com/honeycomb",
		ApplicationName: "demo",
		Username:        "user@example.com",
		Password:        "hunter2",
		ClientID:        "client",
		ClientSecret:    "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.lusid.com/honeycomb", config.BasePath)
	assert.Equal(t, map[string]string{"X-LUSID-Application": "demo"}, config.DefaultHeaders)
	assert.IsType(t, &auth.OAuth2TokenProvider{}, config.TokenProvider)
	assert.Implements(t, (*sdk.Refresher)(nil), config.TokenProvider)
}

func TestNewConfiguration_PersonalAccessToken(t *testing.T) {
	t.Parallel()

	config, err := apifactory.NewConfiguration(&sdk.APIConfiguration{
		TokenURL:            "https://example.identity.com/oauth2/token",
		APIURL:              "https://example.lusid.com/honeycomb",
		PersonalAccessToken: "pat",
	})
	require.NoError(t, err)
	assert.IsType(t, &auth.StaticTokenProvider{}, config.TokenProvider)
}

func TestNewConfiguration_Invalid(t *testing.T) {
	t.Parallel()

	_, err := apifactory.NewConfiguration(nil)
	require.ErrorIs(t, err, sdk.ErrInvalidConfiguration)

	_, err = apifactory.NewConfiguration(&sdk.APIConfiguration{
		TokenURL: "not a url",
		APIURL:   "https://example.lusid.com/honeycomb",
	})
	require.ErrorIs(t, err, sdk.ErrInvalidURL)
	assert.Contains(t, err.Error(), "not a url")
}
