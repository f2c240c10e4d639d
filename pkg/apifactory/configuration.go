package apifactory

import (
	"net/http"

	"github.com/fivetwenty-io/luminesce-sdk/internal/auth"
	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// NewConfiguration validates apiConfig and derives a client configuration from
// it. No request is made; the token is fetched on first use.
func NewConfiguration(apiConfig *sdk.APIConfiguration) (*sdk.Configuration, error) {
	err := apiConfig.Validate()
	if err != nil {
		return nil, err
	}

	config := sdk.NewConfiguration(apiConfig.APIURL, newTokenProvider(apiConfig))
	config.AddDefaultHeader(constants.ApplicationHeader, apiConfig.ApplicationName)

	return config, nil
}

// newTokenProvider prefers a personal access token over the OAuth2 flow.
func newTokenProvider(apiConfig *sdk.APIConfiguration) sdk.TokenProvider {
	if apiConfig.PersonalAccessToken != "" {
		return auth.NewStaticTokenProvider(apiConfig.PersonalAccessToken)
	}

	scopes := apiConfig.Scopes
	if len(scopes) == 0 {
		scopes = []string{constants.DefaultScope}
	}

	return auth.NewOAuth2TokenProvider(&auth.OAuth2Config{
		TokenURL:     apiConfig.TokenURL,
		ClientID:     apiConfig.ClientID,
		ClientSecret: apiConfig.ClientSecret,
		Username:     apiConfig.Username,
		Password:     apiConfig.Password,
		Scopes:       scopes,
		HTTPClient:   &http.Client{Timeout: constants.ShortHTTPTimeout},
	})
}
