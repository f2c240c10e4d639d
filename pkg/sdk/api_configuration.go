package sdk

import (
	"fmt"
	"net/url"
)

// APIConfiguration holds the endpoint and credential values usually sourced
// from a secrets file. It is turned into a Configuration by
// apifactory.NewConfiguration.
type APIConfiguration struct {
	// TokenURL is the OAuth2 token endpoint.
	TokenURL string `json:"tokenUrl" yaml:"tokenUrl"`
	// APIURL is the base URL of the Luminesce API.
	APIURL string `json:"apiUrl" yaml:"apiUrl"`
	// ApplicationName is sent in the X-LUSID-Application header.
	ApplicationName string `json:"applicationName" yaml:"applicationName"`

	ClientID     string   `json:"clientId"     yaml:"clientId"`
	ClientSecret string   `json:"clientSecret" yaml:"clientSecret"`
	Username     string   `json:"username"     yaml:"username"`
	Password     string   `json:"password"     yaml:"password"`
	Scopes       []string `json:"scopes"       yaml:"scopes"`

	// PersonalAccessToken, when set, is used as a static bearer token instead
	// of running the OAuth2 flow.
	PersonalAccessToken string `json:"personalAccessToken" yaml:"personalAccessToken"`
}

// Validate checks that both endpoints are present and are absolute URLs. The
// token URL is checked first.
func (c *APIConfiguration) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: api configuration is required", ErrInvalidConfiguration)
	}

	if c.TokenURL == "" {
		return fmt.Errorf("%w: token URL is required", ErrInvalidConfiguration)
	}

	if c.APIURL == "" {
		return fmt.Errorf("%w: API URL is required", ErrInvalidConfiguration)
	}

	if !IsAbsoluteURL(c.TokenURL) {
		return fmt.Errorf("%w: invalid token URL: %s", ErrInvalidURL, c.TokenURL)
	}

	if !IsAbsoluteURL(c.APIURL) {
		return fmt.Errorf("%w: invalid API URL: %s", ErrInvalidURL, c.APIURL)
	}

	return nil
}

// IsAbsoluteURL reports whether raw parses as a URL with both a scheme and a host.
func IsAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return parsed.IsAbs() && parsed.Host != ""
}
