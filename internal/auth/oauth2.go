package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// OAuth2Config configures an OAuth2TokenProvider.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	// Username and Password select the password grant. Without them the
	// client_credentials grant is used.
	Username string
	Password string
	Scopes   []string
	// HTTPClient is used for token requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OAuth2TokenProvider obtains tokens from an OAuth2 token endpoint on first use
// and again whenever the stored token is about to expire.
type OAuth2TokenProvider struct {
	config *OAuth2Config
	store  *TokenStore
	mutex  sync.Mutex
}

// NewOAuth2TokenProvider creates a provider. No request is made until GetToken is called.
func NewOAuth2TokenProvider(config *OAuth2Config) *OAuth2TokenProvider {
	return &OAuth2TokenProvider{
		config: config,
		store:  NewTokenStore(),
	}
}

// GetToken implements sdk.TokenProvider.
func (p *OAuth2TokenProvider) GetToken(ctx context.Context) (string, error) {
	token := p.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Another caller may have fetched while we waited.
	token = p.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := p.fetch(ctx, token)
	if err != nil {
		return "", err
	}

	p.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken implements sdk.Refresher. It discards the current access token
// and obtains a new one, using the refresh token when one was issued.
func (p *OAuth2TokenProvider) RefreshToken(ctx context.Context) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	token, err := p.fetch(ctx, p.store.Get())
	if err != nil {
		return err
	}

	p.store.Set(token)

	return nil
}

func (p *OAuth2TokenProvider) fetch(ctx context.Context, previous *Token) (*Token, error) {
	if p.config == nil || p.config.TokenURL == "" {
		return nil, fmt.Errorf("%w: no token URL configured", sdk.ErrAuthFailure)
	}

	if p.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.config.HTTPClient)
	}

	if previous != nil && previous.RefreshToken != "" {
		token, err := p.passwordConfig().TokenSource(ctx, &oauth2.Token{
			RefreshToken: previous.RefreshToken,
			Expiry:       time.Now().Add(-time.Minute),
		}).Token()
		if err == nil {
			return newToken(token), nil
		}

		// The refresh token is dead; start over with the configured grant.
		p.store.Clear()
	}

	var (
		token *oauth2.Token
		err   error
	)

	if p.config.Username != "" && p.config.Password != "" {
		token, err = p.passwordConfig().PasswordCredentialsToken(ctx, p.config.Username, p.config.Password)
	} else {
		token, err = p.clientCredentialsConfig().Token(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: requesting token from %s: %w", sdk.ErrAuthFailure, p.config.TokenURL, err)
	}

	return newToken(token), nil
}

func newToken(token *oauth2.Token) *Token {
	return &Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}
}

func (p *OAuth2TokenProvider) passwordConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: p.config.TokenURL},
		Scopes:       p.config.Scopes,
	}
}

func (p *OAuth2TokenProvider) clientCredentialsConfig() *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		TokenURL:     p.config.TokenURL,
		Scopes:       p.config.Scopes,
	}
}
