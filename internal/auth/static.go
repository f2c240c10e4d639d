package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// StaticTokenProvider returns a fixed token, e.g. a personal access token.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken implements sdk.TokenProvider.
func (p *StaticTokenProvider) GetToken(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("%w: empty access token", sdk.ErrAuthFailure)
	}

	return p.token, nil
}

// RefreshToken implements sdk.Refresher.
func (p *StaticTokenProvider) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}
