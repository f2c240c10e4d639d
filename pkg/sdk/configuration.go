package sdk

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// TokenProvider supplies bearer tokens for outgoing requests. Implementations
// own any caching or refresh policy; callers invoke GetToken on every request.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context) (string, error)

// GetToken implements TokenProvider.
func (f TokenProviderFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Refresher is implemented by token providers that can discard a rejected
// token and obtain a new one.
type Refresher interface {
	RefreshToken(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// APIAccessor is implemented by every generated API client. Domain capability
// interfaces embed it so that any client can report the configuration it was
// built from.
type APIAccessor interface {
	Configuration() *Configuration
	BasePath() string
}

// Configuration is shared by every client built by an API factory.
type Configuration struct {
	// BasePath is the absolute URL of the API, e.g. "https://example.lusid.com/honeycomb".
	BasePath string
	// DefaultHeaders are added to every request.
	DefaultHeaders map[string]string
	// TokenProvider authenticates requests. When nil, requests are sent without
	// an Authorization header.
	TokenProvider TokenProvider

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Timeout bounds a single HTTP attempt. Zero uses the transport default.
	Timeout time.Duration
	// RetryMax is the maximum number of retries for 5xx, 429 and connection
	// errors. Zero uses the transport default; a negative value disables retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Debug enables request/response logging when Logger is set.
	Debug bool
	// Logger receives transport logs.
	Logger Logger
	// HTTPClient, when set, is the underlying client shared by every API client.
	HTTPClient *http.Client
	// RateLimiter, when set, throttles requests of every API client.
	RateLimiter *rate.Limiter
}

// NewConfiguration creates a configuration for basePath authenticated by provider.
func NewConfiguration(basePath string, provider TokenProvider) *Configuration {
	return &Configuration{
		BasePath:       basePath,
		DefaultHeaders: make(map[string]string),
		TokenProvider:  provider,
	}
}

// AddDefaultHeader sets a header sent with every request.
func (c *Configuration) AddDefaultHeader(key, value string) {
	if c.DefaultHeaders == nil {
		c.DefaultHeaders = make(map[string]string)
	}

	c.DefaultHeaders[key] = value
}
