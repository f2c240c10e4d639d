package api

import (
	"fmt"

	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
	sdkhttp "github.com/fivetwenty-io/luminesce-sdk/internal/http"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// accessor implements sdk.APIAccessor for every client.
type accessor struct {
	config     *sdk.Configuration
	httpClient *sdkhttp.Client
}

func newAccessor(config *sdk.Configuration) (accessor, error) {
	if config == nil {
		return accessor{}, fmt.Errorf("%w: configuration is required", sdk.ErrInvalidConfiguration)
	}

	return accessor{
		config:     config,
		httpClient: sdkhttp.NewClient(config.BasePath, config.TokenProvider, transportOptions(config)...),
	}, nil
}

// Configuration implements sdk.APIAccessor.
func (a accessor) Configuration() *sdk.Configuration {
	return a.config
}

// BasePath implements sdk.APIAccessor.
func (a accessor) BasePath() string {
	return a.httpClient.BaseURL()
}

// transportOptions builds HTTP client options from config.
func transportOptions(config *sdk.Configuration) []sdkhttp.Option {
	opts := []sdkhttp.Option{sdkhttp.WithDefaultHeaders(config.DefaultHeaders)}

	// A shared client keeps its own timeout.
	if config.HTTPClient != nil {
		opts = append(opts, sdkhttp.WithHTTPClient(config.HTTPClient))
	} else if config.Timeout > 0 {
		opts = append(opts, sdkhttp.WithTimeout(config.Timeout))
	}

	if config.RateLimiter != nil {
		opts = append(opts, sdkhttp.WithRateLimiter(config.RateLimiter))
	}

	if config.Logger != nil {
		opts = append(opts, sdkhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, sdkhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, sdkhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax != 0 {
		retryMax := max(config.RetryMax, 0)
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, sdkhttp.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}
