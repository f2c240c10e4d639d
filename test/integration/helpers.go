//go:build integration

package integration

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	SecretsPath string
	APIConfig   *sdk.APIConfiguration
	Verbose     bool
}

// LoadTestConfig loads configuration from LUMINESCE_SECRETS and FBN_* environment variables
func LoadTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	path := os.Getenv("LUMINESCE_SECRETS")

	apiConfig, err := sdk.LoadAPIConfiguration(path)
	require.NoError(t, err)

	return &TestConfig{
		SecretsPath: path,
		APIConfig:   apiConfig,
		Verbose:     os.Getenv("LUMINESCE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIConfig.APIURL == "" || config.APIConfig.TokenURL == "" {
		t.Skip("FBN_LUMINESCE_API_URL or FBN_TOKEN_URL not set, skipping integration test")
	}
}

// NewFactory builds an API factory from the test configuration
func (config *TestConfig) NewFactory(t *testing.T) *apifactory.Factory {
	t.Helper()

	clientConfig, err := apifactory.NewConfiguration(config.APIConfig)
	require.NoError(t, err)

	if config.Verbose {
		clientConfig.Debug = true
		clientConfig.Logger = testLogger{t: t}
	}

	factory, err := apifactory.New(clientConfig, apifactory.WithConcurrency(4))
	require.NoError(t, err)

	return factory
}

// testLogger writes SDK logs to the test log.
type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) { l.t.Logf("DEBUG %s %v", msg, fields) }
func (l testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		if condition() {
			return
		}

		select {
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		case <-ticker.C:
		}
	}
}
