package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Header names.
const (
	// ApplicationHeader identifies the calling application on every request.
	ApplicationHeader = "X-LUSID-Application"

	// SDKLanguageHeader and SDKVersionHeader identify the SDK build.
	SDKLanguageHeader = "X-LUSID-Sdk-Language"
	SDKVersionHeader  = "X-LUSID-Sdk-Version"

	// DefaultUserAgent is sent when the configuration does not override it.
	DefaultUserAgent = "luminesce-sdk-go"
)

// SDK identity.
const (
	// SDKLanguage is reported in SDKLanguageHeader.
	SDKLanguage = "go"

	// SDKVersion is reported in SDKVersionHeader.
	SDKVersion = "2.0.0"
)

// Default OAuth2 scopes.
const (
	// DefaultScope is requested when the secrets do not list any scopes.
	DefaultScope = "openid"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Environment variable names for secrets overrides.
const (
	// EnvPrefix is the prefix viper uses for secrets overrides, e.g. FBN_TOKEN_URL.
	EnvPrefix = "FBN"

	// DefaultSecretsFile is looked up in the working directory when no path is given.
	DefaultSecretsFile = "secrets.json"
)

// MaskedSecret is used to hide sensitive information.
const MaskedSecret = "***"
