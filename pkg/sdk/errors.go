package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	// ErrInvalidConfiguration is returned when a required configuration value is absent.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidURL is returned when an endpoint is not an absolute URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrConstructionFailure is returned when a client type cannot be built or
	// registered. It indicates a packaging defect rather than a runtime condition.
	ErrConstructionFailure = errors.New("unable to construct API")
	// ErrAPINotFound is returned when looking up a type that was never registered.
	ErrAPINotFound = errors.New("unable to find API")
	// ErrTypeMismatch is returned when a registered API cannot be converted to the requested type.
	ErrTypeMismatch = errors.New("API type mismatch")
	// ErrAuthFailure is returned when a token cannot be obtained.
	ErrAuthFailure = errors.New("authentication failed")
	// ErrNoCapabilityInterface is wrapped by ErrConstructionFailure when a client
	// declares no domain capability interface.
	ErrNoCapabilityInterface = errors.New("no capability interface declared")
	// ErrDuplicateRegistration is wrapped by ErrConstructionFailure when two
	// clients resolve to the same registry key.
	ErrDuplicateRegistration = errors.New("duplicate registration")
)

// APIError is the problem-details body returned by the API on failure.
type APIError struct {
	Status       int               `json:"status"                 yaml:"status"`
	Title        string            `json:"title"                  yaml:"title"`
	Detail       string            `json:"detail"                 yaml:"detail"`
	Name         string            `json:"name"                   yaml:"name"`
	Code         int               `json:"code"                   yaml:"code"`
	Type         string            `json:"type"                   yaml:"type"`
	Instance     string            `json:"instance"               yaml:"instance"`
	ErrorDetails []map[string]any  `json:"errorDetails,omitempty" yaml:"errorDetails,omitempty"`
	Body         string            `json:"-"                      yaml:"-"`
	Headers      map[string]string `json:"-"                      yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	title := e.Title
	if title == "" {
		title = http.StatusText(e.Status)
	}

	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (status: %d)", title, e.Detail, e.Status)
	}

	if e.Body != "" && e.Name == "" {
		return fmt.Sprintf("%s: %s (status: %d)", title, e.Body, e.Status)
	}

	return fmt.Sprintf("%s (status: %d)", title, e.Status)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsServerError checks if the error is a 5xx error.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}

	return false
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}
