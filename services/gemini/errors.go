package gemini

import "fmt"

// ProviderError represents a failed or malformed exchange with the Gemini API.
type ProviderError struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gemini %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("gemini %s: %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is worth retrying upstream.
// Retries belong to a surrounding resilience layer, not this client.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func newProviderError(code, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}
