package sam

import (
	"fmt"
	"github.com/pkg/errors"
)

var (
	ErrMissingAPIKey         = errors.New("SAM API key is not configured, please set the SAM_API_KEY environment variable")
	ErrInvalidResponseFormat = errors.New("invalid response format from SAM API")
	ErrFetchFailed           = errors.New("failed to fetch opportunities from SAM API")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("SAM API request failed with status %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

func isRecognized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) ||
		errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidResponseFormat) ||
		errors.Is(err, ErrFetchFailed) ||
		errors.Is(err, ErrInvalidParameters)
}

func fetchFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrFetchFailed, cause)
}
