package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
)

// Closed error taxonomy for the AI adapter. Every failure leaving this
// package wraps exactly one of these; no raw transport error reaches the UI.
var (
	// ErrCredentialMissing means no API key is configured. Returned before
	// any network call is attempted.
	ErrCredentialMissing = errors.New("API key is missing")

	// ErrQuotaExceeded maps the remote rate-limit signal.
	ErrQuotaExceeded = errors.New("AI quota exceeded")

	// ErrModelUnavailable maps the remote resource-not-found signal, seen
	// with regional restrictions or a retired model name.
	ErrModelUnavailable = errors.New("AI model unavailable")

	// ErrResponseUnparseable means the model replied but its output did not
	// conform to the declared schema.
	ErrResponseUnparseable = errors.New("could not read the image clearly")

	// ErrAnalysisFailed is the catch-all for other transport or model errors.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// classify maps a transport error onto the taxonomy.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	case strings.Contains(msg, "404"), strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
}
