package adapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-notes-sync/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	statusErr := &StatusError{
		StatusCode: resp.StatusCode(),
		Messages:   errorMessages(resp.Body()),
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		statusErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		statusErr.kind = ErrUnauthorized
	case http.StatusNotFound:
		statusErr.kind = ErrNotFound
	case http.StatusConflict:
		statusErr.kind = ErrConflict
	case http.StatusRequestEntityTooLarge:
		statusErr.kind = ErrPayloadTooLarge
	case http.StatusServiceUnavailable:
		statusErr.kind = ErrBusy
		statusErr.RetryAfter = parseRetryAfter(resp.Header().Get("Retry-After"))
	case http.StatusInternalServerError:
		statusErr.kind = ErrInternalServerError
	default:
		statusErr.kind = ErrUnexpectedStatus
	}

	return statusErr
}

// errorMessages extracts the messages of a JSON error body. A body in any
// other shape is returned whole.
func errorMessages(body []byte) []string {
	if len(body) == 0 {
		return nil
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Errors) > 0 {
		return errResp.Errors
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return []string{text}
	}
	return nil
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
