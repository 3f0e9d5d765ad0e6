package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"reservationsClient/internal/shared/normalization"
)

var (
	// ErrUnauthorized matches API errors caused by 401/403 responses.
	ErrUnauthorized = errors.New("api unauthorized")
	// ErrNotFound matches API errors caused by 404 responses.
	ErrNotFound = errors.New("api resource not found")
	// ErrUnexpectedStatus matches any non-2xx response.
	ErrUnexpectedStatus = errors.New("api unexpected status")
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4096

// APIError is the single error surfaced for a failed REST call. Message is already
// human readable and is what callers display.
type APIError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets callers test the status category with errors.Is.
func (e *APIError) Is(target error) bool {
	if e == nil || e.Status == 0 {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnexpectedStatus:
		return e.Status < 200 || e.Status > 299
	}
	return false
}

// NewResponseError builds the error for a non-2xx response: backend message, else status
// text, else fallback.
func NewResponseError(op string, status int, body []byte, fallback string) *APIError {
	message := MessageFromBody(body)
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fallback
	}
	return &APIError{
		Op:      op,
		Status:  status,
		Message: message,
		Err:     fmt.Errorf("%w: %d", ErrUnexpectedStatus, status),
	}
}

// NewTransportError wraps a failure that produced no response at all.
func NewTransportError(op string, err error, fallback string) *APIError {
	return &APIError{Op: op, Message: fallback, Err: err}
}

// ReadErrorBody drains at most maxErrorBody bytes of an error response.
func ReadErrorBody(res *http.Response) []byte {
	if res == nil || res.Body == nil {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return body
}

// MessageFromBody extracts a backend provided message from an error payload, preferring
// message, then title, then error, then the joined validation errors.
func MessageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return ""
	}
	return MessageFromPayload(payload)
}

// MessageFromPayload is MessageFromBody over an already decoded payload.
func MessageFromPayload(payload any) string {
	raw, ok := payload.(map[string]any)
	if !ok {
		if text, ok := payload.(string); ok {
			return strings.TrimSpace(text)
		}
		return ""
	}
	for _, key := range []string{"message", "title", "error"} {
		value, ok := normalization.Lookup(raw, key)
		if !ok {
			continue
		}
		if text := normalization.AsString(value); text != "" {
			return text
		}
		if nested, ok := value.(map[string]any); ok {
			if text := MessageFromPayload(nested); text != "" {
				return text
			}
		}
	}
	if value, ok := normalization.Lookup(raw, "errors"); ok {
		return joinValidationErrors(value)
	}
	return ""
}

func joinValidationErrors(value any) string {
	messages := make([]string, 0)
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			messages = append(messages, flattenMessages(typed[key])...)
		}
	default:
		messages = append(messages, flattenMessages(typed)...)
	}
	return strings.Join(messages, ", ")
}

func flattenMessages(value any) []string {
	switch typed := value.(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return []string{trimmed}
		}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, flattenMessages(item)...)
		}
		return out
	case map[string]any:
		if text := normalization.StringField(typed, "description", "message", "errorMessage"); text != "" {
			return []string{text}
		}
	}
	return nil
}
