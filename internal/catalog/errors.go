package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. Every error returned by Client wraps exactly one of these,
// so callers classify with errors.Is.
var (
	// ErrNetwork covers transport errors and non-success statuses.
	ErrNetwork = errors.New("network failure")

	// ErrParse means the response body did not match the expected shape.
	ErrParse = errors.New("parse failure")

	// ErrValidation means the API rejected the payload semantics.
	ErrValidation = errors.New("validation failure")
)

// APIError describes a failed call against the catalog API.
type APIError struct {
	Op      string // "list", "update" or "create"
	Kind    error  // ErrNetwork, ErrParse or ErrValidation
	Status  int    // HTTP status, 0 when the request never completed
	Message string // server-provided message, if any
	Err     error  // underlying transport or decode error, if any
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("catalog ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the failure kind and the underlying cause.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the server-provided message when there is one.
func (e *APIError) UserMessage() string {
	return e.Message
}

// MessageOf extracts the server-provided message from err, if err is an
// *APIError carrying one.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// classifyStatus maps a non-success status to a failure kind.
func classifyStatus(status int) error {
	switch status {
	case 400, 422:
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// extractMessage pulls the optional "message" field out of a failure body.
// The field may be a string or a list of strings.
func extractMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}

	return ""
}
