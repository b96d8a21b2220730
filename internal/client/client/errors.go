package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoBaseURL    = errors.New("no base address configured")
)

// MsgUnavailable is shown when a request never got a response.
const MsgUnavailable = "Cannot reach server. Please try again."

// TransportError reports a request that produced no response (refused
// connection, DNS failure, timeout). It matches ErrUnavailable.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// FieldError is one entry of a validation-error list in "detail".
type FieldError struct {
	Loc  []any  `json:"loc,omitempty"`
	Msg  string `json:"msg,omitempty"`
	Type string `json:"type,omitempty"`
}

// APIError is a non-2xx response. Detail holds a string detail verbatim;
// list details land in FieldErrors.
type APIError struct {
	StatusCode  int
	Detail      string
	FieldErrors []FieldError
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Message is the server-provided text: the detail string, or the field
// error messages joined with ". ".
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Msg)
	}
	return strings.Join(msgs, ". ")
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		for _, raw := range items {
			var fe FieldError
			if err := json.Unmarshal(raw, &fe); err != nil || fe.Msg == "" {
				fe.Msg = string(raw)
			}
			apiErr.FieldErrors = append(apiErr.FieldErrors, fe)
		}
		return apiErr
	}

	apiErr.Detail = string(envelope.Detail)
	return apiErr
}

// Describe renders err for display: the connectivity message for transport
// failures, the server's own detail when there is one, fallback otherwise.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnavailable) {
		return MsgUnavailable
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
