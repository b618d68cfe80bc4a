package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// NetworkMessage is shown when a request was sent and nothing came back.
	NetworkMessage = "Network error. Please check your connection."
	// RequestFallbackMessage is used when a construction failure has no text of its own.
	RequestFallbackMessage = "Request failed"
	// UnexpectedMessage is the last resort of Message.
	UnexpectedMessage = "An unexpected error occurred"
)

// errorBody is the subset of the server's error payload we read.
// Values are decoded loosely; only non-empty strings count.
type errorBody struct {
	Detail  any `json:"detail"`
	Message any `json:"message"`
}

// NewServerError classifies a non-2xx response. The message prefers the
// body's "detail", then "message", then "Error: <status>".
func NewServerError(statusCode int, body []byte) *APIError {
	return &APIError{
		Kind:       KindServer,
		StatusCode: statusCode,
		Message:    serverMessage(statusCode, body),
		Body:       body,
		Underlying: fmt.Errorf("unexpected status %d", statusCode),
	}
}

// NewNetworkError classifies a request that was sent without a response.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind:       KindNetwork,
		Message:    NetworkMessage,
		Underlying: err,
	}
}

// NewRequestError classifies a failure before the request left the process.
func NewRequestError(err error) *APIError {
	msg := ""
	if err != nil {
		msg = singleLine(err.Error())
	}
	if msg == "" {
		msg = RequestFallbackMessage
	}
	return &APIError{
		Kind:       KindRequest,
		Message:    msg,
		Underlying: err,
	}
}

// NewStoreError wraps a token store failure for the operation op.
func NewStoreError(op string, err error) *APIError {
	return &APIError{
		Kind:       KindStore,
		Message:    fmt.Sprintf("token store %s failed", op),
		Underlying: err,
	}
}

// Message returns a display-ready string for any error. It never returns "".
func Message(err error) string {
	if err == nil {
		return UnexpectedMessage
	}
	if apiErr, ok := As(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := singleLine(err.Error()); msg != "" {
		return msg
	}
	return UnexpectedMessage
}

func serverMessage(statusCode int, body []byte) string {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		if s := nonEmptyString(eb.Detail); s != "" {
			return s
		}
		if s := nonEmptyString(eb.Message); s != "" {
			return s
		}
	}
	return fmt.Sprintf("Error: %d", statusCode)
}

func nonEmptyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return singleLine(s)
}

// singleLine collapses newlines so the message fits on one line.
func singleLine(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
