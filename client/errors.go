package client

import (
	clienterrors "github.com/qwikyankit/qwiky-admin-emergent/client/internal/errors"
)

// Re-export shared SDK error types so callers compare against a single symbol.
type (
	APIError = clienterrors.APIError
	Kind     = clienterrors.Kind
)

const (
	KindServer  = clienterrors.KindServer
	KindNetwork = clienterrors.KindNetwork
	KindRequest = clienterrors.KindRequest
	KindStore   = clienterrors.KindStore
)

// NetworkErrorMessage is the message carried by every network-kind error.
const NetworkErrorMessage = clienterrors.NetworkMessage

// ErrorMessage returns a single display-ready line for err: the message
// derived when the failure was classified, else err's own text, else a
// generic fallback. It never returns an empty string.
func ErrorMessage(err error) string { return clienterrors.Message(err) }

// IsServerError reports whether the server answered with a non-2xx status.
func IsServerError(err error) bool { return clienterrors.IsKind(err, KindServer) }

// IsNetworkError reports whether the request was sent but no response arrived.
func IsNetworkError(err error) bool { return clienterrors.IsKind(err, KindNetwork) }

// IsRequestError reports whether the request failed before it was sent.
func IsRequestError(err error) bool { return clienterrors.IsKind(err, KindRequest) }

// IsStoreError reports whether the token store failed.
func IsStoreError(err error) bool { return clienterrors.IsKind(err, KindStore) }

// StatusCode returns the HTTP status of a server error, or 0.
func StatusCode(err error) int {
	if apiErr, ok := clienterrors.As(err); ok {
		return apiErr.StatusCode
	}
	return 0
}
