package client

import "github.com/qwikyankit/qwiky-admin-emergent/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	Record            = types.Record
	PageInfo          = types.PageInfo
	PaginatedResponse = types.PaginatedResponse
)

// AsRecord returns a decoded reply as a Record when it is a JSON object.
func AsRecord(v any) (Record, bool) { return types.AsRecord(v) }

// Errors re-exported in errors.go
