package api

import (
	"context"
	"net/http"

	clienterrors "github.com/qwikyankit/qwiky-admin-emergent/client/internal/errors"
)

// GetUser retrieves a user by ID. The reply is returned as decoded.
func GetUser(ctx context.Context, c Caller, userID string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, clienterrors.NewRequestError(err)
	}
	// ids go into the path verbatim; the server rejects malformed ones
	body, err := c.Call(ctx, Request{
		Operation: "get_user",
		Method:    http.MethodGet,
		Path:      "/user/" + userID,
	})
	if err != nil {
		return nil, err
	}

	var user any
	if err := decode("get user", body, &user); err != nil {
		return nil, err
	}
	return user, nil
}
