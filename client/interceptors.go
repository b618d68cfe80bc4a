package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qwikyankit/qwiky-admin-emergent/client/internal/api"
	clienterrors "github.com/qwikyankit/qwiky-admin-emergent/client/internal/errors"
)

const requestIDHeader = "X-Request-ID"

// authorize runs before every request sent through c.http.
//
// It refreshes the token cache from the store (a failed or empty read keeps
// the cached value), then sets "Authorization: Bearer <token>" when the cached
// token is non-empty. The store read finishes before the header is chosen, so
// a freshly persisted token is used on the same request.
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	if token, found, err := c.store.Get(ctx, TokenKey); err != nil {
		tokenStoreFailuresTotal.WithLabelValues("get").Inc()
		log.Debug().Err(err).Msg("token store read failed; keeping cached token")
	} else if found && token != "" {
		c.tokens.Store(token)
	}

	if token := c.tokens.Load(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	} else {
		req.Header.Del("Authorization")
	}

	if req.Header.Get(requestIDHeader) == "" {
		req.SetHeader(requestIDHeader, uuid.NewString())
	}
	return nil
}

// classify turns the outcome of one Execute into nil or an *APIError.
//
// Priority: a response with a non-2xx status is a server error; an error
// with a response shell but no HTTP response is a network error (the request
// was handed to the transport); an error with no response at all failed
// before sending.
func classify(resp *resty.Response, err error) error {
	switch {
	case err != nil && resp == nil:
		return clienterrors.NewRequestError(err)
	case err != nil && resp.RawResponse == nil:
		return clienterrors.NewNetworkError(err)
	case err != nil:
		// Status line arrived but the body could not be read.
		if !resp.IsSuccess() {
			return clienterrors.NewServerError(resp.StatusCode(), resp.Body())
		}
		return clienterrors.NewNetworkError(err)
	case !resp.IsSuccess():
		return clienterrors.NewServerError(resp.StatusCode(), resp.Body())
	default:
		return nil
	}
}

// caller adapts Client to api.Caller.
type caller struct{ c *Client }

func (a caller) Call(ctx context.Context, r api.Request) ([]byte, error) {
	req := a.c.http.R().SetContext(ctx)
	if len(r.Query) > 0 {
		req.SetQueryParamsFromValues(r.Query)
	}

	start := time.Now()
	resp, err := req.Execute(r.Method, r.Path)
	if cerr := classify(resp, err); cerr != nil {
		outcome := "unknown"
		if apiErr, ok := clienterrors.As(cerr); ok {
			outcome = apiErr.Kind.String()
		}
		requestsTotal.WithLabelValues(r.Operation, outcome).Inc()
		log.Debug().
			Err(cerr).
			Str("operation", r.Operation).
			Str("method", r.Method).
			Str("path", r.Path).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Dur("elapsed", time.Since(start)).
			Msg("admin api call failed")
		return nil, cerr
	}

	requestsTotal.WithLabelValues(r.Operation, "success").Inc()
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}
	return resp.Body(), nil
}
