package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	clienterrors "github.com/qwikyankit/qwiky-admin-emergent/client/internal/errors"
	"github.com/qwikyankit/qwiky-admin-emergent/client/internal/types"
)

// HoodID scopes booking listings to the one hood this admin app manages.
const HoodID = "4dd4d3a6-c0b3-4042-8e01-5b9299273ee1"

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

// ListBookings fetches one page of the hood's bookings.
// A negative page becomes DefaultPage and a non-positive size DefaultPageSize.
func ListBookings(ctx context.Context, c Caller, page, size int) (*types.PaginatedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, clienterrors.NewRequestError(err)
	}
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	body, err := c.Call(ctx, Request{
		Operation: "list_bookings",
		Method:    http.MethodGet,
		Path:      "/admin/booking/hood/" + HoodID,
		Query:     q,
	})
	if err != nil {
		return nil, err
	}

	var out types.PaginatedResponse
	if err := decode("list bookings", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking cancels a booking. The server's reply is returned as decoded,
// whatever its JSON shape.
func CancelBooking(ctx context.Context, c Caller, bookingID string) (any, error) {
	return bookingAction(ctx, c, "cancel_booking", bookingID, "cancel")
}

// SettleBooking marks a booking as settled.
func SettleBooking(ctx context.Context, c Caller, bookingID string) (any, error) {
	return bookingAction(ctx, c, "settle_booking", bookingID, "settled")
}

func bookingAction(ctx context.Context, c Caller, op, bookingID, action string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, clienterrors.NewRequestError(err)
	}
	// ids go into the path verbatim; the server rejects malformed ones
	body, err := c.Call(ctx, Request{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/admin/booking/" + bookingID + "/" + action,
	})
	if err != nil {
		return nil, err
	}

	var reply any
	if err := decode(op, body, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}
