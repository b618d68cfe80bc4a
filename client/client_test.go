package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/qwikyankit/qwiky-admin-emergent/client"
	"github.com/qwikyankit/qwiky-admin-emergent/internal/fakeapi"
	"github.com/qwikyankit/qwiky-admin-emergent/pkg/kvstore"
)

func newClient(t *testing.T, origin string, opts ...client.Option) *client.Client {
	t.Helper()
	c, err := client.New(origin, kvstore.NewMemory(), opts...)
	require.NoError(t, err)
	return c
}

func TestClient_FetchBookings_Scenario(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()
	srv.AddBooking("b1", map[string]any{"userId": "u1", "amount": 499.5, "slot": map[string]any{"start": "10:00"}})
	srv.AddBooking("b2", map[string]any{"userId": "u2"})

	c := newClient(t, srv.URL)
	got, err := c.FetchBookings(context.Background(), 0, 20)
	require.NoError(t, err)

	last := srv.Last()
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/api/admin/booking/hood/4dd4d3a6-c0b3-4042-8e01-5b9299273ee1", last.Path)
	assert.Equal(t, "page=0&size=20", last.RawQuery)

	require.Len(t, got.Items, 2)
	assert.Equal(t, client.Record{"id": "b1", "status": "CONFIRMED", "userId": "u1", "amount": 499.5, "slot": map[string]any{"start": "10:00"}}, got.Items[0])
	assert.Equal(t, client.PageInfo{Size: 20, TotalElements: 2, TotalPages: 1, Number: 0}, got.Page)
}

func TestClient_CancelBooking_Scenario(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()
	srv.AddBooking("abc", nil)

	c := newClient(t, srv.URL)
	rec, err := c.CancelBooking(context.Background(), "abc")
	require.NoError(t, err)

	last := srv.Last()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/api/admin/booking/abc/cancel", last.Path)
	assert.Equal(t, "", last.RawQuery)
	assert.Equal(t, int64(0), last.BodyLen)
	assert.Equal(t, map[string]any{"id": "abc", "status": fakeapi.StatusCancelled}, rec)
}

func TestClient_SettleBooking(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()
	srv.AddBooking("b9", nil)

	c := newClient(t, srv.URL)
	rec, err := c.SettleBooking(context.Background(), "b9")
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/booking/b9/settled", srv.Last().Path)
	booking, ok := client.AsRecord(rec)
	require.True(t, ok)
	assert.Equal(t, fakeapi.StatusSettled, booking.String("status"))
}

func TestClient_FetchUserDetails(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()
	srv.AddUser("u1", map[string]any{"name": "Kavya", "phone": "+91 98000 00000"})

	c := newClient(t, srv.URL)
	u, err := c.FetchUserDetails(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "/api/user/u1", srv.Last().Path)
	user, ok := client.AsRecord(u)
	require.True(t, ok)
	assert.Equal(t, "Kavya", user.String("name"))
}

func TestClient_ServerErrorMessages(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()
	srv.AddBooking("done", nil)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	// message field
	_, err := c.FetchUserDetails(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, client.IsServerError(err))
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
	assert.Equal(t, "User not found", client.ErrorMessage(err))

	// detail field
	_, err = c.CancelBooking(ctx, "done")
	require.NoError(t, err)
	_, err = c.SettleBooking(ctx, "done")
	require.Error(t, err)
	assert.Equal(t, "Booking is already CANCELLED", client.ErrorMessage(err))

	// detail wins over message on auth failure
	srv.RequireToken("expected")
	_, err = c.FetchBookings(ctx, 0, 20)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	assert.Equal(t, "Not authenticated", client.ErrorMessage(err))
}

func TestClient_ServerErrorWithoutMessage(t *testing.T) {
	t.Parallel()
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer hs.Close()

	c := newClient(t, hs.URL)
	_, err := c.FetchBookings(context.Background(), 0, 20)
	require.Error(t, err)
	assert.Equal(t, "Error: 503", client.ErrorMessage(err))
}

func TestClient_NonObjectRepliesReturnedAsDecoded(t *testing.T) {
	t.Parallel()
	replies := map[string]string{
		"/api/admin/booking/abc/cancel":  `"Booking cancelled successfully"`,
		"/api/admin/booking/abc/settled": `true`,
		"/api/user/u1":                   `["u1",7]`,
	}
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(replies[r.URL.Path]))
	}))
	defer hs.Close()

	c := newClient(t, hs.URL)
	ctx := context.Background()

	reply, err := c.CancelBooking(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Booking cancelled successfully", reply)
	_, isRecord := client.AsRecord(reply)
	assert.False(t, isRecord)

	reply, err = c.SettleBooking(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, true, reply)

	reply, err = c.FetchUserDetails(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []any{"u1", float64(7)}, reply)
}

func TestClient_IdentifiersSentVerbatim(t *testing.T) {
	t.Parallel()
	var paths []string
	var mu sync.Mutex
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer hs.Close()

	c := newClient(t, hs.URL)
	_, err := c.CancelBooking(context.Background(), "a/b")
	require.Error(t, err)
	assert.True(t, client.IsServerError(err))
	assert.Equal(t, "Error: 404", client.ErrorMessage(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/admin/booking/a/b/cancel"}, paths)
}

func TestClient_NetworkError_Unreachable(t *testing.T) {
	t.Parallel()
	hs := httptest.NewServer(http.NotFoundHandler())
	origin := hs.URL
	hs.Close() // nothing listens on origin now

	c := newClient(t, origin)
	_, err := c.CancelBooking(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, client.IsNetworkError(err))
	assert.Equal(t, "Network error. Please check your connection.", client.ErrorMessage(err))
}

func TestClient_NetworkError_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer hs.Close()
	defer close(release)

	c := newClient(t, hs.URL, client.WithHTTPTimeout(50*time.Millisecond))
	_, err := c.FetchUserDetails(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, client.IsNetworkError(err))
	assert.Equal(t, client.NetworkErrorMessage, client.ErrorMessage(err))
}

func TestClient_RequestError_BeforeSend(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()

	c := newClient(t, srv.URL)
	c.HTTP().OnBeforeRequest(func(_ *resty.Client, _ *resty.Request) error {
		return errors.New("signing key missing")
	})

	_, err := c.FetchUserDetails(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, client.IsRequestError(err))
	assert.Equal(t, "signing key missing", client.ErrorMessage(err))
	assert.Empty(t, srv.Requests())
}

func TestClient_RequestError_CanceledContext(t *testing.T) {
	t.Parallel()
	srv := fakeapi.New(client.HoodID)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newClient(t, srv.URL)
	_, err := c.FetchBookings(ctx, 0, 20)
	require.Error(t, err)
	assert.True(t, client.IsRequestError(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, srv.Requests())
}

func TestErrorMessage_NeverEmpty(t *testing.T) {
	t.Parallel()
	assert.NotEmpty(t, client.ErrorMessage(nil))
	assert.Equal(t, "plain failure", client.ErrorMessage(errors.New("plain failure")))
	assert.Equal(t, "An unexpected error occurred", client.ErrorMessage(errors.New("")))
}
