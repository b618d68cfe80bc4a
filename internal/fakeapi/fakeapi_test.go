package fakeapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hood = "hood-1"

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_ListBookingsPages(t *testing.T) {
	s := New(hood)
	defer s.Close()
	for _, id := range []string{"b1", "b2", "b3"} {
		s.AddBooking(id, map[string]any{"amount": 100})
	}

	resp, err := http.Get(s.URL + "/api/admin/booking/hood/" + hood + "?page=1&size=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)

	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "b3", items[0].(map[string]any)["id"])
	page := body["page"].(map[string]any)
	assert.Equal(t, float64(3), page["totalElements"])
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, float64(1), page["number"])

	assert.Equal(t, "page=1&size=2", s.Last().RawQuery)
}

func TestServer_CancelThenSettleConflicts(t *testing.T) {
	s := New(hood)
	defer s.Close()
	s.AddBooking("b1", nil)

	resp, err := http.Post(s.URL+"/api/admin/booking/b1/cancel", "", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, decode(t, resp)["status"])

	resp, err = http.Post(s.URL+"/api/admin/booking/b1/settled", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Booking is already CANCELLED", decode(t, resp)["detail"])
}

func TestServer_RequireToken(t *testing.T) {
	s := New(hood)
	defer s.Close()
	s.RequireToken("secret")
	s.AddUser("u1", map[string]any{"name": "Ravi"})

	resp, err := http.Get(s.URL + "/api/user/u1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	req, _ := http.NewRequest(http.MethodGet, s.URL+"/api/user/u1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", decode(t, resp)["name"])
	assert.Len(t, s.Requests(), 2)
}
