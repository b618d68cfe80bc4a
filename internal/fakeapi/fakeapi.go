// Package fakeapi serves an in-process stand-in for the admin booking API.
// Tests point a client at Server.URL and inspect the recorded requests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

// Booking statuses set by the action endpoints.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusSettled   = "SETTLED"
)

// Recorded is one request as the server saw it.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	RequestID     string
	BodyLen       int64
}

// Server is a fake admin API. Zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	hoodID   string
	bookings map[string]map[string]any
	users    map[string]map[string]any
	requests []Recorded
	token    string
}

// New starts a fake API serving bookings for hoodID under /api.
func New(hoodID string) *Server {
	s := &Server{
		hoodID:   hoodID,
		bookings: make(map[string]map[string]any),
		users:    make(map[string]map[string]any),
	}

	r := mux.NewRouter()
	r.Use(s.record, s.auth)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/admin/booking/hood/{hoodId}", s.listBookings).Methods(http.MethodGet)
	api.HandleFunc("/admin/booking/{bookingId}/cancel", s.bookingAction(StatusCancelled)).Methods(http.MethodPost)
	api.HandleFunc("/admin/booking/{bookingId}/settled", s.bookingAction(StatusSettled)).Methods(http.MethodPost)
	api.HandleFunc("/user/{userId}", s.getUser).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

// AddBooking seeds a confirmed booking.
func (s *Server) AddBooking(id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := map[string]any{"id": id, "status": StatusConfirmed}
	for k, v := range fields {
		b[k] = v
	}
	s.bookings[id] = b
}

// AddUser seeds a user.
func (s *Server) AddUser(id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := map[string]any{"id": id}
	for k, v := range fields {
		u[k] = v
	}
	s.users[id] = u
}

// RequireToken makes the server reject requests whose bearer token is not
// token with 401 {"detail": "Not authenticated"}. Empty disables the check.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Last returns the most recent request, or the zero value.
func (s *Server) Last() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			BodyLen:       r.ContentLength,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := s.token
		s.mu.Unlock()
		if want != "" && r.Header.Get("Authorization") != "Bearer "+want {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["hoodId"] != s.hoodID {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Hood not found"})
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "page must be a non-negative integer"})
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "size must be a positive integer"})
		return
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.bookings))
	for id := range s.bookings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]map[string]any, 0, size)
	for i := page * size; i < len(ids) && i < (page+1)*size; i++ {
		items = append(items, clone(s.bookings[ids[i]]))
	}
	total := len(ids)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"page": map[string]any{
			"size":          size,
			"totalElements": total,
			"totalPages":    (total + size - 1) / size,
			"number":        page,
		},
	})
}

func (s *Server) bookingAction(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["bookingId"]

		s.mu.Lock()
		defer s.mu.Unlock()
		b, ok := s.bookings[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Booking not found"})
			return
		}
		if b["status"] != StatusConfirmed {
			writeJSON(w, http.StatusConflict, map[string]any{"detail": "Booking is already " + b["status"].(string)})
			return
		}
		b["status"] = status
		writeJSON(w, http.StatusOK, clone(b))
	}
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.users[mux.Vars(r)["userId"]]
	u = clone(u)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
