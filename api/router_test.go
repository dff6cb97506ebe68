package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/seatbook/internal/repository"
	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(capacity int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryBookingStore(capacity)
	return NewRouter(booking.NewBookingService(store), flights.NewFlightService(store, nil))
}

func do(t *testing.T, router http.Handler, method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	object, _ := decoded.(map[string]interface{})
	return w, object
}

var johnBooking = map[string]string{
	"name":         "John Doe",
	"email":        "john@example.com",
	"destination":  "NYC",
	"travelDate":   "2025-01-20",
	"flightNumber": "FL123",
}

func TestRouter_EndToEnd(t *testing.T) {
	router := newTestRouter(repository.DefaultSeatCapacity)

	w, body := do(t, router, http.MethodPost, "/book", johnBooking)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Flight ticket booked successfully.", body["message"])
	assert.EqualValues(t, 1, body["seatNumber"])
	assert.Equal(t, "john@example.com", body["passenger"].(map[string]interface{})["email"])

	w, body = do(t, router, http.MethodGet, "/ticket?email=john@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FL123", body["flightNumber"])
	assert.EqualValues(t, 1, body["seatNumber"])

	w, _ = do(t, router, http.MethodGet, "/passengers?flightNumber=FL123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"flightNumber":"FL123","passengers":[{"name":"John Doe","seatNumber":1}]}`, w.Body.String())

	w, body = do(t, router, http.MethodDelete, "/cancel", map[string]string{"email": "john@example.com", "flightNumber": "FL123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Flight ticket cancelled successfully.", body["message"])

	w, _ = do(t, router, http.MethodGet, "/passengers?flightNumber=FL123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"flightNumber":"FL123","passengers":[]}`, w.Body.String())

	w, body = do(t, router, http.MethodPost, "/book", johnBooking)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, body["seatNumber"])

	w, body = do(t, router, http.MethodPut, "/modify-seat", map[string]interface{}{
		"email":         "john@example.com",
		"flightNumber":  "FL123",
		"newSeatNumber": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Seat assignment updated successfully.", body["message"])
	passenger := body["passenger"].(map[string]interface{})
	assert.EqualValues(t, 5, passenger["seatNumber"])
	assert.Equal(t, "NYC", passenger["destination"])
	assert.Equal(t, "2025-01-20", passenger["travelDate"])
}

func TestRouter_CapacityAndConflicts(t *testing.T) {
	router := newTestRouter(2)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		req := map[string]string{}
		for k, v := range johnBooking {
			req[k] = v
		}
		req["email"] = email
		w, _ := do(t, router, http.MethodPost, "/book", req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := do(t, router, http.MethodPost, "/book", johnBooking)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeNoSeatsAvailable, body["code"])

	w, body = do(t, router, http.MethodPut, "/modify-seat", map[string]interface{}{
		"email": "a@example.com", "flightNumber": "FL123", "newSeatNumber": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, codeSeatTaken, body["code"])

	w, _ = do(t, router, http.MethodGet, "/passengers?flightNumber=FL123", nil)
	assert.JSONEq(t, `{"flightNumber":"FL123","passengers":[{"name":"John Doe","seatNumber":1},{"name":"John Doe","seatNumber":2}]}`, w.Body.String())

	w, _ = do(t, router, http.MethodGet, "/flights", nil)
	assert.JSONEq(t, `[{"flightNumber":"FL123","capacity":2,"occupied":2,"available":0}]`, w.Body.String())
}

func TestRouter_ValidationAndNotFound(t *testing.T) {
	router := newTestRouter(repository.DefaultSeatCapacity)

	w, body := do(t, router, http.MethodPost, "/book", map[string]string{"name": "John Doe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields.", body["error"])

	w, _ = do(t, router, http.MethodGet, "/ticket", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, router, http.MethodGet, "/ticket?email=nobody@example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No ticket found for the given email.", body["error"])

	w, _ = do(t, router, http.MethodGet, "/passengers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodGet, "/passengers?flightNumber=FL404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(t, router, http.MethodDelete, "/cancel", map[string]string{"email": "john@example.com", "flightNumber": "FL404"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request.", body["error"])

	w, _ = do(t, router, http.MethodPost, "/book", johnBooking)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, router, http.MethodDelete, "/cancel", map[string]string{"email": "jane@example.com", "flightNumber": "FL123"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPut, "/modify-seat", map[string]interface{}{
		"email": "john@example.com", "flightNumber": "FL123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, router, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
