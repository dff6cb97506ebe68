package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/seatbook/config"
	"github.com/Domenick1991/seatbook/internal/repository"
	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func services() (*booking.BookingService, *flights.FlightService) {
	store := repository.NewMemoryBookingStore(repository.DefaultSeatCapacity)
	return booking.NewBookingService(store), flights.NewFlightService(store, nil)
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestNewHandler_ServesSwagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.HTTP.SwaggerDir = "../../api/swagger"
	bookingSvc, flightSvc := services()

	handler := NewHandler(cfg, bookingSvc, flightSvc)

	w := get(handler, "/swagger/"+swaggerSpecFile)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/modify-seat"`)

	w = get(handler, "/docs/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger")
}

func TestNewHandler_WithoutSwagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bookingSvc, flightSvc := services()

	handler := NewHandler(config.Default(), bookingSvc, flightSvc)

	assert.Equal(t, http.StatusNotFound, get(handler, "/docs/index.html").Code)
	assert.Equal(t, http.StatusOK, get(handler, "/health").Code)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.HTTP.Address = "127.0.0.1:0"
	bookingSvc, flightSvc := services()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, bookingSvc, flightSvc) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
