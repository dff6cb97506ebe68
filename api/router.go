package api

import (
	"net/http"

	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts every route at the root; there is no /api prefix.
func NewRouter(bookingSvc booking.BookingUseCase, flightSvc flights.FlightUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	NewBookingHandler(bookingSvc).Register(router)
	NewFlightHandler(flightSvc).Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not_found", "Not found.")
	})

	return router
}
