package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type passengersResponse struct {
	FlightNumber string                 `json:"flightNumber"`
	Passengers   []domain.ManifestEntry `json:"passengers"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router gin.IRouter) {
	router.GET("/passengers", h.passengers)
	router.GET("/flights", h.list)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

// passengers answers 404 both for a missing and an unknown flight number.
func (h *FlightHandler) passengers(c *gin.Context) {
	flightNumber := c.Query("flightNumber")
	manifest, err := h.service.Passengers(c.Request.Context(), flightNumber)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrFlightNotFound) {
			writeError(c, http.StatusNotFound, codeFlightNotFound, "Flight not found.")
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, passengersResponse{
		FlightNumber: flightNumber,
		Passengers:   manifest,
	})
}
