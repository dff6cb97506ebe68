package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidRequest       = "invalid_request"
	codeNoSeatsAvailable     = "no_seats_available"
	codeTicketNotFound       = "ticket_not_found"
	codeFlightNotFound       = "flight_not_found"
	codePassengerNotFound    = "passenger_not_found"
	codeSeatTaken            = "seat_taken"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorResponse{Error: msg, Code: code})
}

func writeInvalidBody(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "Invalid request body: "+err.Error())
}

// writeMutationError maps cancel and modify-seat failures. An unknown
// flight is reported as a bad request on these routes, not as 404.
func writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(c, http.StatusBadRequest, codeMissingRequiredField, "Invalid request.")
	case errors.Is(err, domain.ErrFlightNotFound):
		writeError(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request.")
	case errors.Is(err, domain.ErrPassengerNotFound):
		writeError(c, http.StatusNotFound, codePassengerNotFound, "Passenger not found on this flight.")
	case errors.Is(err, domain.ErrSeatTaken):
		writeError(c, http.StatusConflict, codeSeatTaken, "Seat already taken.")
	default:
		writeInternal(c, err)
	}
}

func writeInternal(c *gin.Context, err error) {
	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	writeError(c, http.StatusInternalServerError, codeInternalError, "internal error")
}
