package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type flightDetails struct {
	FlightNumber string `json:"flightNumber"`
	Destination  string `json:"destination"`
	TravelDate   string `json:"travelDate"`
}

type passengerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookResponse struct {
	Message       string           `json:"message"`
	FlightDetails flightDetails    `json:"flightDetails"`
	SeatNumber    int              `json:"seatNumber"`
	Passenger     passengerContact `json:"passenger"`
}

type ticketResponse struct {
	FlightNumber string           `json:"flightNumber"`
	Destination  string           `json:"destination"`
	TravelDate   string           `json:"travelDate"`
	SeatNumber   int              `json:"seatNumber"`
	Passenger    passengerContact `json:"passenger"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type modifySeatResponse struct {
	Message   string           `json:"message"`
	Passenger domain.Passenger `json:"passenger"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router gin.IRouter) {
	router.POST("/book", h.book)
	router.GET("/ticket", h.ticket)
	router.DELETE("/cancel", h.cancel)
	router.PUT("/modify-seat", h.modifySeat)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req booking.BookInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidBody(c, err)
		return
	}

	booked, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(c, http.StatusBadRequest, codeMissingRequiredField, "Missing required fields.")
		case errors.Is(err, domain.ErrNoSeatsAvailable):
			writeError(c, http.StatusBadRequest, codeNoSeatsAvailable, "No seats available on this flight.")
		default:
			writeInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, bookResponse{
		Message: "Flight ticket booked successfully.",
		FlightDetails: flightDetails{
			FlightNumber: req.FlightNumber,
			Destination:  booked.Destination,
			TravelDate:   booked.TravelDate,
		},
		SeatNumber: booked.SeatNumber,
		Passenger:  passengerContact{Name: booked.Name, Email: booked.Email},
	})
}

func (h *BookingHandler) ticket(c *gin.Context) {
	ticket, err := h.service.Ticket(c.Request.Context(), c.Query("email"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(c, http.StatusBadRequest, codeMissingRequiredField, "Email is required.")
		case errors.Is(err, domain.ErrTicketNotFound):
			writeError(c, http.StatusNotFound, codeTicketNotFound, "No ticket found for the given email.")
		default:
			writeInternal(c, err)
		}
		return
	}

	p := ticket.Passenger
	c.JSON(http.StatusOK, ticketResponse{
		FlightNumber: ticket.FlightNumber,
		Destination:  p.Destination,
		TravelDate:   p.TravelDate,
		SeatNumber:   p.SeatNumber,
		Passenger:    passengerContact{Name: p.Name, Email: p.Email},
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req booking.CancelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidBody(c, err)
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), req); err != nil {
		writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Flight ticket cancelled successfully."})
}

func (h *BookingHandler) modifySeat(c *gin.Context) {
	var req booking.ModifySeatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidBody(c, err)
		return
	}

	updated, err := h.service.ModifySeat(c.Request.Context(), req)
	if err != nil {
		writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, modifySeatResponse{
		Message:   "Seat assignment updated successfully.",
		Passenger: *updated,
	})
}
