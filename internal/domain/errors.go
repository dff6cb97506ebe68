package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found on flight")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrSeatTaken         = errors.New("seat already taken")
)
