package domain

type Passenger struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"`
	SeatNumber  int    `json:"seatNumber"`
}

// ManifestEntry is the per-passenger view returned when listing a flight.
type ManifestEntry struct {
	Name       string `json:"name"`
	SeatNumber int    `json:"seatNumber"`
}

type FlightSummary struct {
	FlightNumber string `json:"flightNumber"`
	Capacity     int    `json:"capacity"`
	Occupied     int    `json:"occupied"`
	Available    int    `json:"available"`
}
