package request

// ReservationRequest books a screening. ReservationTime defaults to now.
type ReservationRequest struct {
	CustomerID      string `json:"customer_id" validate:"required,uuid"`
	ScreeningID     string `json:"screening_id" validate:"required,uuid"`
	ReservationTime string `json:"reservation_time,omitempty"`
}
