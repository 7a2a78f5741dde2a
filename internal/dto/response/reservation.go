package response

import (
	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/utils"
)

type ReservationResponse struct {
	ID              string `json:"id"`
	CustomerID      string `json:"customer_id"`
	ScreeningID     string `json:"screening_id"`
	ReservationTime string `json:"reservation_time"`
}

func ReservationToResponse(reservation *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              reservation.ID.String(),
		CustomerID:      reservation.CustomerID.String(),
		ScreeningID:     reservation.ScreeningID.String(),
		ReservationTime: utils.FormatTimestamp(reservation.ReservationTime),
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		out[i] = ReservationToResponse(reservation)
	}
	return out
}
