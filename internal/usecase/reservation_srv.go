package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

// ReservationService books screenings for customers. Capacity is not
// checked: a screening may take any number of reservations.
type ReservationService interface {
	AddReservation(ctx context.Context, req *request.ReservationRequest) (*response.ReservationResponse, error)
	UpdateReservation(ctx context.Context, reservationID string, req *request.ReservationRequest) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, reservationID string) error

	GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context) ([]response.ReservationResponse, error)
	ListByCustomer(ctx context.Context, customerID string) ([]response.ReservationResponse, error)
}

type reservationService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
		now:  utils.NaiveNow,
	}
}

func (s *reservationService) AddReservation(ctx context.Context, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	reservation, err := s.build(ctx, req, s.now())
	if err != nil {
		logFailure(s.log, "Reservation rejected", err,
			zap.String("customer_id", req.CustomerID),
			zap.String("screening_id", req.ScreeningID),
		)
		return nil, err
	}
	reservation.Touch(s.now())

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		logFailure(s.log, "Failed to add reservation", err,
			zap.String("customer_id", req.CustomerID),
			zap.String("screening_id", req.ScreeningID),
		)
		return nil, fmt.Errorf("add reservation: %w", err)
	}

	s.log.Info("Reservation added",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("customer_id", reservation.CustomerID.String()),
		zap.String("screening_id", reservation.ScreeningID.String()),
	)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// UpdateReservation keeps the original reservation time unless a new one is
// supplied.
func (s *reservationService) UpdateReservation(ctx context.Context, reservationID string, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	existing, err := s.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.build(ctx, req, existing.ReservationTime)
	if err != nil {
		logFailure(s.log, "Reservation update rejected", err, zap.String("reservation_id", reservationID))
		return nil, err
	}
	reservation.Base = existing.Base
	reservation.Touch(s.now())

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		logFailure(s.log, "Failed to update reservation", err, zap.String("reservation_id", reservationID))
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// DeleteReservation is idempotent.
func (s *reservationService) DeleteReservation(ctx context.Context, reservationID string) error {
	id, err := parseID("id", reservationID)
	if err != nil {
		return err
	}

	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		logFailure(s.log, "Failed to delete reservation", err, zap.String("reservation_id", reservationID))
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) ListReservations(ctx context.Context) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) ListByCustomer(ctx context.Context, customerID string) ([]response.ReservationResponse, error) {
	id, err := parseID("customer_id", customerID)
	if err != nil {
		return nil, err
	}

	if err := mustExist(ctx, "customer", id, s.repo.Customer.FindByID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.Reservation.FindByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reservations by customer: %w", err)
	}
	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) find(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := parseID("id", reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}
	if reservation == nil {
		return nil, apperror.NotFound("reservation", id)
	}
	return reservation, nil
}

// build resolves customer and screening. at is used when the request does
// not carry a reservation time.
func (s *reservationService) build(ctx context.Context, req *request.ReservationRequest, at time.Time) (*entity.Reservation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	customerID, err := parseID("customer_id", req.CustomerID)
	if err != nil {
		return nil, err
	}
	screeningID, err := parseID("screening_id", req.ScreeningID)
	if err != nil {
		return nil, err
	}
	if req.ReservationTime != "" {
		if at, err = parseTime("reservation_time", req.ReservationTime); err != nil {
			return nil, err
		}
	}

	if err := mustExist(ctx, "customer", customerID, s.repo.Customer.FindByID); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, "screening", screeningID, s.repo.Screening.FindByID); err != nil {
		return nil, err
	}

	return &entity.Reservation{
		CustomerID:      customerID,
		ScreeningID:     screeningID,
		ReservationTime: at,
	}, nil
}
