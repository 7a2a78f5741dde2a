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

type HallService interface {
	GetHalls(ctx context.Context) ([]response.HallResponse, error)
	GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error)
	CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, hallID string) error
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
		now:  utils.NaiveNow,
	}
}

func (s *hallService) GetHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	out := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		out[i] = response.HallToResponse(hall)
	}
	return out, nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	hall, err := s.find(ctx, hallID)
	if err != nil {
		return nil, err
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) find(ctx context.Context, hallID string) (*entity.Hall, error) {
	id, err := parseID("id", hallID)
	if err != nil {
		return nil, err
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall by id: %w", err)
	}
	if hall == nil {
		return nil, apperror.NotFound("hall", id)
	}
	return hall, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hall := &entity.Hall{Name: req.Name, Capacity: req.Capacity}
	hall.Touch(s.now())

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		logFailure(s.log, "Failed to create hall", err, zap.String("name", req.Name))
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("capacity", hall.Capacity),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hall, err := s.find(ctx, hallID)
	if err != nil {
		return nil, err
	}

	hall.Name = req.Name
	hall.Capacity = req.Capacity
	hall.Touch(s.now())

	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		logFailure(s.log, "Failed to update hall", err, zap.String("hall_id", hallID))
		return nil, fmt.Errorf("update hall: %w", err)
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) DeleteHall(ctx context.Context, hallID string) error {
	hall, err := s.find(ctx, hallID)
	if err != nil {
		return err
	}

	screenings, err := s.repo.Screening.FindByHallID(ctx, hall.ID)
	if err != nil {
		return fmt.Errorf("check hall screenings: %w", err)
	}
	if len(screenings) > 0 {
		err := apperror.InUse("hall", hall.ID, fmt.Sprintf("%d screening(s)", len(screenings)))
		logFailure(s.log, "Hall still scheduled", err, zap.String("hall_id", hallID))
		return err
	}

	if err := s.repo.Hall.Delete(ctx, hall.ID); err != nil {
		logFailure(s.log, "Failed to delete hall", err, zap.String("hall_id", hallID))
		return fmt.Errorf("delete hall: %w", err)
	}
	return nil
}
