package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type CustomerService interface {
	GetCustomers(ctx context.Context) ([]response.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
		now:  utils.NaiveNow,
	}
}

func (s *customerService) GetCustomers(ctx context.Context) ([]response.CustomerResponse, error) {
	customers, err := s.repo.Customer.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
	}

	out := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		out[i] = response.CustomerToResponse(customer)
	}
	return out, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) find(ctx context.Context, customerID string) (*entity.Customer, error) {
	id, err := parseID("id", customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	if customer == nil {
		return nil, apperror.NotFound("customer", id)
	}
	return customer, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer := &entity.Customer{}
	applyCustomer(customer, req)
	customer.Touch(s.now())

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		logFailure(s.log, "Failed to create customer", err, zap.String("email", customer.Email))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customer, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	applyCustomer(customer, req)
	customer.Touch(s.now())

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		logFailure(s.log, "Failed to update customer", err, zap.String("customer_id", customerID))
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	customer, err := s.find(ctx, customerID)
	if err != nil {
		return err
	}

	count, err := s.repo.Reservation.CountByCustomerID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("check customer reservations: %w", err)
	}
	if count > 0 {
		err := apperror.InUse("customer", customer.ID, fmt.Sprintf("%d reservation(s)", count))
		logFailure(s.log, "Customer still has reservations", err, zap.String("customer_id", customerID))
		return err
	}

	if err := s.repo.Customer.Delete(ctx, customer.ID); err != nil {
		logFailure(s.log, "Failed to delete customer", err, zap.String("customer_id", customerID))
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func applyCustomer(customer *entity.Customer, req *request.CustomerRequest) {
	customer.FirstName = strings.TrimSpace(req.FirstName)
	customer.LastName = strings.TrimSpace(req.LastName)
	customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
}
