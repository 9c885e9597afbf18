package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// EmployeeService manages firm employees, including their credentials
type EmployeeService struct {
	employeeRepo       *repository.EmployeeRepository
	deliveryCenterRepo *repository.DeliveryCenterRepository
	logger             *zap.Logger
}

func NewEmployeeService(
	employeeRepo *repository.EmployeeRepository,
	deliveryCenterRepo *repository.DeliveryCenterRepository,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:       employeeRepo,
		deliveryCenterRepo: deliveryCenterRepo,
		logger:             logger,
	}
}

func (s *EmployeeService) Create(ctx context.Context, req *domain.CreateEmployeeRequest) (*domain.EmployeeDTO, error) {
	status := req.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown employee status %q", ErrInvalidInput, status)
	}

	if req.DeliveryCenterID != nil {
		if _, err := s.deliveryCenterRepo.GetByID(ctx, *req.DeliveryCenterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: delivery center does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check delivery center: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &domain.Employee{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            strings.ToLower(req.Email),
		PasswordHash:     string(hash),
		Title:            req.Title,
		Status:           status,
		DeliveryCenterID: req.DeliveryCenterID,
		CalendarCode:     req.CalendarCode,
		Skills:           req.Skills,
		IsAdmin:          req.IsAdmin,
	}
	if req.InternalCostRate != nil {
		employee.InternalCostRate = *req.InternalCostRate
	}
	if req.InternalBillRate != nil {
		employee.InternalBillRate = *req.InternalBillRate
	}
	if req.ExternalBillRate != nil {
		employee.ExternalBillRate = *req.ExternalBillRate
	}
	if req.HireDate != nil {
		d, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hire date", ErrInvalidInput)
		}
		employee.HireDate = &d
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an employee with email %q already exists", ErrConflict, employee.Email)
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("email", employee.Email))

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateEmployeeRequest) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = strings.ToLower(*req.Email)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = string(hash)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown employee status %q", ErrInvalidInput, *req.Status)
		}
		employee.Status = *req.Status
	}
	if req.Title != nil {
		employee.Title = *req.Title
	}
	if req.InternalCostRate != nil {
		employee.InternalCostRate = *req.InternalCostRate
	}
	if req.InternalBillRate != nil {
		employee.InternalBillRate = *req.InternalBillRate
	}
	if req.ExternalBillRate != nil {
		employee.ExternalBillRate = *req.ExternalBillRate
	}
	if req.DeliveryCenterID != nil {
		if _, err := s.deliveryCenterRepo.GetByID(ctx, *req.DeliveryCenterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: delivery center does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check delivery center: %w", err)
		}
		employee.DeliveryCenterID = req.DeliveryCenterID
	}
	if req.CalendarCode != nil {
		employee.CalendarCode = req.CalendarCode
	}
	if req.Skills != nil {
		employee.Skills = req.Skills
	}
	if req.IsAdmin != nil {
		employee.IsAdmin = *req.IsAdmin
	}
	if req.HireDate != nil {
		d, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hire date", ErrInvalidInput)
		}
		employee.HireDate = &d
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an employee with email %q already exists", ErrConflict, employee.Email)
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Info("employee deleted", zap.String("employee_id", id.String()))
	return nil
}

// List returns a page of employees. An unparseable status filter yields an
// empty result rather than an error.
func (s *EmployeeService) List(ctx context.Context, skip, limit int, status string, deliveryCenterID *uuid.UUID, search string) (*domain.ListResponse[domain.EmployeeDTO], error) {
	var statusFilter *domain.EmployeeStatus
	if status != "" {
		st := domain.EmployeeStatus(status)
		if !st.IsValid() {
			return &domain.ListResponse[domain.EmployeeDTO]{
				Items: []domain.EmployeeDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		statusFilter = &st
	}

	employees, total, err := s.employeeRepo.List(ctx, skip, limit, statusFilter, deliveryCenterID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	items := make([]domain.EmployeeDTO, len(employees))
	for i := range employees {
		items[i] = mapper.ToEmployeeDTO(&employees[i])
	}

	return &domain.ListResponse[domain.EmployeeDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
