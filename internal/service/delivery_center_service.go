package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// DeliveryCenterService manages delivery centers and their approver lists
type DeliveryCenterService struct {
	deliveryCenterRepo *repository.DeliveryCenterRepository
	employeeRepo       *repository.EmployeeRepository
	logger             *zap.Logger
}

func NewDeliveryCenterService(
	deliveryCenterRepo *repository.DeliveryCenterRepository,
	employeeRepo *repository.EmployeeRepository,
	logger *zap.Logger,
) *DeliveryCenterService {
	return &DeliveryCenterService{
		deliveryCenterRepo: deliveryCenterRepo,
		employeeRepo:       employeeRepo,
		logger:             logger,
	}
}

func (s *DeliveryCenterService) Create(ctx context.Context, req *domain.CreateDeliveryCenterRequest) (*domain.DeliveryCenterDTO, error) {
	dc := &domain.DeliveryCenter{
		Code:            req.Code,
		Name:            req.Name,
		Region:          req.Region,
		DefaultCurrency: req.DefaultCurrency,
		IsActive:        true,
	}

	if err := s.deliveryCenterRepo.Create(ctx, dc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: delivery center code %q already exists", ErrConflict, req.Code)
		}
		return nil, fmt.Errorf("failed to create delivery center: %w", err)
	}

	s.logger.Info("delivery center created",
		zap.String("delivery_center_id", dc.ID.String()),
		zap.String("code", dc.Code))

	dto := mapper.ToDeliveryCenterDTO(dc)
	return &dto, nil
}

func (s *DeliveryCenterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryCenterDTO, error) {
	dc, err := s.deliveryCenterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery center: %w", err)
	}

	dto := mapper.ToDeliveryCenterDTO(dc)
	return &dto, nil
}

func (s *DeliveryCenterService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateDeliveryCenterRequest) (*domain.DeliveryCenterDTO, error) {
	dc, err := s.deliveryCenterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery center: %w", err)
	}

	if req.Code != nil {
		dc.Code = *req.Code
	}
	if req.Name != nil {
		dc.Name = *req.Name
	}
	if req.Region != nil {
		dc.Region = *req.Region
	}
	if req.DefaultCurrency != nil {
		dc.DefaultCurrency = *req.DefaultCurrency
	}
	if req.IsActive != nil {
		dc.IsActive = *req.IsActive
	}

	if err := s.deliveryCenterRepo.Update(ctx, dc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: delivery center code %q already exists", ErrConflict, dc.Code)
		}
		return nil, fmt.Errorf("failed to update delivery center: %w", err)
	}

	dto := mapper.ToDeliveryCenterDTO(dc)
	return &dto, nil
}

func (s *DeliveryCenterService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.deliveryCenterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete delivery center: %w", err)
	}

	s.logger.Info("delivery center deleted", zap.String("delivery_center_id", id.String()))
	return nil
}

func (s *DeliveryCenterService) List(ctx context.Context, skip, limit int, activeOnly bool) (*domain.ListResponse[domain.DeliveryCenterDTO], error) {
	centers, total, err := s.deliveryCenterRepo.List(ctx, skip, limit, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery centers: %w", err)
	}

	items := make([]domain.DeliveryCenterDTO, len(centers))
	for i := range centers {
		items[i] = mapper.ToDeliveryCenterDTO(&centers[i])
	}

	return &domain.ListResponse[domain.DeliveryCenterDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// AddApprover registers an employee as an approver for a delivery center.
// Adding the same employee twice is a conflict, not a silent no-op.
func (s *DeliveryCenterService) AddApprover(ctx context.Context, deliveryCenterID uuid.UUID, req *domain.AddDeliveryCenterApproverRequest) (*domain.DeliveryCenterApproverDTO, error) {
	if _, err := s.deliveryCenterRepo.GetByID(ctx, deliveryCenterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery center: %w", err)
	}

	employee, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}

	approver := &domain.DeliveryCenterApprover{
		ID:               uuid.New(),
		DeliveryCenterID: deliveryCenterID,
		EmployeeID:       req.EmployeeID,
		Employee:         employee,
	}

	if err := s.deliveryCenterRepo.AddApprover(ctx, approver); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: employee is already an approver for this delivery center", ErrConflict)
		}
		return nil, fmt.Errorf("failed to add approver: %w", err)
	}

	dto := mapper.ToDeliveryCenterApproverDTO(approver)
	return &dto, nil
}

func (s *DeliveryCenterService) RemoveApprover(ctx context.Context, deliveryCenterID, employeeID uuid.UUID) error {
	if err := s.deliveryCenterRepo.RemoveApprover(ctx, deliveryCenterID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove approver: %w", err)
	}
	return nil
}

func (s *DeliveryCenterService) ListApprovers(ctx context.Context, deliveryCenterID uuid.UUID) ([]domain.DeliveryCenterApproverDTO, error) {
	if _, err := s.deliveryCenterRepo.GetByID(ctx, deliveryCenterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery center: %w", err)
	}

	approvers, err := s.deliveryCenterRepo.ListApprovers(ctx, deliveryCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvers: %w", err)
	}

	dtos := make([]domain.DeliveryCenterApproverDTO, len(approvers))
	for i := range approvers {
		dtos[i] = mapper.ToDeliveryCenterApproverDTO(&approvers[i])
	}
	return dtos, nil
}
