package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// RoleService manages staffing roles and their per-center hourly rates
type RoleService struct {
	roleRepo           *repository.RoleRepository
	deliveryCenterRepo *repository.DeliveryCenterRepository
	logger             *zap.Logger
}

func NewRoleService(
	roleRepo *repository.RoleRepository,
	deliveryCenterRepo *repository.DeliveryCenterRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:           roleRepo,
		deliveryCenterRepo: deliveryCenterRepo,
		logger:             logger,
	}
}

func (s *RoleService) Create(ctx context.Context, req *domain.CreateRoleRequest) (*domain.RoleDTO, error) {
	role := &domain.Role{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a role named %q already exists", ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.logger.Info("role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	dto := mapper.ToRoleDTO(role)
	return &dto, nil
}

func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoleDTO, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	dto := mapper.ToRoleDTO(role)
	return &dto, nil
}

func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateRoleRequest) (*domain.RoleDTO, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a role named %q already exists", ErrConflict, role.Name)
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	dto := mapper.ToRoleDTO(role)
	return &dto, nil
}

// Delete removes a role. Roles priced into estimate or quote line items
// cannot be deleted; their rates cascade away with the role.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.roleRepo.CountLineItemReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count role references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: %d line item(s) reference it", ErrRoleInUse, refs)
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.logger.Info("role deleted", zap.String("role_id", id.String()))
	return nil
}

func (s *RoleService) List(ctx context.Context, skip, limit int, search string) (*domain.ListResponse[domain.RoleDTO], error) {
	roles, total, err := s.roleRepo.List(ctx, skip, limit, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	items := make([]domain.RoleDTO, len(roles))
	for i := range roles {
		items[i] = mapper.ToRoleDTO(&roles[i])
	}

	return &domain.ListResponse[domain.RoleDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// CreateRate adds an hourly rate for a role scoped to a delivery center and
// currency. The scope triple is unique.
func (s *RoleService) CreateRate(ctx context.Context, roleID uuid.UUID, req *domain.CreateRoleRateRequest) (*domain.RoleRateDTO, error) {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	if _, err := s.deliveryCenterRepo.GetByID(ctx, req.DeliveryCenterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: delivery center does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to check delivery center: %w", err)
	}

	rate := &domain.RoleRate{
		RoleID:           roleID,
		DeliveryCenterID: req.DeliveryCenterID,
		Currency:         req.Currency,
		HourlyRate:       req.HourlyRate,
	}
	if req.EffectiveDate != nil {
		d, err := time.Parse("2006-01-02", *req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid effective date", ErrInvalidInput)
		}
		rate.EffectiveDate = &d
	}

	if err := s.roleRepo.CreateRate(ctx, rate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a rate for this role, delivery center and currency already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create role rate: %w", err)
	}

	dto := mapper.ToRoleRateDTO(rate)
	return &dto, nil
}

func (s *RoleService) UpdateRate(ctx context.Context, rateID uuid.UUID, req *domain.UpdateRoleRateRequest) (*domain.RoleRateDTO, error) {
	rate, err := s.roleRepo.GetRateByID(ctx, rateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role rate: %w", err)
	}

	if req.HourlyRate != nil {
		rate.HourlyRate = *req.HourlyRate
	}
	if req.EffectiveDate != nil {
		d, err := time.Parse("2006-01-02", *req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid effective date", ErrInvalidInput)
		}
		rate.EffectiveDate = &d
	}

	if err := s.roleRepo.UpdateRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update role rate: %w", err)
	}

	dto := mapper.ToRoleRateDTO(rate)
	return &dto, nil
}

func (s *RoleService) DeleteRate(ctx context.Context, rateID uuid.UUID) error {
	if err := s.roleRepo.DeleteRate(ctx, rateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete role rate: %w", err)
	}
	return nil
}

func (s *RoleService) ListRates(ctx context.Context, roleID uuid.UUID) ([]domain.RoleRateDTO, error) {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	rates, err := s.roleRepo.ListRates(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role rates: %w", err)
	}

	dtos := make([]domain.RoleRateDTO, len(rates))
	for i := range rates {
		dtos[i] = mapper.ToRoleRateDTO(&rates[i])
	}
	return dtos, nil
}
