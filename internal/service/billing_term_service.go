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

// BillingTermService manages the billing term lookup table
type BillingTermService struct {
	billingTermRepo *repository.BillingTermRepository
	accountRepo     *repository.AccountRepository
	logger          *zap.Logger
}

func NewBillingTermService(
	billingTermRepo *repository.BillingTermRepository,
	accountRepo *repository.AccountRepository,
	logger *zap.Logger,
) *BillingTermService {
	return &BillingTermService{
		billingTermRepo: billingTermRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

func (s *BillingTermService) Create(ctx context.Context, req *domain.CreateBillingTermRequest) (*domain.BillingTermDTO, error) {
	term := &domain.BillingTerm{
		Code:         req.Code,
		Description:  req.Description,
		DaysUntilDue: req.DaysUntilDue,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}

	if err := s.billingTermRepo.Create(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: billing term code %q already exists", ErrConflict, req.Code)
		}
		return nil, fmt.Errorf("failed to create billing term: %w", err)
	}

	s.logger.Info("billing term created",
		zap.String("billing_term_id", term.ID.String()),
		zap.String("code", term.Code))

	dto := mapper.ToBillingTermDTO(term)
	return &dto, nil
}

func (s *BillingTermService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingTermDTO, error) {
	term, err := s.billingTermRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get billing term: %w", err)
	}

	dto := mapper.ToBillingTermDTO(term)
	return &dto, nil
}

func (s *BillingTermService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateBillingTermRequest) (*domain.BillingTermDTO, error) {
	term, err := s.billingTermRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get billing term: %w", err)
	}

	if req.Code != nil {
		term.Code = *req.Code
	}
	if req.Description != nil {
		term.Description = *req.Description
	}
	if req.DaysUntilDue != nil {
		term.DaysUntilDue = *req.DaysUntilDue
	}
	if req.SortOrder != nil {
		term.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		term.IsActive = *req.IsActive
	}

	if err := s.billingTermRepo.Update(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: billing term code %q already exists", ErrConflict, term.Code)
		}
		return nil, fmt.Errorf("failed to update billing term: %w", err)
	}

	dto := mapper.ToBillingTermDTO(term)
	return &dto, nil
}

// Delete removes a billing term unless any account still references it
func (s *BillingTermService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.billingTermRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get billing term: %w", err)
	}

	count, err := s.accountRepo.CountByBillingTerm(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count referencing accounts: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d account(s) reference it", ErrBillingTermInUse, count)
	}

	if err := s.billingTermRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete billing term: %w", err)
	}

	s.logger.Info("billing term deleted", zap.String("billing_term_id", id.String()))
	return nil
}

func (s *BillingTermService) List(ctx context.Context, skip, limit int, activeOnly bool) (*domain.ListResponse[domain.BillingTermDTO], error) {
	terms, total, err := s.billingTermRepo.List(ctx, skip, limit, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing terms: %w", err)
	}

	items := make([]domain.BillingTermDTO, len(terms))
	for i := range terms {
		items[i] = mapper.ToBillingTermDTO(&terms[i])
	}

	return &domain.ListResponse[domain.BillingTermDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
