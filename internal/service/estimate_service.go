package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// EstimateService manages effort estimates. Every write path checks two
// locks: the opportunity's permanent lock (hours recorded) and the
// quote-scoped lock (estimate backs a currently active quote).
type EstimateService struct {
	estimateRepo    *repository.EstimateRepository
	quoteRepo       *repository.QuoteRepository
	opportunityRepo *repository.OpportunityRepository
	lockRepo        *repository.OpportunityLockRepository
	logger          *zap.Logger
}

func NewEstimateService(
	estimateRepo *repository.EstimateRepository,
	quoteRepo *repository.QuoteRepository,
	opportunityRepo *repository.OpportunityRepository,
	lockRepo *repository.OpportunityLockRepository,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		estimateRepo:    estimateRepo,
		quoteRepo:       quoteRepo,
		opportunityRepo: opportunityRepo,
		lockRepo:        lockRepo,
		logger:          logger,
	}
}

// checkWritable rejects writes against a permanently locked opportunity or
// an estimate backing the opportunity's active quote
func (s *EstimateService) checkWritable(ctx context.Context, estimate *domain.Estimate) error {
	locked, err := s.lockRepo.Exists(ctx, estimate.OpportunityID)
	if err != nil {
		return fmt.Errorf("failed to check opportunity lock: %w", err)
	}
	if locked {
		return ErrOpportunityLocked
	}

	active, err := s.quoteRepo.GetActiveByOpportunity(ctx, estimate.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check active quote: %w", err)
	}
	if active.SourceEstimateID != nil && *active.SourceEstimateID == estimate.ID {
		return ErrEstimateLocked
	}
	return nil
}

func (s *EstimateService) Create(ctx context.Context, opportunityID uuid.UUID, req *domain.CreateEstimateRequest) (*domain.EstimateDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	locked, err := s.lockRepo.Exists(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check opportunity lock: %w", err)
	}
	if locked {
		return nil, ErrOpportunityLocked
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}

	currency := req.Currency
	if currency == "" {
		currency = opp.Currency
	}

	estimate := &domain.Estimate{
		OpportunityID: opportunityID,
		Name:          req.Name,
		Status:        domain.EstimateStatusDraft,
		Currency:      currency,
		StartDate:     startDate,
		Notes:         req.Notes,
	}

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to create estimate: %w", err)
	}

	s.logger.Info("estimate created",
		zap.String("estimate_id", estimate.ID.String()),
		zap.String("opportunity_id", opportunityID.String()))

	dto := mapper.ToEstimateDTO(estimate)
	return &dto, nil
}

func (s *EstimateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EstimateDTO, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	dto := mapper.ToEstimateDTO(estimate)
	return &dto, nil
}

func (s *EstimateService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateEstimateRequest) (*domain.EstimateDTO, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	if err := s.checkWritable(ctx, estimate); err != nil {
		return nil, err
	}

	if req.Name != nil {
		estimate.Name = *req.Name
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown estimate status %q", ErrInvalidInput, *req.Status)
		}
		estimate.Status = *req.Status
	}
	if req.Currency != nil {
		estimate.Currency = *req.Currency
	}
	if req.StartDate != nil {
		d, err := parseDatePtr(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		estimate.StartDate = d
	}
	if req.Notes != nil {
		estimate.Notes = *req.Notes
	}

	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}

	dto := mapper.ToEstimateDTO(estimate)
	return &dto, nil
}

func (s *EstimateService) Delete(ctx context.Context, id uuid.UUID) error {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get estimate: %w", err)
	}

	if err := s.checkWritable(ctx, estimate); err != nil {
		return err
	}

	if err := s.estimateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete estimate: %w", err)
	}

	s.logger.Info("estimate deleted", zap.String("estimate_id", id.String()))
	return nil
}

// List returns a page of estimates. An unparseable status filter yields an
// empty result rather than an error.
func (s *EstimateService) List(ctx context.Context, skip, limit int, opportunityID *uuid.UUID, status string) (*domain.ListResponse[domain.EstimateDTO], error) {
	var statusFilter *domain.EstimateStatus
	if status != "" {
		st := domain.EstimateStatus(status)
		if !st.IsValid() {
			return &domain.ListResponse[domain.EstimateDTO]{
				Items: []domain.EstimateDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		statusFilter = &st
	}

	estimates, total, err := s.estimateRepo.List(ctx, skip, limit, opportunityID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}

	items := make([]domain.EstimateDTO, len(estimates))
	for i := range estimates {
		items[i] = mapper.ToEstimateDTO(&estimates[i])
	}

	return &domain.ListResponse[domain.EstimateDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// CreatePhase appends a phase to an estimate. Row order is claimed inside
// the repository transaction.
func (s *EstimateService) CreatePhase(ctx context.Context, estimateID uuid.UUID, req *domain.CreateEstimatePhaseRequest) (*domain.EstimatePhaseDTO, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	if err := s.checkWritable(ctx, estimate); err != nil {
		return nil, err
	}

	phase := &domain.EstimatePhase{
		EstimateID:  estimateID,
		Name:        req.Name,
		DurationWks: req.DurationWks,
	}

	if err := s.estimateRepo.CreatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("failed to create estimate phase: %w", err)
	}

	dto := mapper.ToEstimatePhaseDTO(phase)
	return &dto, nil
}

func (s *EstimateService) UpdatePhase(ctx context.Context, phaseID uuid.UUID, req *domain.UpdateEstimatePhaseRequest) (*domain.EstimatePhaseDTO, error) {
	phase, err := s.estimateRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate phase: %w", err)
	}

	estimate, err := s.estimateRepo.GetByID(ctx, phase.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	if err := s.checkWritable(ctx, estimate); err != nil {
		return nil, err
	}

	if req.Name != nil {
		phase.Name = *req.Name
	}
	if req.DurationWks != nil {
		phase.DurationWks = *req.DurationWks
	}

	if err := s.estimateRepo.UpdatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("failed to update estimate phase: %w", err)
	}

	dto := mapper.ToEstimatePhaseDTO(phase)
	return &dto, nil
}

// DeletePhase removes a phase. Remaining phases keep their row order;
// gaps are expected.
func (s *EstimateService) DeletePhase(ctx context.Context, phaseID uuid.UUID) error {
	phase, err := s.estimateRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get estimate phase: %w", err)
	}

	estimate, err := s.estimateRepo.GetByID(ctx, phase.EstimateID)
	if err != nil {
		return fmt.Errorf("failed to get estimate: %w", err)
	}
	if err := s.checkWritable(ctx, estimate); err != nil {
		return err
	}

	if err := s.estimateRepo.DeletePhase(ctx, phaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete estimate phase: %w", err)
	}
	return nil
}

// CreateLineItem appends a line item to a phase. Total hours are derived
// from the weekly distribution.
func (s *EstimateService) CreateLineItem(ctx context.Context, phaseID uuid.UUID, req *domain.CreateEstimateLineItemRequest) (*domain.EstimateLineItemDTO, error) {
	phase, err := s.estimateRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate phase: %w", err)
	}

	estimate, err := s.estimateRepo.GetByID(ctx, phase.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	if err := s.checkWritable(ctx, estimate); err != nil {
		return nil, err
	}

	item := &domain.EstimateLineItem{
		PhaseID:          phaseID,
		RoleID:           req.RoleID,
		DeliveryCenterID: req.DeliveryCenterID,
		Description:      req.Description,
	}
	if req.HourlyRate != nil {
		item.HourlyRate = *req.HourlyRate
	}

	total := decimal.Zero
	for _, wh := range req.WeeklyHours {
		weekStart, err := time.Parse("2006-01-02", wh.WeekStartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid week start date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		item.WeeklyHours = append(item.WeeklyHours, domain.EstimateWeeklyHours{
			WeekStartDate: weekStart,
			Hours:         wh.Hours,
		})
		total = total.Add(wh.Hours)
	}
	item.TotalHours = total

	if err := s.estimateRepo.CreateLineItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: duplicate week start date in distribution", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create estimate line item: %w", err)
	}

	dto := mapper.ToEstimateLineItemDTO(item)
	return &dto, nil
}

func (s *EstimateService) UpdateLineItem(ctx context.Context, itemID uuid.UUID, req *domain.UpdateEstimateLineItemRequest) (*domain.EstimateLineItemDTO, error) {
	item, err := s.estimateRepo.GetLineItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate line item: %w", err)
	}

	phase, err := s.estimateRepo.GetPhaseByID(ctx, item.PhaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate phase: %w", err)
	}
	estimate, err := s.estimateRepo.GetByID(ctx, phase.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	if err := s.checkWritable(ctx, estimate); err != nil {
		return nil, err
	}

	if req.RoleID != nil {
		item.RoleID = req.RoleID
	}
	if req.DeliveryCenterID != nil {
		item.DeliveryCenterID = req.DeliveryCenterID
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.HourlyRate != nil {
		item.HourlyRate = *req.HourlyRate
	}

	replaceWeekly := req.WeeklyHours != nil
	if replaceWeekly {
		item.WeeklyHours = nil
		total := decimal.Zero
		for _, wh := range req.WeeklyHours {
			weekStart, err := time.Parse("2006-01-02", wh.WeekStartDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid week start date format, expected YYYY-MM-DD", ErrInvalidInput)
			}
			item.WeeklyHours = append(item.WeeklyHours, domain.EstimateWeeklyHours{
				LineItemID:    item.ID,
				WeekStartDate: weekStart,
				Hours:         wh.Hours,
			})
			total = total.Add(wh.Hours)
		}
		item.TotalHours = total
	}

	if err := s.estimateRepo.UpdateLineItem(ctx, item, replaceWeekly); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: duplicate week start date in distribution", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update estimate line item: %w", err)
	}

	dto := mapper.ToEstimateLineItemDTO(item)
	return &dto, nil
}

// DeleteLineItem removes a line item without renumbering its siblings
func (s *EstimateService) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.estimateRepo.GetLineItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get estimate line item: %w", err)
	}

	phase, err := s.estimateRepo.GetPhaseByID(ctx, item.PhaseID)
	if err != nil {
		return fmt.Errorf("failed to get estimate phase: %w", err)
	}
	estimate, err := s.estimateRepo.GetByID(ctx, phase.EstimateID)
	if err != nil {
		return fmt.Errorf("failed to get estimate: %w", err)
	}
	if err := s.checkWritable(ctx, estimate); err != nil {
		return err
	}

	if err := s.estimateRepo.DeleteLineItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete estimate line item: %w", err)
	}
	return nil
}
