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

	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// QuoteService manages versioned quotes and their lifecycle. At most one
// quote per opportunity is active; activation locks the source estimate and
// deactivation releases that lock. The opportunity's permanent lock rejects
// every quote mutation.
type QuoteService struct {
	quoteRepo       *repository.QuoteRepository
	estimateRepo    *repository.EstimateRepository
	opportunityRepo *repository.OpportunityRepository
	lockRepo        *repository.OpportunityLockRepository
	quoteCfg        config.QuoteConfig
	logger          *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	estimateRepo *repository.EstimateRepository,
	opportunityRepo *repository.OpportunityRepository,
	lockRepo *repository.OpportunityLockRepository,
	quoteCfg config.QuoteConfig,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:       quoteRepo,
		estimateRepo:    estimateRepo,
		opportunityRepo: opportunityRepo,
		lockRepo:        lockRepo,
		quoteCfg:        quoteCfg,
		logger:          logger,
	}
}

func (s *QuoteService) checkWritable(ctx context.Context, opportunityID uuid.UUID) error {
	locked, err := s.lockRepo.Exists(ctx, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to check opportunity lock: %w", err)
	}
	if locked {
		return ErrOpportunityLocked
	}
	return nil
}

// displayName computes the quote's display name from its current state
func (s *QuoteService) displayName(opp *domain.Opportunity, quote *domain.Quote) string {
	var accountName *string
	if opp.Account != nil {
		accountName = &opp.Account.CompanyName
	}
	quoteID := quote.ID
	return domain.ComputeQuoteDisplayName(
		accountName,
		&opp.Name,
		quote.Version,
		&quoteID,
		quote.QuoteDate,
		s.quoteCfg.AccountNameMaxLength,
		s.quoteCfg.OpportunityNameMaxLength,
	)
}

// Create builds a new draft quote for an opportunity. When a source
// estimate is given, its phase and line-item structure is copied onto the
// quote. The version number is one above the opportunity's highest.
func (s *QuoteService) Create(ctx context.Context, opportunityID uuid.UUID, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	if err := s.checkWritable(ctx, opportunityID); err != nil {
		return nil, err
	}

	quoteDate, err := parseDatePtr(req.QuoteDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid quote date", ErrInvalidInput)
	}
	validUntil, err := parseDatePtr(req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid valid-until date", ErrInvalidInput)
	}

	version, err := s.quoteRepo.NextVersion(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next version: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = opp.Currency
	}

	quote := &domain.Quote{
		OpportunityID:    opportunityID,
		SourceEstimateID: req.SourceEstimateID,
		Version:          version,
		Status:           domain.QuoteStatusDraft,
		ApprovalStatus:   domain.QuoteApprovalPending,
		Currency:         currency,
		QuoteDate:        quoteDate,
		ValidUntil:       validUntil,
		Notes:            req.Notes,
	}
	if req.DiscountPercent != nil {
		quote.DiscountPercent = *req.DiscountPercent
	}

	if req.SourceEstimateID != nil {
		estimate, err := s.estimateRepo.GetByID(ctx, *req.SourceEstimateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: source estimate does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to get source estimate: %w", err)
		}
		if estimate.OpportunityID != opportunityID {
			return nil, fmt.Errorf("%w: source estimate belongs to another opportunity", ErrInvalidInput)
		}
		quote.Phases = copyEstimatePhases(estimate.Phases)
	}

	// Primary keys are assigned application-side, so the display name can
	// include the id suffix before the row exists.
	quote.ID = uuid.New()
	quote.DisplayName = s.displayName(opp, quote)

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.logger.Info("quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("opportunity_id", opportunityID.String()),
		zap.String("display_name", quote.DisplayName),
		zap.Int("version", quote.Version))

	created, err := s.quoteRepo.GetByID(ctx, quote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(created)
	return &dto, nil
}

// copyEstimatePhases clones an estimate's structure onto new quote rows.
// Row order is preserved from the source, holes included.
func copyEstimatePhases(phases []domain.EstimatePhase) []domain.QuotePhase {
	out := make([]domain.QuotePhase, len(phases))
	for i, p := range phases {
		qp := domain.QuotePhase{
			Name:        p.Name,
			RowOrder:    p.RowOrder,
			DurationWks: p.DurationWks,
		}
		for _, li := range p.LineItems {
			qli := domain.QuoteLineItem{
				RoleID:           li.RoleID,
				DeliveryCenterID: li.DeliveryCenterID,
				Description:      li.Description,
				RowOrder:         li.RowOrder,
				HourlyRate:       li.HourlyRate,
				TotalHours:       li.TotalHours,
			}
			for _, wh := range li.WeeklyHours {
				qli.WeeklyHours = append(qli.WeeklyHours, domain.QuoteWeeklyHours{
					WeekStartDate: wh.WeekStartDate,
					Hours:         wh.Hours,
				})
			}
			qp.LineItems = append(qp.LineItems, qli)
		}
		out[i] = qp
	}
	return out
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if err := s.checkWritable(ctx, quote.OpportunityID); err != nil {
		return nil, err
	}

	if req.Currency != nil {
		quote.Currency = *req.Currency
	}
	if req.QuoteDate != nil {
		d, err := parseDatePtr(req.QuoteDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid quote date", ErrInvalidInput)
		}
		quote.QuoteDate = d

		// The date is part of the display name, so refresh it
		opp, err := s.opportunityRepo.GetByID(ctx, quote.OpportunityID)
		if err != nil {
			return nil, fmt.Errorf("failed to get opportunity: %w", err)
		}
		quote.DisplayName = s.displayName(opp, quote)
	}
	if req.ValidUntil != nil {
		d, err := parseDatePtr(req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid valid-until date", ErrInvalidInput)
		}
		quote.ValidUntil = d
	}
	if req.DiscountPercent != nil {
		quote.DiscountPercent = *req.DiscountPercent
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quote: %w", err)
	}

	if err := s.checkWritable(ctx, quote.OpportunityID); err != nil {
		return err
	}
	if quote.Status == domain.QuoteStatusActive {
		return fmt.Errorf("%w: deactivate the quote before deleting it", ErrInvalidTransition)
	}

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	s.logger.Info("quote deleted", zap.String("quote_id", id.String()))
	return nil
}

// List returns a page of quotes. An unparseable status filter yields an
// empty result rather than an error.
func (s *QuoteService) List(ctx context.Context, skip, limit int, opportunityID *uuid.UUID, status string) (*domain.ListResponse[domain.QuoteDTO], error) {
	var statusFilter *domain.QuoteStatus
	if status != "" {
		st := domain.QuoteStatus(status)
		if !st.IsValid() {
			return &domain.ListResponse[domain.QuoteDTO]{
				Items: []domain.QuoteDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		statusFilter = &st
	}

	quotes, total, err := s.quoteRepo.List(ctx, skip, limit, opportunityID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	items := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		items[i] = mapper.ToQuoteDTO(&quotes[i])
	}

	return &domain.ListResponse[domain.QuoteDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// Activate transitions a draft quote to active. Only one quote per
// opportunity may be active; while active, the source estimate is locked.
func (s *QuoteService) Activate(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if err := s.checkWritable(ctx, quote.OpportunityID); err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteStatusDraft {
		return nil, fmt.Errorf("%w: only draft quotes can be activated (current: %s)", ErrInvalidTransition, quote.Status)
	}

	existing, err := s.quoteRepo.GetActiveByOpportunity(ctx, quote.OpportunityID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check active quote: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: quote %s is already active for this opportunity", ErrConflict, existing.DisplayName)
	}

	quote.Status = domain.QuoteStatusActive
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to activate quote: %w", err)
	}

	s.logger.Info("quote activated",
		zap.String("quote_id", quote.ID.String()),
		zap.String("opportunity_id", quote.OpportunityID.String()))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Deactivate transitions an active quote to inactive and releases the
// estimate lock that activation placed. The opportunity's permanent lock,
// if present, stays.
func (s *QuoteService) Deactivate(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote.Status != domain.QuoteStatusActive {
		return nil, fmt.Errorf("%w: only active quotes can be deactivated (current: %s)", ErrInvalidTransition, quote.Status)
	}

	quote.Status = domain.QuoteStatusInactive
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to deactivate quote: %w", err)
	}

	s.logger.Info("quote deactivated",
		zap.String("quote_id", quote.ID.String()),
		zap.String("opportunity_id", quote.OpportunityID.String()))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// UpdateApproval moves the approval status. Only a pending quote can be
// decided; a decision is final.
func (s *QuoteService) UpdateApproval(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteApprovalRequest) (*domain.QuoteDTO, error) {
	if !req.ApprovalStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown approval status %q", ErrInvalidInput, req.ApprovalStatus)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if err := s.checkWritable(ctx, quote.OpportunityID); err != nil {
		return nil, err
	}
	if quote.ApprovalStatus != domain.QuoteApprovalPending {
		return nil, fmt.Errorf("%w: quote approval is already decided (%s)", ErrInvalidTransition, quote.ApprovalStatus)
	}
	if req.ApprovalStatus == domain.QuoteApprovalPending {
		return nil, fmt.Errorf("%w: quote is already pending", ErrInvalidTransition)
	}

	quote.ApprovalStatus = req.ApprovalStatus
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote approval: %w", err)
	}

	s.logger.Info("quote approval decided",
		zap.String("quote_id", quote.ID.String()),
		zap.String("approval_status", string(quote.ApprovalStatus)))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// quoteForWrite loads a quote and verifies it accepts mutations
func (s *QuoteService) quoteForWrite(ctx context.Context, quoteID uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if err := s.checkWritable(ctx, quote.OpportunityID); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) CreatePhase(ctx context.Context, quoteID uuid.UUID, req *domain.CreateQuotePhaseRequest) (*domain.QuotePhaseDTO, error) {
	if _, err := s.quoteForWrite(ctx, quoteID); err != nil {
		return nil, err
	}

	phase := &domain.QuotePhase{
		QuoteID:     quoteID,
		Name:        req.Name,
		DurationWks: req.DurationWks,
	}

	if err := s.quoteRepo.CreatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("failed to create quote phase: %w", err)
	}

	dto := mapper.ToQuotePhaseDTO(phase)
	return &dto, nil
}

func (s *QuoteService) UpdatePhase(ctx context.Context, phaseID uuid.UUID, req *domain.UpdateQuotePhaseRequest) (*domain.QuotePhaseDTO, error) {
	phase, err := s.quoteRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote phase: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, phase.QuoteID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		phase.Name = *req.Name
	}
	if req.DurationWks != nil {
		phase.DurationWks = *req.DurationWks
	}

	if err := s.quoteRepo.UpdatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("failed to update quote phase: %w", err)
	}

	dto := mapper.ToQuotePhaseDTO(phase)
	return &dto, nil
}

func (s *QuoteService) DeletePhase(ctx context.Context, phaseID uuid.UUID) error {
	phase, err := s.quoteRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quote phase: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, phase.QuoteID); err != nil {
		return err
	}

	if err := s.quoteRepo.DeletePhase(ctx, phaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete quote phase: %w", err)
	}
	return nil
}

func (s *QuoteService) CreateLineItem(ctx context.Context, phaseID uuid.UUID, req *domain.CreateQuoteLineItemRequest) (*domain.QuoteLineItemDTO, error) {
	phase, err := s.quoteRepo.GetPhaseByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote phase: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, phase.QuoteID); err != nil {
		return nil, err
	}

	item := &domain.QuoteLineItem{
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
		item.WeeklyHours = append(item.WeeklyHours, domain.QuoteWeeklyHours{
			WeekStartDate: weekStart,
			Hours:         wh.Hours,
		})
		total = total.Add(wh.Hours)
	}
	item.TotalHours = total

	if err := s.quoteRepo.CreateLineItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: duplicate week start date in distribution", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create quote line item: %w", err)
	}

	dto := mapper.ToQuoteLineItemDTO(item)
	return &dto, nil
}

func (s *QuoteService) UpdateLineItem(ctx context.Context, itemID uuid.UUID, req *domain.UpdateQuoteLineItemRequest) (*domain.QuoteLineItemDTO, error) {
	item, err := s.quoteRepo.GetLineItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote line item: %w", err)
	}

	phase, err := s.quoteRepo.GetPhaseByID(ctx, item.PhaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote phase: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, phase.QuoteID); err != nil {
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
			item.WeeklyHours = append(item.WeeklyHours, domain.QuoteWeeklyHours{
				LineItemID:    item.ID,
				WeekStartDate: weekStart,
				Hours:         wh.Hours,
			})
			total = total.Add(wh.Hours)
		}
		item.TotalHours = total
	}

	if err := s.quoteRepo.UpdateLineItem(ctx, item, replaceWeekly); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: duplicate week start date in distribution", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update quote line item: %w", err)
	}

	dto := mapper.ToQuoteLineItemDTO(item)
	return &dto, nil
}

func (s *QuoteService) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.quoteRepo.GetLineItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quote line item: %w", err)
	}

	phase, err := s.quoteRepo.GetPhaseByID(ctx, item.PhaseID)
	if err != nil {
		return fmt.Errorf("failed to get quote phase: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, phase.QuoteID); err != nil {
		return err
	}

	if err := s.quoteRepo.DeleteLineItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete quote line item: %w", err)
	}
	return nil
}

func (s *QuoteService) CreatePaymentTrigger(ctx context.Context, quoteID uuid.UUID, req *domain.CreateQuotePaymentTriggerRequest) (*domain.QuotePaymentTriggerDTO, error) {
	if _, err := s.quoteForWrite(ctx, quoteID); err != nil {
		return nil, err
	}

	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date", ErrInvalidInput)
	}

	trigger := &domain.QuotePaymentTrigger{
		QuoteID:     quoteID,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
	}

	if err := s.quoteRepo.CreatePaymentTrigger(ctx, trigger); err != nil {
		return nil, fmt.Errorf("failed to create payment trigger: %w", err)
	}

	dto := mapper.ToQuotePaymentTriggerDTO(trigger)
	return &dto, nil
}

func (s *QuoteService) UpdatePaymentTrigger(ctx context.Context, triggerID uuid.UUID, req *domain.UpdateQuotePaymentTriggerRequest) (*domain.QuotePaymentTriggerDTO, error) {
	trigger, err := s.quoteRepo.GetPaymentTriggerByID(ctx, triggerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment trigger: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, trigger.QuoteID); err != nil {
		return nil, err
	}

	if req.Description != nil {
		trigger.Description = *req.Description
	}
	if req.Amount != nil {
		trigger.Amount = *req.Amount
	}
	if req.DueDate != nil {
		d, err := parseDatePtr(req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", ErrInvalidInput)
		}
		trigger.DueDate = d
	}

	if err := s.quoteRepo.UpdatePaymentTrigger(ctx, trigger); err != nil {
		return nil, fmt.Errorf("failed to update payment trigger: %w", err)
	}

	dto := mapper.ToQuotePaymentTriggerDTO(trigger)
	return &dto, nil
}

func (s *QuoteService) DeletePaymentTrigger(ctx context.Context, triggerID uuid.UUID) error {
	trigger, err := s.quoteRepo.GetPaymentTriggerByID(ctx, triggerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get payment trigger: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, trigger.QuoteID); err != nil {
		return err
	}

	if err := s.quoteRepo.DeletePaymentTrigger(ctx, triggerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete payment trigger: %w", err)
	}
	return nil
}

func (s *QuoteService) CreateVariableCompensation(ctx context.Context, quoteID uuid.UUID, req *domain.CreateQuoteVariableCompensationRequest) (*domain.QuoteVariableCompensationDTO, error) {
	if _, err := s.quoteForWrite(ctx, quoteID); err != nil {
		return nil, err
	}

	comp := &domain.QuoteVariableCompensation{
		QuoteID:     quoteID,
		Description: req.Description,
		Percent:     req.Percent,
		CapAmount:   req.CapAmount,
	}

	if err := s.quoteRepo.CreateVariableCompensation(ctx, comp); err != nil {
		return nil, fmt.Errorf("failed to create variable compensation: %w", err)
	}

	dto := mapper.ToQuoteVariableCompensationDTO(comp)
	return &dto, nil
}

func (s *QuoteService) UpdateVariableCompensation(ctx context.Context, compID uuid.UUID, req *domain.UpdateQuoteVariableCompensationRequest) (*domain.QuoteVariableCompensationDTO, error) {
	comp, err := s.quoteRepo.GetVariableCompensationByID(ctx, compID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get variable compensation: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, comp.QuoteID); err != nil {
		return nil, err
	}

	if req.Description != nil {
		comp.Description = *req.Description
	}
	if req.Percent != nil {
		comp.Percent = *req.Percent
	}
	if req.CapAmount != nil {
		comp.CapAmount = req.CapAmount
	}

	if err := s.quoteRepo.UpdateVariableCompensation(ctx, comp); err != nil {
		return nil, fmt.Errorf("failed to update variable compensation: %w", err)
	}

	dto := mapper.ToQuoteVariableCompensationDTO(comp)
	return &dto, nil
}

func (s *QuoteService) DeleteVariableCompensation(ctx context.Context, compID uuid.UUID) error {
	comp, err := s.quoteRepo.GetVariableCompensationByID(ctx, compID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get variable compensation: %w", err)
	}
	if _, err := s.quoteForWrite(ctx, comp.QuoteID); err != nil {
		return err
	}

	if err := s.quoteRepo.DeleteVariableCompensation(ctx, compID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete variable compensation: %w", err)
	}
	return nil
}
