package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/auth"
	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// TimesheetService manages weekly timesheets and their approval workflow.
// Recording the first entry with nonzero hours against an opportunity
// permanently locks that opportunity's estimates and quotes.
type TimesheetService struct {
	timesheetRepo   *repository.TimesheetRepository
	employeeRepo    *repository.EmployeeRepository
	opportunityRepo *repository.OpportunityRepository
	lockRepo        *repository.OpportunityLockRepository
	logger          *zap.Logger
}

func NewTimesheetService(
	timesheetRepo *repository.TimesheetRepository,
	employeeRepo *repository.EmployeeRepository,
	opportunityRepo *repository.OpportunityRepository,
	lockRepo *repository.OpportunityLockRepository,
	logger *zap.Logger,
) *TimesheetService {
	return &TimesheetService{
		timesheetRepo:   timesheetRepo,
		employeeRepo:    employeeRepo,
		opportunityRepo: opportunityRepo,
		lockRepo:        lockRepo,
		logger:          logger,
	}
}

func (s *TimesheetService) Create(ctx context.Context, req *domain.CreateTimesheetRequest) (*domain.TimesheetDTO, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid week start date", ErrInvalidInput)
	}

	timesheet := &domain.Timesheet{
		EmployeeID:    req.EmployeeID,
		WeekStartDate: weekStart,
		Status:        domain.TimesheetStatusDraft,
	}

	if err := s.timesheetRepo.Create(ctx, timesheet); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a timesheet already exists for this employee and week", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}

	s.logger.Info("timesheet created",
		zap.String("timesheet_id", timesheet.ID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("week_start", req.WeekStartDate))

	created, err := s.timesheetRepo.GetByID(ctx, timesheet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload timesheet: %w", err)
	}

	dto := mapper.ToTimesheetDTO(created)
	return &dto, nil
}

func (s *TimesheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimesheetDTO, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	dto := mapper.ToTimesheetDTO(timesheet)
	return &dto, nil
}

func (s *TimesheetService) Delete(ctx context.Context, id uuid.UUID) error {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get timesheet: %w", err)
	}
	if timesheet.Status == domain.TimesheetStatusApproved {
		return ErrTimesheetImmutable
	}

	if err := s.timesheetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}

	s.logger.Info("timesheet deleted", zap.String("timesheet_id", id.String()))
	return nil
}

// List returns a page of timesheets. An unparseable status filter yields an
// empty result rather than an error.
func (s *TimesheetService) List(ctx context.Context, skip, limit int, employeeID *uuid.UUID, status, weekStart string) (*domain.ListResponse[domain.TimesheetDTO], error) {
	var statusFilter *domain.TimesheetStatus
	if status != "" {
		st := domain.TimesheetStatus(status)
		if !st.IsValid() {
			return &domain.ListResponse[domain.TimesheetDTO]{
				Items: []domain.TimesheetDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		statusFilter = &st
	}

	var weekFilter *time.Time
	if weekStart != "" {
		d, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid week start date", ErrInvalidInput)
		}
		weekFilter = &d
	}

	timesheets, total, err := s.timesheetRepo.List(ctx, skip, limit, employeeID, statusFilter, weekFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	items := make([]domain.TimesheetDTO, len(timesheets))
	for i := range timesheets {
		items[i] = mapper.ToTimesheetDTO(&timesheets[i])
	}

	return &domain.ListResponse[domain.TimesheetDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// Submit moves a draft timesheet to submitted and records the transition
func (s *TimesheetService) Submit(ctx context.Context, id uuid.UUID) (*domain.TimesheetDTO, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if timesheet.Status != domain.TimesheetStatusDraft && timesheet.Status != domain.TimesheetStatusRejected {
		return nil, fmt.Errorf("%w: timesheet cannot be submitted from %s", ErrInvalidTransition, timesheet.Status)
	}

	from := timesheet.Status
	now := time.Now().UTC()
	timesheet.Status = domain.TimesheetStatusSubmitted
	timesheet.SubmittedAt = &now

	history := &domain.TimesheetStatusHistory{
		TimesheetID: timesheet.ID,
		FromStatus:  from,
		ToStatus:    domain.TimesheetStatusSubmitted,
		ChangedByID: changedBy(ctx),
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, timesheet, history); err != nil {
		return nil, fmt.Errorf("failed to submit timesheet: %w", err)
	}

	s.logger.Info("timesheet submitted", zap.String("timesheet_id", id.String()))

	return s.GetByID(ctx, id)
}

// Approve moves a submitted timesheet to approved, freezes its content as a
// snapshot, and makes the timesheet immutable.
func (s *TimesheetService) Approve(ctx context.Context, id uuid.UUID, req *domain.DecideTimesheetRequest) (*domain.TimesheetDTO, error) {
	return s.decide(ctx, id, domain.TimesheetStatusApproved, req.Comment)
}

// Reject moves a submitted timesheet back to rejected; the employee can fix
// the entries and resubmit.
func (s *TimesheetService) Reject(ctx context.Context, id uuid.UUID, req *domain.DecideTimesheetRequest) (*domain.TimesheetDTO, error) {
	return s.decide(ctx, id, domain.TimesheetStatusRejected, req.Comment)
}

func (s *TimesheetService) decide(ctx context.Context, id uuid.UUID, to domain.TimesheetStatus, comment string) (*domain.TimesheetDTO, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if timesheet.Status != domain.TimesheetStatusSubmitted {
		return nil, fmt.Errorf("%w: only submitted timesheets can be decided (current: %s)", ErrInvalidTransition, timesheet.Status)
	}

	from := timesheet.Status
	now := time.Now().UTC()
	decidedBy := changedBy(ctx)
	timesheet.Status = to
	timesheet.DecidedAt = &now
	timesheet.DecidedByID = decidedBy

	history := &domain.TimesheetStatusHistory{
		TimesheetID: timesheet.ID,
		FromStatus:  from,
		ToStatus:    to,
		ChangedByID: decidedBy,
		Comment:     comment,
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, timesheet, history); err != nil {
		return nil, fmt.Errorf("failed to update timesheet status: %w", err)
	}

	if to == domain.TimesheetStatusApproved {
		if err := s.writeSnapshot(ctx, id); err != nil {
			return nil, err
		}
	}

	s.logger.Info("timesheet decided",
		zap.String("timesheet_id", id.String()),
		zap.String("status", string(to)))

	return s.GetByID(ctx, id)
}

// writeSnapshot freezes the approved timesheet as a JSON document
func (s *TimesheetService) writeSnapshot(ctx context.Context, id uuid.UUID) error {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload timesheet for snapshot: %w", err)
	}

	dto := mapper.ToTimesheetDTO(timesheet)
	payload, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal timesheet snapshot: %w", err)
	}

	snapshot := &domain.TimesheetApprovedSnapshot{
		TimesheetID: id,
		Snapshot:    string(payload),
	}
	if err := s.timesheetRepo.CreateSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to store timesheet snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the frozen approval-time content of a timesheet
func (s *TimesheetService) GetSnapshot(ctx context.Context, id uuid.UUID) (*domain.TimesheetDTO, error) {
	snapshot, err := s.timesheetRepo.GetSnapshot(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet snapshot: %w", err)
	}

	var dto domain.TimesheetDTO
	if err := json.Unmarshal([]byte(snapshot.Snapshot), &dto); err != nil {
		return nil, fmt.Errorf("failed to decode timesheet snapshot: %w", err)
	}
	return &dto, nil
}

// timesheetForEntryWrite loads a timesheet and rejects entry mutations on
// approved timesheets
func (s *TimesheetService) timesheetForEntryWrite(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if timesheet.Status == domain.TimesheetStatusApproved {
		return nil, ErrTimesheetImmutable
	}
	return timesheet, nil
}

// CreateEntry adds one line of hours to a timesheet. The first entry with
// nonzero hours against an opportunity places the opportunity's permanent
// lock; the lock write is idempotent, so replays are harmless.
func (s *TimesheetService) CreateEntry(ctx context.Context, timesheetID uuid.UUID, req *domain.CreateTimesheetEntryRequest) (*domain.TimesheetEntryDTO, error) {
	if _, err := s.timesheetForEntryWrite(ctx, timesheetID); err != nil {
		return nil, err
	}

	if _, err := s.opportunityRepo.GetByID(ctx, req.OpportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: opportunity does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date", ErrInvalidInput)
	}
	if req.Hours.IsNegative() {
		return nil, fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	}

	entry := &domain.TimesheetEntry{
		TimesheetID:   timesheetID,
		OpportunityID: req.OpportunityID,
		EntryDate:     entryDate,
		Hours:         req.Hours,
		Note:          req.Note,
	}

	if err := s.timesheetRepo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create timesheet entry: %w", err)
	}

	if err := s.lockIfBillable(ctx, entry); err != nil {
		return nil, err
	}

	dto := mapper.ToTimesheetEntryDTO(entry)
	return &dto, nil
}

func (s *TimesheetService) UpdateEntry(ctx context.Context, entryID uuid.UUID, req *domain.UpdateTimesheetEntryRequest) (*domain.TimesheetEntryDTO, error) {
	entry, err := s.timesheetRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet entry: %w", err)
	}
	if _, err := s.timesheetForEntryWrite(ctx, entry.TimesheetID); err != nil {
		return nil, err
	}

	if req.OpportunityID != nil {
		if _, err := s.opportunityRepo.GetByID(ctx, *req.OpportunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: opportunity does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to get opportunity: %w", err)
		}
		entry.OpportunityID = *req.OpportunityID
	}
	if req.EntryDate != nil {
		d, err := time.Parse("2006-01-02", *req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid entry date", ErrInvalidInput)
		}
		entry.EntryDate = d
	}
	if req.Hours != nil {
		if req.Hours.IsNegative() {
			return nil, fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
		}
		entry.Hours = *req.Hours
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}

	if err := s.timesheetRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update timesheet entry: %w", err)
	}

	if err := s.lockIfBillable(ctx, entry); err != nil {
		return nil, err
	}

	dto := mapper.ToTimesheetEntryDTO(entry)
	return &dto, nil
}

// DeleteEntry removes a line. Remaining entries keep their row_order; the
// permanent lock, once placed, is never lifted by deleting the entry that
// triggered it.
func (s *TimesheetService) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.timesheetRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get timesheet entry: %w", err)
	}
	if _, err := s.timesheetForEntryWrite(ctx, entry.TimesheetID); err != nil {
		return err
	}

	if err := s.timesheetRepo.DeleteEntry(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete timesheet entry: %w", err)
	}
	return nil
}

func (s *TimesheetService) ListEntries(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimesheetEntryDTO, error) {
	if _, err := s.timesheetRepo.GetByID(ctx, timesheetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	entries, err := s.timesheetRepo.ListEntries(ctx, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}

	dtos := make([]domain.TimesheetEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = mapper.ToTimesheetEntryDTO(&entries[i])
	}
	return dtos, nil
}

// lockIfBillable places the opportunity's permanent lock when the entry
// carries nonzero hours. Ensure is idempotent under the lock table's
// uniqueness constraint, so concurrent entries race safely.
func (s *TimesheetService) lockIfBillable(ctx context.Context, entry *domain.TimesheetEntry) error {
	if !entry.Hours.IsPositive() {
		return nil
	}
	entryID := entry.ID
	if err := s.lockRepo.Ensure(ctx, entry.OpportunityID, &entryID); err != nil {
		return fmt.Errorf("failed to place opportunity lock: %w", err)
	}
	s.logger.Info("opportunity permanently locked",
		zap.String("opportunity_id", entry.OpportunityID.String()),
		zap.String("entry_id", entryID.String()))
	return nil
}

// changedBy extracts the acting employee from the request context, if any
func changedBy(ctx context.Context) *uuid.UUID {
	if emp, ok := auth.FromContext(ctx); ok {
		id := emp.EmployeeID
		return &id
	}
	return nil
}
