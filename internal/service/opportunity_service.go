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

// OpportunityService manages deals through their lifecycle: releases,
// engagement staffing and timesheet approvers.
type OpportunityService struct {
	opportunityRepo *repository.OpportunityRepository
	lockRepo        *repository.OpportunityLockRepository
	accountRepo     *repository.AccountRepository
	employeeRepo    *repository.EmployeeRepository
	roleRepo        *repository.RoleRepository
	logger          *zap.Logger
}

func NewOpportunityService(
	opportunityRepo *repository.OpportunityRepository,
	lockRepo *repository.OpportunityLockRepository,
	accountRepo *repository.AccountRepository,
	employeeRepo *repository.EmployeeRepository,
	roleRepo *repository.RoleRepository,
	logger *zap.Logger,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		lockRepo:        lockRepo,
		accountRepo:     accountRepo,
		employeeRepo:    employeeRepo,
		roleRepo:        roleRepo,
		logger:          logger,
	}
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *OpportunityService) Create(ctx context.Context, req *domain.CreateOpportunityRequest) (*domain.OpportunityDTO, error) {
	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	if req.OwnerEmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.OwnerEmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: owner employee does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check owner employee: %w", err)
		}
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, ErrInvalidDateRange
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	opp := &domain.Opportunity{
		AccountID:       req.AccountID,
		Name:            req.Name,
		Description:     req.Description,
		Stage:           domain.OpportunityStageOpportunity,
		OwnerEmployeeID: req.OwnerEmployeeID,
		Currency:        currency,
		StartDate:       startDate,
		EndDate:         endDate,
	}

	if err := s.opportunityRepo.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	s.logger.Info("opportunity created",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("account_id", opp.AccountID.String()),
		zap.String("name", opp.Name))

	dto := mapper.ToOpportunityDTO(opp, false)
	return &dto, nil
}

func (s *OpportunityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpportunityDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	locked, err := s.lockRepo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check opportunity lock: %w", err)
	}

	dto := mapper.ToOpportunityDTO(opp, locked)
	return &dto, nil
}

func (s *OpportunityService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOpportunityRequest) (*domain.OpportunityDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	if req.Name != nil {
		opp.Name = *req.Name
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.Stage != nil {
		if !req.Stage.IsValid() {
			return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, *req.Stage)
		}
		opp.Stage = *req.Stage
	}
	if req.OwnerEmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.OwnerEmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: owner employee does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check owner employee: %w", err)
		}
		opp.OwnerEmployeeID = req.OwnerEmployeeID
	}
	if req.Currency != nil {
		opp.Currency = *req.Currency
	}
	if req.StartDate != nil {
		d, err := parseDatePtr(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		opp.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDatePtr(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
		opp.EndDate = d
	}
	if opp.StartDate != nil && opp.EndDate != nil && opp.StartDate.After(*opp.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.opportunityRepo.Update(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}

	locked, err := s.lockRepo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check opportunity lock: %w", err)
	}

	dto := mapper.ToOpportunityDTO(opp, locked)
	return &dto, nil
}

func (s *OpportunityService) Delete(ctx context.Context, id uuid.UUID) error {
	locked, err := s.lockRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check opportunity lock: %w", err)
	}
	if locked {
		return ErrOpportunityLocked
	}

	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}

	s.logger.Info("opportunity deleted", zap.String("opportunity_id", id.String()))
	return nil
}

// List returns a page of opportunities. An unparseable stage filter yields
// an empty result rather than an error.
func (s *OpportunityService) List(ctx context.Context, skip, limit int, accountID *uuid.UUID, stage string, search string) (*domain.ListResponse[domain.OpportunityDTO], error) {
	var stageFilter *domain.OpportunityStage
	if stage != "" {
		st := domain.OpportunityStage(stage)
		if !st.IsValid() {
			return &domain.ListResponse[domain.OpportunityDTO]{
				Items: []domain.OpportunityDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		stageFilter = &st
	}

	opps, total, err := s.opportunityRepo.List(ctx, skip, limit, accountID, stageFilter, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	items := make([]domain.OpportunityDTO, len(opps))
	for i := range opps {
		locked, err := s.lockRepo.Exists(ctx, opps[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check opportunity lock: %w", err)
		}
		items[i] = mapper.ToOpportunityDTO(&opps[i], locked)
	}

	return &domain.ListResponse[domain.OpportunityDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// IsLocked reports whether the opportunity carries a permanent lock
func (s *OpportunityService) IsLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.lockRepo.Exists(ctx, id)
}

func (s *OpportunityService) CreateRelease(ctx context.Context, opportunityID uuid.UUID, req *domain.CreateReleaseRequest) (*domain.ReleaseDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, ErrInvalidDateRange
	}

	version := req.Version
	if version == 0 {
		version = 1
	}

	release := &domain.Release{
		OpportunityID: opportunityID,
		Name:          req.Name,
		Version:       version,
		Status:        domain.ReleaseStatusPlanned,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	if err := s.opportunityRepo.CreateRelease(ctx, release); err != nil {
		return nil, fmt.Errorf("failed to create release: %w", err)
	}

	dto := mapper.ToReleaseDTO(release)
	return &dto, nil
}

func (s *OpportunityService) UpdateRelease(ctx context.Context, releaseID uuid.UUID, req *domain.UpdateReleaseRequest) (*domain.ReleaseDTO, error) {
	release, err := s.opportunityRepo.GetReleaseByID(ctx, releaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get release: %w", err)
	}

	if req.Name != nil {
		release.Name = *req.Name
	}
	if req.Version != nil {
		release.Version = *req.Version
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown release status %q", ErrInvalidInput, *req.Status)
		}
		release.Status = *req.Status
	}
	if req.StartDate != nil {
		d, err := parseDatePtr(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		release.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDatePtr(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
		release.EndDate = d
	}
	if release.StartDate != nil && release.EndDate != nil && release.StartDate.After(*release.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.opportunityRepo.UpdateRelease(ctx, release); err != nil {
		return nil, fmt.Errorf("failed to update release: %w", err)
	}

	dto := mapper.ToReleaseDTO(release)
	return &dto, nil
}

func (s *OpportunityService) DeleteRelease(ctx context.Context, releaseID uuid.UUID) error {
	if err := s.opportunityRepo.DeleteRelease(ctx, releaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete release: %w", err)
	}
	return nil
}

func (s *OpportunityService) ListReleases(ctx context.Context, opportunityID uuid.UUID) ([]domain.ReleaseDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	releases, err := s.opportunityRepo.ListReleases(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	dtos := make([]domain.ReleaseDTO, len(releases))
	for i := range releases {
		dtos[i] = mapper.ToReleaseDTO(&releases[i])
	}
	return dtos, nil
}

// AddEngagementEmployee staffs an employee onto an engagement. Staffing the
// same employee twice is a conflict.
func (s *OpportunityService) AddEngagementEmployee(ctx context.Context, opportunityID uuid.UUID, req *domain.AddEmployeeEngagementRequest) (*domain.EmployeeEngagementDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	employee, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}

	eng := &domain.EmployeeEngagement{
		OpportunityID: opportunityID,
		EmployeeID:    req.EmployeeID,
		RoleID:        req.RoleID,
		Employee:      employee,
	}
	if req.RoleID != nil {
		role, err := s.roleRepo.GetByID(ctx, *req.RoleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: role does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check role: %w", err)
		}
		eng.Role = role
	}

	if err := s.opportunityRepo.AddEngagementEmployee(ctx, eng); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: employee is already staffed on this engagement", ErrConflict)
		}
		return nil, fmt.Errorf("failed to add engagement employee: %w", err)
	}

	s.logger.Info("employee staffed on engagement",
		zap.String("opportunity_id", opportunityID.String()),
		zap.String("employee_id", req.EmployeeID.String()))

	dto := mapper.ToEmployeeEngagementDTO(eng)
	return &dto, nil
}

func (s *OpportunityService) RemoveEngagementEmployee(ctx context.Context, opportunityID, employeeID uuid.UUID) error {
	if err := s.opportunityRepo.RemoveEngagementEmployee(ctx, opportunityID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove engagement employee: %w", err)
	}
	return nil
}

func (s *OpportunityService) ListEngagementEmployees(ctx context.Context, opportunityID uuid.UUID) ([]domain.EmployeeEngagementDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	engagements, err := s.opportunityRepo.ListEngagementEmployees(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagement employees: %w", err)
	}

	dtos := make([]domain.EmployeeEngagementDTO, len(engagements))
	for i := range engagements {
		dtos[i] = mapper.ToEmployeeEngagementDTO(&engagements[i])
	}
	return dtos, nil
}

// AddTimesheetApprover registers an employee as timesheet approver for an
// engagement. Adding the same employee twice is a conflict.
func (s *OpportunityService) AddTimesheetApprover(ctx context.Context, opportunityID uuid.UUID, req *domain.AddEngagementApproverRequest) (*domain.EngagementTimesheetApproverDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	employee, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee does not exist", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}

	approver := &domain.EngagementTimesheetApprover{
		OpportunityID: opportunityID,
		EmployeeID:    req.EmployeeID,
		Employee:      employee,
	}

	if err := s.opportunityRepo.AddTimesheetApprover(ctx, approver); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: employee is already a timesheet approver for this engagement", ErrConflict)
		}
		return nil, fmt.Errorf("failed to add timesheet approver: %w", err)
	}

	dto := mapper.ToEngagementTimesheetApproverDTO(approver)
	return &dto, nil
}

func (s *OpportunityService) RemoveTimesheetApprover(ctx context.Context, opportunityID, employeeID uuid.UUID) error {
	if err := s.opportunityRepo.RemoveTimesheetApprover(ctx, opportunityID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove timesheet approver: %w", err)
	}
	return nil
}

func (s *OpportunityService) ListTimesheetApprovers(ctx context.Context, opportunityID uuid.UUID) ([]domain.EngagementTimesheetApproverDTO, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	approvers, err := s.opportunityRepo.ListTimesheetApprovers(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet approvers: %w", err)
	}

	dtos := make([]domain.EngagementTimesheetApproverDTO, len(approvers))
	for i := range approvers {
		dtos[i] = mapper.ToEngagementTimesheetApproverDTO(&approvers[i])
	}
	return dtos, nil
}
