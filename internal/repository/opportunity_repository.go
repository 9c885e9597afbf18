package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Create(opp).Error
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("id = ?", id).
		First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Save(opp).Error
}

func (r *OpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Opportunity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OpportunityRepository) List(ctx context.Context, skip, limit int, accountID *uuid.UUID, stage *domain.OpportunityStage, search string) ([]domain.Opportunity, int64, error) {
	var opps []domain.Opportunity
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{})

	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	if stage != nil {
		query = query.Where("stage = ?", *stage)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Account").
		Offset(skip).Limit(limit).
		Order("created_at DESC").
		Find(&opps).Error
	return opps, total, err
}

// Releases

func (r *OpportunityRepository) CreateRelease(ctx context.Context, release *domain.Release) error {
	return r.db.WithContext(ctx).Create(release).Error
}

func (r *OpportunityRepository) GetReleaseByID(ctx context.Context, id uuid.UUID) (*domain.Release, error) {
	var release domain.Release
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&release).Error
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (r *OpportunityRepository) UpdateRelease(ctx context.Context, release *domain.Release) error {
	return r.db.WithContext(ctx).Save(release).Error
}

func (r *OpportunityRepository) DeleteRelease(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Release{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OpportunityRepository) ListReleases(ctx context.Context, opportunityID uuid.UUID) ([]domain.Release, error) {
	var releases []domain.Release
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("version ASC").
		Find(&releases).Error
	return releases, err
}

// Staffing

func (r *OpportunityRepository) AddEngagementEmployee(ctx context.Context, eng *domain.EmployeeEngagement) error {
	return r.db.WithContext(ctx).Create(eng).Error
}

func (r *OpportunityRepository) RemoveEngagementEmployee(ctx context.Context, opportunityID, employeeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND employee_id = ?", opportunityID, employeeID).
		Delete(&domain.EmployeeEngagement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OpportunityRepository) ListEngagementEmployees(ctx context.Context, opportunityID uuid.UUID) ([]domain.EmployeeEngagement, error) {
	var engagements []domain.EmployeeEngagement
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Role").
		Where("opportunity_id = ?", opportunityID).
		Find(&engagements).Error
	return engagements, err
}

// Timesheet approvers

func (r *OpportunityRepository) AddTimesheetApprover(ctx context.Context, approver *domain.EngagementTimesheetApprover) error {
	return r.db.WithContext(ctx).Create(approver).Error
}

func (r *OpportunityRepository) RemoveTimesheetApprover(ctx context.Context, opportunityID, employeeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND employee_id = ?", opportunityID, employeeID).
		Delete(&domain.EngagementTimesheetApprover{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OpportunityRepository) ListTimesheetApprovers(ctx context.Context, opportunityID uuid.UUID) ([]domain.EngagementTimesheetApprover, error) {
	var approvers []domain.EngagementTimesheetApprover
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("opportunity_id = ?", opportunityID).
		Find(&approvers).Error
	return approvers, err
}

func (r *OpportunityRepository) IsTimesheetApprover(ctx context.Context, opportunityID, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.EngagementTimesheetApprover{}).
		Where("opportunity_id = ? AND employee_id = ?", opportunityID, employeeID).
		Count(&count).Error
	return count > 0, err
}
