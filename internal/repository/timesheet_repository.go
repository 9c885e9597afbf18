package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type TimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

func (r *TimesheetRepository) Create(ctx context.Context, timesheet *domain.Timesheet) error {
	return r.db.WithContext(ctx).Create(timesheet).Error
}

func (r *TimesheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	var timesheet domain.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("timesheet_entries.row_order ASC")
		}).
		Preload("Entries.Opportunity").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timesheet_status_history.changed_at ASC")
		}).
		Where("id = ?", id).
		First(&timesheet).Error
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *TimesheetRepository) GetByEmployeeWeek(ctx context.Context, employeeID uuid.UUID, weekStartDate time.Time) (*domain.Timesheet, error) {
	var timesheet domain.Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND week_start_date = ?", employeeID, weekStartDate).
		First(&timesheet).Error
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *TimesheetRepository) Update(ctx context.Context, timesheet *domain.Timesheet) error {
	return r.db.WithContext(ctx).Save(timesheet).Error
}

func (r *TimesheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Timesheet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TimesheetRepository) List(ctx context.Context, skip, limit int, employeeID *uuid.UUID, status *domain.TimesheetStatus, weekStartDate *time.Time) ([]domain.Timesheet, int64, error) {
	var timesheets []domain.Timesheet
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Timesheet{})

	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if weekStartDate != nil {
		query = query.Where("week_start_date = ?", *weekStartDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Employee").
		Offset(skip).Limit(limit).
		Order("week_start_date DESC").
		Find(&timesheets).Error
	return timesheets, total, err
}

// UpdateStatus transitions the timesheet and appends the history row in
// one transaction, so the trail can never miss a transition
func (r *TimesheetRepository) UpdateStatus(ctx context.Context, timesheet *domain.Timesheet, history *domain.TimesheetStatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(timesheet).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
}

// Entries

// CreateEntry appends an entry to the timesheet, claiming its row order in
// the same transaction as the insert
func (r *TimesheetRepository) CreateEntry(ctx context.Context, entry *domain.TimesheetEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.TimesheetEntry{}, "timesheet_id", entry.TimesheetID)
		if err != nil {
			return err
		}
		entry.RowOrder = order
		return tx.Create(entry).Error
	})
}

func (r *TimesheetRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*domain.TimesheetEntry, error) {
	var entry domain.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Opportunity").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimesheetRepository) UpdateEntry(ctx context.Context, entry *domain.TimesheetEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteEntry removes the entry. Remaining siblings keep their row_order
// values untouched.
func (r *TimesheetRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.TimesheetEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TimesheetRepository) ListEntries(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimesheetEntry, error) {
	var entries []domain.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Opportunity").
		Where("timesheet_id = ?", timesheetID).
		Order("row_order ASC").
		Find(&entries).Error
	return entries, err
}

// Snapshots

func (r *TimesheetRepository) CreateSnapshot(ctx context.Context, snapshot *domain.TimesheetApprovedSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *TimesheetRepository) GetSnapshot(ctx context.Context, timesheetID uuid.UUID) (*domain.TimesheetApprovedSnapshot, error) {
	var snapshot domain.TimesheetApprovedSnapshot
	err := r.db.WithContext(ctx).
		Where("timesheet_id = ?", timesheetID).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
